// Package config provides environment-driven configuration for the shop API.
//
// It loads an optional .env file, exposes one Config struct for the whole
// process, and contains factory functions for pre-tuned PostgreSQL pool
// configurations using different drivers (pgx.Pool, sql.DB, sqlx.DB).
//
// This package is part of the shell (infrastructure) layer.
package config
