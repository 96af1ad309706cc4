// Package adapters provides database adapter implementations for the PostgreSQL catalog store.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the catalog store to work seamlessly with any
// supported database connection type.
//
// Besides plain query execution the adapters expose transactions, which the
// catalog store uses for multi-table writes (a product row together with its
// attributes, images, and category links).
package adapters
