package catalog

import "errors"

// Role gates access to management operations.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is an account that can authenticate against the API.
// PasswordHash is a bcrypt hash; plaintext passwords never leave the
// login boundary.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
}

// ErrUserNotFound is returned when an email resolves to no account.
var ErrUserNotFound = errors.New("user not found")
