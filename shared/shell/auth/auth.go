// Package auth issues and verifies the JWT tokens that gate management
// operations. It stays at the boundary: nothing inside the catalog packages
// knows about tokens or roles.
package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike; login never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for expired, malformed, or mis-signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the token claims the API works with.
type Claims struct {
	Email string       `json:"email"`
	Role  catalog.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserReader loads accounts for login.
type UserReader interface {
	GetUserByEmail(ctx context.Context, email string) (catalog.User, error)
}

// Service authenticates users and manages their tokens.
type Service struct {
	users  UserReader
	secret []byte
	ttl    time.Duration
}

// NewService creates an auth service signing tokens with the given secret.
func NewService(users UserReader, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Login verifies the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email string, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, catalog.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user)
}

// IssueToken signs a token for the given user.
func (s *Service) IssueToken(user catalog.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates a token and returns its claims.
func (s *Service) VerifyToken(tokenString string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// HashPassword produces a bcrypt hash for storing a new password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
