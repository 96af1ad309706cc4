package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/auth"
)

type fakeUserReader struct {
	user catalog.User
	err  error
}

func (f fakeUserReader) GetUserByEmail(context.Context, string) (catalog.User, error) {
	return f.user, f.err
}

func adminUser(t *testing.T) catalog.User {
	t.Helper()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	return catalog.User{
		ID:           42,
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         catalog.RoleAdmin,
	}
}

func Test_Login_ValidCredentialsYieldAVerifiableToken(t *testing.T) {
	user := adminUser(t)
	service := auth.NewService(fakeUserReader{user: user}, "test-secret", time.Hour)

	token, err := service.Login(context.Background(), user.Email, "s3cret")
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, catalog.RoleAdmin, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func Test_Login_WrongPasswordIsRejected(t *testing.T) {
	user := adminUser(t)
	service := auth.NewService(fakeUserReader{user: user}, "test-secret", time.Hour)

	_, err := service.Login(context.Background(), user.Email, "wrong")

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func Test_Login_UnknownEmailIsIndistinguishableFromWrongPassword(t *testing.T) {
	service := auth.NewService(fakeUserReader{err: catalog.ErrUserNotFound}, "test-secret", time.Hour)

	_, err := service.Login(context.Background(), "nobody@example.com", "whatever")

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func Test_VerifyToken_RejectsTokensSignedWithAnotherSecret(t *testing.T) {
	user := adminUser(t)
	issuer := auth.NewService(fakeUserReader{user: user}, "secret-a", time.Hour)
	verifier := auth.NewService(fakeUserReader{user: user}, "secret-b", time.Hour)

	token, err := issuer.IssueToken(user)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func Test_VerifyToken_RejectsExpiredTokens(t *testing.T) {
	user := adminUser(t)
	service := auth.NewService(fakeUserReader{user: user}, "test-secret", -time.Minute)

	token, err := service.IssueToken(user)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func Test_VerifyToken_RejectsGarbage(t *testing.T) {
	service := auth.NewService(fakeUserReader{}, "test-secret", time.Hour)

	_, err := service.VerifyToken("not.a.token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
