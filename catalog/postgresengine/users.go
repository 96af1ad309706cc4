package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

const (
	colEmail        = "email"
	colPasswordHash = "password_hash"
	colRole         = "role"
)

// GetUserByEmail loads one account or catalog.ErrUserNotFound.
func (cs CatalogStore) GetUserByEmail(ctx context.Context, email string) (catalog.User, error) {
	var empty catalog.User

	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Users).
		Select(colID, colEmail, colPasswordHash, colRole).
		Where(goqu.C(colEmail).Eq(email))

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return empty, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionResolve)
	if err != nil {
		return empty, err
	}
	defer cs.closeRows(rows)

	if !rows.Next() {
		return empty, catalog.ErrUserNotFound
	}

	var user catalog.User
	var role string
	if scanErr := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &role); scanErr != nil {
		return empty, cs.scanFailure(scanErr)
	}

	user.Role = catalog.Role(role)

	return user, nil
}
