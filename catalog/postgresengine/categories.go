package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// CategoryPage is one page of categories plus the total match count.
type CategoryPage struct {
	Categories []catalog.Category
	TotalCount int64
	PageNumber int
	PageSize   int
}

// NewCategory carries the normalized input for a category write. ImageURL
// is optional; on update an empty ImageURL keeps the stored image.
type NewCategory struct {
	Title       string
	Description string
	ImageURL    string
	Type        catalog.CategoryType
}

// CreateCategory inserts a category and returns its id.
// Returns catalog.ErrDuplicateCategoryTitle when the title is already taken.
func (cs CatalogStore) CreateCategory(ctx context.Context, category NewCategory) (int64, error) {
	taken, err := cs.categoryTitleTaken(ctx, category.Title, 0)
	if err != nil {
		return 0, err
	}

	if taken {
		return 0, catalog.ErrDuplicateCategoryTitle
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(cs.tables.Categories).
		Rows(goqu.Record{
			colTitle:        category.Title,
			colDescription:  category.Description,
			colImageURL:     category.ImageURL,
			colCategoryType: string(category.Type),
		}).
		Returning(colID)

	sqlQuery, err := cs.toSQL(insertStmt)
	if err != nil {
		return 0, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionWrite)
	if err != nil {
		return 0, err
	}
	defer cs.closeRows(rows)

	if !rows.Next() {
		return 0, catalog.ErrStoreUnavailable
	}

	var categoryID int64
	if scanErr := rows.Scan(&categoryID); scanErr != nil {
		return 0, cs.scanFailure(scanErr)
	}

	return categoryID, nil
}

// UpdateCategory changes a category's title, description, and type. The
// stored image is replaced only when category.ImageURL is non-empty.
// Returns catalog.ErrCategoryNotFound when the id does not exist and
// catalog.ErrDuplicateCategoryTitle when the title is taken by another category.
func (cs CatalogStore) UpdateCategory(ctx context.Context, categoryID int64, category NewCategory) error {
	taken, err := cs.categoryTitleTaken(ctx, category.Title, categoryID)
	if err != nil {
		return err
	}

	if taken {
		return catalog.ErrDuplicateCategoryTitle
	}

	record := goqu.Record{
		colTitle:        category.Title,
		colDescription:  category.Description,
		colCategoryType: string(category.Type),
	}
	if category.ImageURL != "" {
		record[colImageURL] = category.ImageURL
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(cs.tables.Categories).
		Set(record).
		Where(goqu.C(colID).Eq(categoryID))

	sqlQuery, err := cs.toSQL(updateStmt)
	if err != nil {
		return err
	}

	affected, err := cs.execStatement(ctx, sqlQuery)
	if err != nil {
		return err
	}

	if affected == 0 {
		return catalog.ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes a category and its product links in one transaction.
// Products stay; they just lose the membership.
// Returns catalog.ErrCategoryNotFound when the id does not exist.
func (cs CatalogStore) DeleteCategory(ctx context.Context, categoryID int64) error {
	tx, err := cs.beginTx(ctx)
	if err != nil {
		return err
	}
	defer cs.rollbackTx(ctx, tx)

	unlinkStmt := goqu.Dialect(dialectPostgres).
		Delete(cs.tables.ProductCategories).
		Where(goqu.C(colCategoryID).Eq(categoryID))

	sqlQuery, err := cs.toSQL(unlinkStmt)
	if err != nil {
		return err
	}

	if _, err = cs.txExec(ctx, tx, sqlQuery); err != nil {
		return err
	}

	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(cs.tables.Categories).
		Where(goqu.C(colID).Eq(categoryID))

	if sqlQuery, err = cs.toSQL(deleteStmt); err != nil {
		return err
	}

	affected, err := cs.txExec(ctx, tx, sqlQuery)
	if err != nil {
		return err
	}

	if affected == 0 {
		return catalog.ErrCategoryNotFound
	}

	return cs.commitTx(ctx, tx)
}

// GetCategoryByID loads one category or catalog.ErrCategoryNotFound.
func (cs CatalogStore) GetCategoryByID(ctx context.Context, categoryID int64) (catalog.Category, error) {
	return cs.getCategory(ctx, goqu.C(colID).Eq(categoryID))
}

// GetCategoryByTitle loads one category by its unique title or catalog.ErrCategoryNotFound.
func (cs CatalogStore) GetCategoryByTitle(ctx context.Context, title string) (catalog.Category, error) {
	return cs.getCategory(ctx, goqu.C(colTitle).Eq(title))
}

func (cs CatalogStore) getCategory(ctx context.Context, where goqu.Expression) (catalog.Category, error) {
	var empty catalog.Category

	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Categories).
		Select(colID, colTitle, colDescription, colImageURL, colCategoryType).
		Where(where)

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
		return empty, catalog.ErrCategoryNotFound
	}

	var category catalog.Category
	if scanErr := rows.Scan(
		&category.ID, &category.Title, &category.Description, &category.ImageURL, &category.Type,
	); scanErr != nil {
		return empty, cs.scanFailure(scanErr)
	}

	return category, nil
}

// ListCategories returns one page of categories ordered by id, optionally
// restricted to a single type. Pass an empty type for all categories.
func (cs CatalogStore) ListCategories(
	ctx context.Context,
	categoryType catalog.CategoryType,
	pageNumber int,
	pageSize int,
) (CategoryPage, error) {

	var empty CategoryPage

	if pageNumber < 0 {
		pageNumber = 0
	}

	if pageSize <= 0 {
		pageSize = catalog.DefaultCategoryPageSize
	}

	var whereExpressions []goqu.Expression
	if categoryType != "" {
		whereExpressions = append(whereExpressions, goqu.C(colCategoryType).Eq(string(categoryType)))
	}

	totalCount, err := cs.countCategories(ctx, whereExpressions)
	if err != nil {
		return empty, err
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Categories).
		Select(colID, colTitle, colDescription, colImageURL, colCategoryType).
		Order(goqu.I(colID).Asc()).
		Limit(uint(pageSize)).
		Offset(uint(pageNumber * pageSize))

	if len(whereExpressions) > 0 {
		selectStmt = selectStmt.Where(goqu.And(whereExpressions...))
	}

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return empty, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionResolve)
	if err != nil {
		return empty, err
	}
	defer cs.closeRows(rows)

	categories := make([]catalog.Category, 0, pageSize)
	for rows.Next() {
		var category catalog.Category
		if scanErr := rows.Scan(
			&category.ID, &category.Title, &category.Description, &category.ImageURL, &category.Type,
		); scanErr != nil {
			return empty, cs.scanFailure(scanErr)
		}

		categories = append(categories, category)
	}

	return CategoryPage{
		Categories: categories,
		TotalCount: totalCount,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

// CountCategoriesByIDs reports how many of the given ids exist. Command
// handlers use it to validate product category memberships before a write.
func (cs CatalogStore) CountCategoriesByIDs(ctx context.Context, categoryIDs []int64) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}

	return cs.countCategories(ctx, []goqu.Expression{goqu.C(colID).In(categoryIDs)})
}

func (cs CatalogStore) countCategories(ctx context.Context, whereExpressions []goqu.Expression) (int64, error) {
	countStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Categories).
		Select(goqu.COUNT(goqu.Star()).As(aliasTotal))

	if len(whereExpressions) > 0 {
		countStmt = countStmt.Where(goqu.And(whereExpressions...))
	}

	sqlQuery, err := cs.toSQL(countStmt)
	if err != nil {
		return 0, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionResolve)
	if err != nil {
		return 0, err
	}
	defer cs.closeRows(rows)

	var totalCount int64
	if rows.Next() {
		if scanErr := rows.Scan(&totalCount); scanErr != nil {
			return 0, cs.scanFailure(scanErr)
		}
	}

	return totalCount, nil
}

func (cs CatalogStore) categoryTitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Categories).
		Select(colID).
		Where(goqu.C(colTitle).Eq(title), goqu.C(colID).Neq(excludeID))

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return false, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionResolve)
	if err != nil {
		return false, err
	}
	defer cs.closeRows(rows)

	return rows.Next(), nil
}

func (cs CatalogStore) execStatement(ctx context.Context, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := cs.db.Exec(ctx, sqlQuery)
	cs.logQueryWithDuration(ctx, sqlQuery, logActionWrite, time.Since(start))

	if execErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(catalog.ErrStoreUnavailable, execErr)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(catalog.ErrStoreUnavailable, err)
	}

	return affected, nil
}
