package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed    = "failed to build query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgTxBeginFailed       = "failed to begin transaction"
	logMsgTxCommitFailed      = "failed to commit transaction"
	logMsgTxRollbackFailed    = "failed to roll back transaction"
	logMsgSearchCompleted     = "product search completed"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "catalog store operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrProductCount       = "product_count"
	logAttrTotalCount         = "total_count"
	logAttrDurationMS         = "duration_ms"
	logActionSearch           = "search"
	logActionResolve          = "resolve_categories"
	logActionBatchLoad        = "batch_load"
	logActionWrite            = "write"
	colID                     = "id"
	colTitle                  = "title"
	colDescription            = "description"
	colArticle                = "article"
	colPrice                  = "price"
	colProductID              = "product_id"
	colCategoryID             = "category_id"
	colAttrKey                = "key"
	colAttrValue              = "value"
	colImageURL               = "image_url"
	colCategoryType           = "type"
	dialectPostgres           = "postgres"
	funcLower                 = "lower"
	aliasTotal                = "total"
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// TableNames holds the table names the catalog store operates on.
type TableNames struct {
	Products          string
	Categories        string
	ProductCategories string
	Attributes        string
	ProductImages     string
	Users             string
}

// DefaultTableNames returns the table names used unless overridden with WithTableNames.
func DefaultTableNames() TableNames {
	return TableNames{
		Products:          "products",
		Categories:        "categories",
		ProductCategories: "product_category",
		Attributes:        "attributes",
		ProductImages:     "product_images",
		Users:             "users",
	}
}

func (t TableNames) anyEmpty() bool {
	return t.Products == "" ||
		t.Categories == "" ||
		t.ProductCategories == "" ||
		t.Attributes == "" ||
		t.ProductImages == "" ||
		t.Users == ""
}

// CatalogStore runs composed filter predicates against the product catalog in
// PostgreSQL. It is a stateless value around a database adapter: every method
// receives the request's own SearchFilter as an argument and nothing about a
// request is ever stored on the CatalogStore itself, so one instance is safe
// to share across any number of concurrent requests.
type CatalogStore struct {
	db               adapters.DBAdapter
	tables           TableNames
	logger           catalog.Logger
	contextualLogger catalog.ContextualLogger
}

// NewCatalogStoreFromPGXPool creates a new CatalogStore using a pgx pool with optional configuration.
func NewCatalogStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewPGXAdapter(db), options...)
}

// NewCatalogStoreFromPGXPoolWithReplica creates a new CatalogStore that routes
// reads to a replica pool and writes to the primary.
func NewCatalogStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (CatalogStore, error) {
	if db == nil || replica == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewCatalogStoreFromSQLDB creates a new CatalogStore using a sql.DB with optional configuration.
func NewCatalogStoreFromSQLDB(db *sql.DB, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewSQLAdapter(db), options...)
}

// NewCatalogStoreFromSQLX creates a new CatalogStore using a sqlx.DB with optional configuration.
func NewCatalogStoreFromSQLX(db *sqlx.DB, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalog.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewSQLXAdapter(db), options...)
}

func newCatalogStore(db adapters.DBAdapter, options ...Option) (CatalogStore, error) {
	cs := CatalogStore{
		db:     db,
		tables: DefaultTableNames(),
	}

	for _, option := range options {
		if err := option(&cs); err != nil {
			return CatalogStore{}, err
		}
	}

	return cs, nil
}

// ResolveCategoryRefs resolves requested category ids to their (id, type)
// pairs. Ids that do not exist are simply absent from the result; a search
// naming a nonexistent category is not an error.
func (cs CatalogStore) ResolveCategoryRefs(ctx context.Context, categoryIDs []int64) ([]catalog.CategoryRef, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Categories).
		Select(colID, colCategoryType).
		Where(goqu.C(colID).In(categoryIDs)).
		Order(goqu.I(colID).Asc())

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return nil, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionResolve)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	refs := make([]catalog.CategoryRef, 0, len(categoryIDs))
	for rows.Next() {
		var ref catalog.CategoryRef
		if scanErr := rows.Scan(&ref.ID, &ref.Type); scanErr != nil {
			return nil, cs.scanFailure(scanErr)
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

// SearchProducts executes the composed predicate with offset/limit pagination
// and returns the hydrated page plus the total match count. The page's
// attributes and images are loaded in one batch query per relation keyed by
// the page's product-id set, never per product.
func (cs CatalogStore) SearchProducts(
	ctx context.Context,
	filter catalog.SearchFilter,
	groups []catalog.CategoryGroup,
) (catalog.ProductPage, error) {

	var empty catalog.ProductPage

	whereExpressions := cs.searchWhereExpressions(filter, groups)

	totalCount, err := cs.countProducts(ctx, whereExpressions)
	if err != nil {
		return empty, err
	}

	start := time.Now()

	products, err := cs.queryProductPage(ctx, filter, whereExpressions)
	if err != nil {
		return empty, err
	}

	if err = cs.hydrateProducts(ctx, products); err != nil {
		return empty, err
	}

	cs.logOperation(ctx,
		logMsgSearchCompleted,
		logAttrProductCount, len(products),
		logAttrTotalCount, totalCount,
		logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return catalog.ProductPage{
		Products:   products,
		TotalCount: totalCount,
		PageNumber: filter.PageNumber(),
		PageSize:   filter.PageSize(),
	}, nil
}

// GetProductByID loads one product with its attributes, images, and category
// memberships, or catalog.ErrProductNotFound.
func (cs CatalogStore) GetProductByID(ctx context.Context, productID int64) (catalog.Product, error) {
	var empty catalog.Product

	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Products).
		Select(colID, colTitle, colDescription, colArticle, colPrice).
		Where(goqu.C(colID).Eq(productID))

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return empty, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionSearch)
	if err != nil {
		return empty, err
	}
	defer cs.closeRows(rows)

	if !rows.Next() {
		return empty, catalog.ErrProductNotFound
	}

	product := &catalog.Product{}
	if scanErr := scanProductRow(rows, product); scanErr != nil {
		return empty, cs.scanFailure(scanErr)
	}

	page := []catalog.Product{*product}
	if err = cs.hydrateProducts(ctx, page); err != nil {
		return empty, err
	}

	return page[0], nil
}

func (cs CatalogStore) countProducts(ctx context.Context, whereExpressions []goqu.Expression) (int64, error) {
	countStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Products).
		Select(goqu.COUNT(goqu.Star()).As(aliasTotal))

	if len(whereExpressions) > 0 {
		countStmt = countStmt.Where(goqu.And(whereExpressions...))
	}

	sqlQuery, err := cs.toSQL(countStmt)
	if err != nil {
		return 0, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionSearch)
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

func (cs CatalogStore) queryProductPage(
	ctx context.Context,
	filter catalog.SearchFilter,
	whereExpressions []goqu.Expression,
) ([]catalog.Product, error) {

	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Products).
		Select(colID, colTitle, colDescription, colArticle, colPrice).
		Order(goqu.I(colID).Asc()).
		Limit(uint(filter.PageSize())).
		Offset(uint(filter.Offset()))

	if len(whereExpressions) > 0 {
		selectStmt = selectStmt.Where(goqu.And(whereExpressions...))
	}

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return nil, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionSearch)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	products := make([]catalog.Product, 0, filter.PageSize())
	for rows.Next() {
		var product catalog.Product
		if scanErr := scanProductRow(rows, &product); scanErr != nil {
			return nil, cs.scanFailure(scanErr)
		}

		products = append(products, product)
	}

	return products, nil
}

// hydrateProducts attaches attributes, images, and category memberships to
// the given products with one query per relation keyed by the product-id
// set. Batching here is a correctness-adjacent requirement: per-product
// loading would fan out into N+1 queries on every search.
func (cs CatalogStore) hydrateProducts(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]int64, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}

	attributes, err := cs.loadAttributesByProductIDs(ctx, productIDs)
	if err != nil {
		return err
	}

	images, err := cs.loadImagesByProductIDs(ctx, productIDs)
	if err != nil {
		return err
	}

	categoryIDs, err := cs.loadCategoryIDsByProductIDs(ctx, productIDs)
	if err != nil {
		return err
	}

	for i := range products {
		products[i].Attributes = attributes[products[i].ID]
		products[i].Images = images[products[i].ID]
		products[i].CategoryIDs = categoryIDs[products[i].ID]
	}

	return nil
}

func (cs CatalogStore) loadAttributesByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]catalog.Attribute, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Attributes).
		Select(colID, colProductID, colAttrKey, colAttrValue).
		Where(goqu.C(colProductID).In(productIDs)).
		Order(goqu.I(colID).Asc())

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return nil, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionBatchLoad)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	attributes := make(map[int64][]catalog.Attribute)
	for rows.Next() {
		var attribute catalog.Attribute
		if scanErr := rows.Scan(&attribute.ID, &attribute.ProductID, &attribute.Key, &attribute.Value); scanErr != nil {
			return nil, cs.scanFailure(scanErr)
		}

		attributes[attribute.ProductID] = append(attributes[attribute.ProductID], attribute)
	}

	return attributes, nil
}

func (cs CatalogStore) loadImagesByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]catalog.ProductImage, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.ProductImages).
		Select(colID, colProductID, colImageURL).
		Where(goqu.C(colProductID).In(productIDs)).
		Order(goqu.I(colID).Asc())

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return nil, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionBatchLoad)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	images := make(map[int64][]catalog.ProductImage)
	for rows.Next() {
		var image catalog.ProductImage
		if scanErr := rows.Scan(&image.ID, &image.ProductID, &image.ImageURL); scanErr != nil {
			return nil, cs.scanFailure(scanErr)
		}

		images[image.ProductID] = append(images[image.ProductID], image)
	}

	return images, nil
}

func (cs CatalogStore) loadCategoryIDsByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]int64, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.ProductCategories).
		Select(colProductID, colCategoryID).
		Where(goqu.C(colProductID).In(productIDs)).
		Order(goqu.I(colProductID).Asc(), goqu.I(colCategoryID).Asc())

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return nil, err
	}

	rows, _, err := cs.executeQuery(ctx, sqlQuery, logActionBatchLoad)
	if err != nil {
		return nil, err
	}
	defer cs.closeRows(rows)

	memberships := make(map[int64][]int64)
	for rows.Next() {
		var productID, categoryID int64
		if scanErr := rows.Scan(&productID, &categoryID); scanErr != nil {
			return nil, cs.scanFailure(scanErr)
		}

		memberships[productID] = append(memberships[productID], categoryID)
	}

	return memberships, nil
}

func scanProductRow(rows adapters.DBRows, product *catalog.Product) error {
	return rows.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Article,
		&product.Price,
	)
}

/*** query execution helpers ***/

type sqlToSQLer interface {
	ToSQL() (string, []any, error)
}

func (cs CatalogStore) toSQL(stmt sqlToSQLer) (sqlQueryString, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		}

		return "", errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (cs CatalogStore) executeQuery(ctx context.Context, sqlQuery string, action string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := cs.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	cs.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if queryErr != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, duration, errors.Join(catalog.ErrStoreUnavailable, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (cs CatalogStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if cs.logger != nil {
			cs.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (cs CatalogStore) scanFailure(scanErr error) error {
	if cs.logger != nil {
		cs.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
	}

	return errors.Join(catalog.ErrScanningDBRowFailed, scanErr)
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (cs CatalogStore) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	if cs.contextualLogger != nil {
		cs.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action,
			logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if cs.logger != nil {
		cs.logger.Debug(logMsgSQLExecuted+action,
			logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (cs CatalogStore) logOperation(ctx context.Context, action string, args ...any) {
	if cs.contextualLogger != nil {
		cs.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if cs.logger != nil {
		cs.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
