package postgresengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine/internal/adapters"
)

// NewProduct carries the fields for creating or fully updating a product.
// Category memberships reference existing categories by id; attributes and
// images are owned by the product and replaced wholesale on update.
type NewProduct struct {
	Title       string
	Description string
	Article     string
	Price       string
	CategoryIDs []int64
	Attributes  []catalog.Attribute
	ImageURLs   []string
}

// CreateProduct inserts a product with its category links, attributes, and
// images in one transaction and returns the new product id.
// Returns catalog.ErrDuplicateArticle when the article is already taken.
func (cs CatalogStore) CreateProduct(ctx context.Context, product NewProduct) (int64, error) {
	tx, err := cs.beginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer cs.rollbackTx(ctx, tx)

	taken, err := cs.articleTaken(ctx, tx, product.Article, 0)
	if err != nil {
		return 0, err
	}

	if taken {
		return 0, catalog.ErrDuplicateArticle
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(cs.tables.Products).
		Rows(goqu.Record{
			colTitle:       product.Title,
			colDescription: product.Description,
			colArticle:     product.Article,
			colPrice:       product.Price,
		}).
		Returning(colID)

	sqlQuery, err := cs.toSQL(insertStmt)
	if err != nil {
		return 0, err
	}

	productID, err := cs.txQueryID(ctx, tx, sqlQuery)
	if err != nil {
		return 0, err
	}

	if err = cs.insertProductRelations(ctx, tx, productID, product); err != nil {
		return 0, err
	}

	if err = cs.commitTx(ctx, tx); err != nil {
		return 0, err
	}

	return productID, nil
}

// UpdateProduct replaces a product's fields, category links, and attributes.
// Images are replaced only when ImageURLs is non-nil; a nil slice keeps the
// existing images untouched so metadata edits do not force a re-upload.
// Returns catalog.ErrProductNotFound when the id does not exist.
func (cs CatalogStore) UpdateProduct(ctx context.Context, productID int64, product NewProduct) error {
	tx, err := cs.beginTx(ctx)
	if err != nil {
		return err
	}
	defer cs.rollbackTx(ctx, tx)

	taken, err := cs.articleTaken(ctx, tx, product.Article, productID)
	if err != nil {
		return err
	}

	if taken {
		return catalog.ErrDuplicateArticle
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(cs.tables.Products).
		Set(goqu.Record{
			colTitle:       product.Title,
			colDescription: product.Description,
			colArticle:     product.Article,
			colPrice:       product.Price,
		}).
		Where(goqu.C(colID).Eq(productID))

	sqlQuery, err := cs.toSQL(updateStmt)
	if err != nil {
		return err
	}

	affected, err := cs.txExec(ctx, tx, sqlQuery)
	if err != nil {
		return err
	}

	if affected == 0 {
		return catalog.ErrProductNotFound
	}

	if err = cs.deleteByProductID(ctx, tx, cs.tables.ProductCategories, productID); err != nil {
		return err
	}

	if err = cs.deleteByProductID(ctx, tx, cs.tables.Attributes, productID); err != nil {
		return err
	}

	if product.ImageURLs != nil {
		if err = cs.deleteByProductID(ctx, tx, cs.tables.ProductImages, productID); err != nil {
			return err
		}
	}

	if err = cs.insertProductRelations(ctx, tx, productID, product); err != nil {
		return err
	}

	return cs.commitTx(ctx, tx)
}

// DeleteProduct removes a product and all its owned rows in one transaction.
// Returns catalog.ErrProductNotFound when the id does not exist.
func (cs CatalogStore) DeleteProduct(ctx context.Context, productID int64) error {
	tx, err := cs.beginTx(ctx)
	if err != nil {
		return err
	}
	defer cs.rollbackTx(ctx, tx)

	for _, table := range []string{cs.tables.ProductCategories, cs.tables.Attributes, cs.tables.ProductImages} {
		if err = cs.deleteByProductID(ctx, tx, table, productID); err != nil {
			return err
		}
	}

	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(cs.tables.Products).
		Where(goqu.C(colID).Eq(productID))

	sqlQuery, err := cs.toSQL(deleteStmt)
	if err != nil {
		return err
	}

	affected, err := cs.txExec(ctx, tx, sqlQuery)
	if err != nil {
		return err
	}

	if affected == 0 {
		return catalog.ErrProductNotFound
	}

	return cs.commitTx(ctx, tx)
}

func (cs CatalogStore) insertProductRelations(
	ctx context.Context,
	tx adapters.DBTx,
	productID int64,
	product NewProduct,
) error {

	if len(product.CategoryIDs) > 0 {
		rows := make([]any, 0, len(product.CategoryIDs))
		for _, categoryID := range product.CategoryIDs {
			rows = append(rows, goqu.Record{colProductID: productID, colCategoryID: categoryID})
		}

		if err := cs.txInsert(ctx, tx, cs.tables.ProductCategories, rows); err != nil {
			return err
		}
	}

	if len(product.Attributes) > 0 {
		rows := make([]any, 0, len(product.Attributes))
		for _, attribute := range product.Attributes {
			rows = append(rows, goqu.Record{
				colProductID: productID,
				colAttrKey:   attribute.Key,
				colAttrValue: attribute.Value,
			})
		}

		if err := cs.txInsert(ctx, tx, cs.tables.Attributes, rows); err != nil {
			return err
		}
	}

	if len(product.ImageURLs) > 0 {
		rows := make([]any, 0, len(product.ImageURLs))
		for _, imageURL := range product.ImageURLs {
			rows = append(rows, goqu.Record{colProductID: productID, colImageURL: imageURL})
		}

		if err := cs.txInsert(ctx, tx, cs.tables.ProductImages, rows); err != nil {
			return err
		}
	}

	return nil
}

// articleTaken reports whether another product already uses the article.
// The check runs inside the caller's transaction so a concurrent insert of
// the same article is caught by the unique constraint at commit at the latest.
func (cs CatalogStore) articleTaken(ctx context.Context, tx adapters.DBTx, article string, excludeID int64) (bool, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Products).
		Select(colID).
		Where(goqu.C(colArticle).Eq(article), goqu.C(colID).Neq(excludeID))

	sqlQuery, err := cs.toSQL(selectStmt)
	if err != nil {
		return false, err
	}

	rows, err := tx.Query(ctx, sqlQuery)
	if err != nil {
		return false, errors.Join(catalog.ErrStoreUnavailable, err)
	}
	defer cs.closeRows(rows)

	return rows.Next(), nil
}

func (cs CatalogStore) deleteByProductID(ctx context.Context, tx adapters.DBTx, table string, productID int64) error {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(table).
		Where(goqu.C(colProductID).Eq(productID))

	sqlQuery, err := cs.toSQL(deleteStmt)
	if err != nil {
		return err
	}

	_, err = cs.txExec(ctx, tx, sqlQuery)

	return err
}

func (cs CatalogStore) txInsert(ctx context.Context, tx adapters.DBTx, table string, rows []any) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(table).
		Rows(rows...)

	sqlQuery, err := cs.toSQL(insertStmt)
	if err != nil {
		return err
	}

	_, err = cs.txExec(ctx, tx, sqlQuery)

	return err
}

// txQueryID runs a statement with a RETURNING id clause and scans the id.
func (cs CatalogStore) txQueryID(ctx context.Context, tx adapters.DBTx, sqlQuery string) (int64, error) {
	rows, err := tx.Query(ctx, sqlQuery)
	if err != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(catalog.ErrStoreUnavailable, err)
	}
	defer cs.closeRows(rows)

	var id int64
	if !rows.Next() {
		return 0, catalog.ErrStoreUnavailable
	}

	if scanErr := rows.Scan(&id); scanErr != nil {
		return 0, cs.scanFailure(scanErr)
	}

	return id, nil
}

func (cs CatalogStore) txExec(ctx context.Context, tx adapters.DBTx, sqlQuery string) (int64, error) {
	result, err := tx.Exec(ctx, sqlQuery)
	if err != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(catalog.ErrStoreUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(catalog.ErrStoreUnavailable, err)
	}

	return affected, nil
}

func (cs CatalogStore) beginTx(ctx context.Context) (adapters.DBTx, error) {
	tx, err := cs.db.Begin(ctx)
	if err != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgTxBeginFailed, logAttrError, err.Error())
		}

		return nil, errors.Join(catalog.ErrStoreUnavailable, err)
	}

	return tx, nil
}

func (cs CatalogStore) commitTx(ctx context.Context, tx adapters.DBTx) error {
	if err := tx.Commit(ctx); err != nil {
		if cs.logger != nil {
			cs.logger.Error(logMsgTxCommitFailed, logAttrError, err.Error())
		}

		return errors.Join(catalog.ErrStoreUnavailable, err)
	}

	return nil
}

func (cs CatalogStore) rollbackTx(ctx context.Context, tx adapters.DBTx) {
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		if cs.logger != nil {
			cs.logger.Warn(logMsgTxRollbackFailed, logAttrError, rollbackErr.Error())
		}
	}
}
