package categorybyid

import (
	"context"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// CatalogStore defines the interface needed by the QueryHandler.
type CatalogStore interface {
	GetCategoryByID(ctx context.Context, categoryID int64) (catalog.Category, error)
}

// QueryHandler loads a single category.
type QueryHandler struct {
	store CatalogStore
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store CatalogStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the category or returns catalog.ErrCategoryNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (catalog.Category, error) {
	return h.store.GetCategoryByID(ctx, query.CategoryID)
}
