package listcategories

import (
	"context"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
)

// CatalogStore defines the interface needed by the QueryHandler.
type CatalogStore interface {
	ListCategories(ctx context.Context, categoryType catalog.CategoryType, pageNumber int, pageSize int) (postgresengine.CategoryPage, error)
}

// QueryHandler lists categories from the store.
type QueryHandler struct {
	store CatalogStore
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store CatalogStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle lists one page of categories. An invalid non-empty type yields
// catalog.ErrInvalidFilterValue.
func (h QueryHandler) Handle(ctx context.Context, query Query) (postgresengine.CategoryPage, error) {
	if query.Type != "" && !query.Type.IsValid() {
		return postgresengine.CategoryPage{}, catalog.ErrInvalidFilterValue
	}

	return h.store.ListCategories(ctx, query.Type, query.PageNumber, query.PageSize)
}
