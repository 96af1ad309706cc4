package categorybytitle

import (
	"context"
	"strings"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// CatalogStore defines the interface needed by the QueryHandler.
type CatalogStore interface {
	GetCategoryByTitle(ctx context.Context, title string) (catalog.Category, error)
}

// QueryHandler loads a single category by its unique title.
type QueryHandler struct {
	store CatalogStore
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store CatalogStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the category or returns catalog.ErrCategoryNotFound. A blank
// title is rejected without hitting the store.
func (h QueryHandler) Handle(ctx context.Context, query Query) (catalog.Category, error) {
	title := strings.TrimSpace(query.Title)
	if title == "" {
		return catalog.Category{}, catalog.ErrInvalidFilterValue
	}

	return h.store.GetCategoryByTitle(ctx, title)
}
