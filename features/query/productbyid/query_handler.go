package productbyid

import (
	"context"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// CatalogStore defines the interface needed by the QueryHandler.
type CatalogStore interface {
	GetProductByID(ctx context.Context, productID int64) (catalog.Product, error)
}

// QueryHandler loads a single hydrated product.
type QueryHandler struct {
	store CatalogStore
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store CatalogStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the product or returns catalog.ErrProductNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (catalog.Product, error) {
	return h.store.GetProductByID(ctx, query.ProductID)
}
