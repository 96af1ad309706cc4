package searchproducts

import (
	"context"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// CatalogStore defines the interface needed by the QueryHandler for catalog
// store operations.
type CatalogStore interface {
	ResolveCategoryRefs(ctx context.Context, categoryIDs []int64) ([]catalog.CategoryRef, error)
	SearchProducts(ctx context.Context, filter catalog.SearchFilter, groups []catalog.CategoryGroup) (catalog.ProductPage, error)
}

// CategoryCache accelerates category-id resolution. Lookup returns the
// cached refs plus the ids that missed; Store writes refs back after a
// store read.
type CategoryCache interface {
	Lookup(ctx context.Context, categoryIDs []int64) (hits []catalog.CategoryRef, misses []int64)
	Store(ctx context.Context, refs []catalog.CategoryRef)
}

// QueryHandler orchestrates the search workflow:
// resolve categories → compose and run the search → aggregate facets.
// All observability concerns are handled by the external observable wrapper.
type QueryHandler struct {
	store CatalogStore
	cache CategoryCache
}

// NewQueryHandler creates a QueryHandler. The cache may be nil; resolution
// then always reads the store.
func NewQueryHandler(store CatalogStore, cache CategoryCache) QueryHandler {
	return QueryHandler{
		store: store,
		cache: cache,
	}
}

// Handle executes one search. Category ids that resolve to nothing are
// dropped without error; facets are aggregated over the returned page only.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	refs, err := h.resolveCategoryRefs(ctx, query.Filter.CategoryIDs())
	if err != nil {
		return Result{}, err
	}

	page, err := h.store.SearchProducts(ctx, query.Filter, catalog.GroupCategoryRefs(refs))
	if err != nil {
		return Result{}, err
	}

	return Result{
		Page:   page,
		Facets: catalog.AggregateFacets(page.Products),
	}, nil
}

func (h QueryHandler) resolveCategoryRefs(ctx context.Context, categoryIDs []int64) ([]catalog.CategoryRef, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	if h.cache == nil {
		return h.store.ResolveCategoryRefs(ctx, categoryIDs)
	}

	refs, misses := h.cache.Lookup(ctx, categoryIDs)
	if len(misses) == 0 {
		return refs, nil
	}

	resolved, err := h.store.ResolveCategoryRefs(ctx, misses)
	if err != nil {
		return nil, err
	}

	h.cache.Store(ctx, resolved)

	return append(refs, resolved...), nil
}
