package searchproducts_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/searchproducts"
)

type fakeStore struct {
	mu             sync.Mutex
	refs           []catalog.CategoryRef
	resolveCalls   [][]int64
	searchedGroups [][]catalog.CategoryGroup
	search         func(filter catalog.SearchFilter, groups []catalog.CategoryGroup) catalog.ProductPage
}

func (s *fakeStore) ResolveCategoryRefs(_ context.Context, categoryIDs []int64) ([]catalog.CategoryRef, error) {
	s.mu.Lock()
	s.resolveCalls = append(s.resolveCalls, categoryIDs)
	s.mu.Unlock()

	resolved := make([]catalog.CategoryRef, 0)
	for _, ref := range s.refs {
		for _, id := range categoryIDs {
			if ref.ID == id {
				resolved = append(resolved, ref)
			}
		}
	}

	return resolved, nil
}

func (s *fakeStore) SearchProducts(
	_ context.Context,
	filter catalog.SearchFilter,
	groups []catalog.CategoryGroup,
) (catalog.ProductPage, error) {

	s.mu.Lock()
	s.searchedGroups = append(s.searchedGroups, groups)
	s.mu.Unlock()

	if s.search != nil {
		return s.search(filter, groups), nil
	}

	return catalog.ProductPage{PageNumber: filter.PageNumber(), PageSize: filter.PageSize()}, nil
}

type fakeCache struct {
	mu     sync.Mutex
	refs   map[int64]catalog.CategoryRef
	stored []catalog.CategoryRef
}

func (c *fakeCache) Lookup(_ context.Context, categoryIDs []int64) (hits []catalog.CategoryRef, misses []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range categoryIDs {
		if ref, ok := c.refs[id]; ok {
			hits = append(hits, ref)
			continue
		}

		misses = append(misses, id)
	}

	return hits, misses
}

func (c *fakeCache) Store(_ context.Context, refs []catalog.CategoryRef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stored = append(c.stored, refs...)
	for _, ref := range refs {
		if c.refs == nil {
			c.refs = make(map[int64]catalog.CategoryRef)
		}

		c.refs[ref.ID] = ref
	}
}

func Test_Handle_UnresolvableCategoryIDsAreDroppedWithoutError(t *testing.T) {
	store := &fakeStore{refs: []catalog.CategoryRef{{ID: 1, Type: catalog.CategoryTypeRoom}}}
	handler := searchproducts.NewQueryHandler(store, nil)

	filter := catalog.BuildSearchFilter().WithCategoryIDs(1, 999).Finalize()

	_, err := handler.Handle(context.Background(), searchproducts.BuildQuery(filter))
	require.NoError(t, err)

	require.Len(t, store.searchedGroups, 1)
	require.Len(t, store.searchedGroups[0], 1, "only the resolvable id may constrain the search")
	assert.Equal(t, []int64{1}, store.searchedGroups[0][0].IDs)
}

func Test_Handle_AllCategoryIDsUnresolvableMeansNoConstraint(t *testing.T) {
	store := &fakeStore{}
	handler := searchproducts.NewQueryHandler(store, nil)

	filter := catalog.BuildSearchFilter().WithCategoryIDs(998, 999).Finalize()

	result, err := handler.Handle(context.Background(), searchproducts.BuildQuery(filter))
	require.NoError(t, err)

	require.Len(t, store.searchedGroups, 1)
	assert.Empty(t, store.searchedGroups[0])
	assert.Empty(t, result.Page.Products)
}

func Test_Handle_CacheHitsSkipStoreResolution(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{refs: map[int64]catalog.CategoryRef{
		5: {ID: 5, Type: catalog.CategoryTypeType},
	}}
	handler := searchproducts.NewQueryHandler(store, cache)

	filter := catalog.BuildSearchFilter().WithCategoryIDs(5).Finalize()

	_, err := handler.Handle(context.Background(), searchproducts.BuildQuery(filter))
	require.NoError(t, err)

	assert.Empty(t, store.resolveCalls, "a full cache hit must not read the store")
}

func Test_Handle_CacheMissesAreResolvedAndWrittenBack(t *testing.T) {
	store := &fakeStore{refs: []catalog.CategoryRef{
		{ID: 5, Type: catalog.CategoryTypeType},
		{ID: 6, Type: catalog.CategoryTypeRoom},
	}}
	cache := &fakeCache{refs: map[int64]catalog.CategoryRef{
		5: {ID: 5, Type: catalog.CategoryTypeType},
	}}
	handler := searchproducts.NewQueryHandler(store, cache)

	filter := catalog.BuildSearchFilter().WithCategoryIDs(5, 6).Finalize()

	_, err := handler.Handle(context.Background(), searchproducts.BuildQuery(filter))
	require.NoError(t, err)

	require.Len(t, store.resolveCalls, 1)
	assert.Equal(t, []int64{6}, store.resolveCalls[0])
	assert.Equal(t, []catalog.CategoryRef{{ID: 6, Type: catalog.CategoryTypeRoom}}, cache.stored)

	require.Len(t, store.searchedGroups, 1)
	assert.Len(t, store.searchedGroups[0], 2)
}

func Test_Handle_FacetsAreAggregatedOverTheReturnedPage(t *testing.T) {
	store := &fakeStore{search: func(catalog.SearchFilter, []catalog.CategoryGroup) catalog.ProductPage {
		return catalog.ProductPage{
			Products: []catalog.Product{
				{
					ID:    1,
					Price: decimal.RequireFromString("10.00"),
					Attributes: []catalog.Attribute{
						{Key: "color", Value: "red"},
					},
				},
				{
					ID:    2,
					Price: decimal.RequireFromString("30.00"),
					Attributes: []catalog.Attribute{
						{Key: "color", Value: "blue"},
					},
				},
			},
			TotalCount: 2,
		}
	}}
	handler := searchproducts.NewQueryHandler(store, nil)

	result, err := handler.Handle(context.Background(), searchproducts.BuildQuery(catalog.BuildSearchFilter().Finalize()))
	require.NoError(t, err)

	assert.Equal(t, []string{"blue", "red"}, result.Facets.Attributes["color"])
	assert.True(t, result.Facets.HasPrices)
	assert.True(t, result.Facets.MinPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, result.Facets.MaxPrice.Equal(decimal.RequireFromString("30.00")))
}

func Test_Handle_ConcurrentDistinctFiltersDoNotCrossTalk(t *testing.T) {
	store := &fakeStore{search: func(filter catalog.SearchFilter, _ []catalog.CategoryGroup) catalog.ProductPage {
		return catalog.ProductPage{
			Products: []catalog.Product{{ID: 1, Title: filter.SearchText()}},
			TotalCount: 1,
			PageNumber: filter.PageNumber(),
			PageSize:   filter.PageSize(),
		}
	}}
	handler := searchproducts.NewQueryHandler(store, nil)

	const workers = 32

	var wg sync.WaitGroup
	errs := make([]error, workers)
	titles := make([]string, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			searchText := fmt.Sprintf("filter-%d", i)
			filter := catalog.BuildSearchFilter().
				WithSearchText(searchText).
				WithPage(i, 10).
				Finalize()

			result, err := handler.Handle(context.Background(), searchproducts.BuildQuery(filter))
			errs[i] = err
			if err == nil && len(result.Page.Products) == 1 {
				titles[i] = result.Page.Products[0].Title
			}
		}()
	}

	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("filter-%d", i), titles[i],
			"each request must see only its own filter's results")
	}
}
