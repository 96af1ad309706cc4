package postgresengine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine/internal/adapters"
)

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}

	r.idx++

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}

	for i, target := range dest {
		switch d := target.(type) {
		case *int64:
			*d = row[i].(int64)
		case *string:
			*d = row[i].(string)
		case *decimal.Decimal:
			*d = row[i].(decimal.Decimal)
		case *catalog.CategoryType:
			*d = row[i].(catalog.CategoryType)
		default:
			return errors.New("unsupported scan target")
		}
	}

	return nil
}

func (r *fakeRows) Close() error { return nil }

// fakeAdapter records every executed query and answers from a routing func.
type fakeAdapter struct {
	queries []string
	respond func(query string) [][]any
}

func (a *fakeAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	a.queries = append(a.queries, query)

	return &fakeRows{rows: a.respond(query)}, nil
}

func (a *fakeAdapter) Exec(context.Context, string) (adapters.DBResult, error) {
	return nil, errors.New("exec not supported by fake")
}

func (a *fakeAdapter) Begin(context.Context) (adapters.DBTx, error) {
	return nil, errors.New("transactions not supported by fake")
}

func (a *fakeAdapter) queriesAgainst(table string) int {
	count := 0
	for _, query := range a.queries {
		if strings.Contains(query, `FROM "`+table+`"`) {
			count++
		}
	}

	return count
}

func catalogPage() func(query string) [][]any {
	return func(query string) [][]any {
		switch {
		case strings.Contains(query, "COUNT(*)"):
			return [][]any{{int64(23)}}
		case strings.Contains(query, `FROM "attributes"`):
			return [][]any{
				{int64(1), int64(10), "color", "red"},
				{int64(2), int64(10), "material", "oak"},
				{int64(3), int64(11), "color", "blue"},
			}
		case strings.Contains(query, `FROM "product_images"`):
			return [][]any{
				{int64(5), int64(10), "https://img.example/10-front.jpg"},
			}
		case strings.Contains(query, `FROM "product_category"`):
			return [][]any{
				{int64(10), int64(3)},
				{int64(11), int64(3)},
				{int64(11), int64(7)},
			}
		case strings.Contains(query, `FROM "products"`):
			return [][]any{
				{int64(10), "Oak Table", "A sturdy oak table", "TBL-010", decimal.RequireFromString("249.00")},
				{int64(11), "Blue Chair", "A comfy chair", "CHR-011", decimal.RequireFromString("89.50")},
			}
		default:
			return nil
		}
	}
}

func Test_SearchProducts_HydratesThePageWithOneQueryPerRelation(t *testing.T) {
	adapter := &fakeAdapter{respond: catalogPage()}
	cs, err := newCatalogStore(adapter)
	require.NoError(t, err)

	filter := catalog.BuildSearchFilter().WithPage(0, 20).Finalize()

	page, err := cs.SearchProducts(context.Background(), filter, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(23), page.TotalCount)
	require.Len(t, page.Products, 2)

	first := page.Products[0]
	assert.Equal(t, "Oak Table", first.Title)
	assert.Len(t, first.Attributes, 2)
	assert.Equal(t, "https://img.example/10-front.jpg", first.PrimaryImageURL())
	assert.Equal(t, []int64{3}, first.CategoryIDs)

	second := page.Products[1]
	assert.Len(t, second.Attributes, 1)
	assert.Empty(t, second.Images)
	assert.Equal(t, []int64{3, 7}, second.CategoryIDs)

	assert.Equal(t, 1, adapter.queriesAgainst("attributes"),
		"attributes must load in one batch for the whole page")
	assert.Equal(t, 1, adapter.queriesAgainst("product_images"),
		"images must load in one batch for the whole page")
	assert.Equal(t, 1, adapter.queriesAgainst("product_category"),
		"memberships must load in one batch for the whole page")
}

func Test_SearchProducts_EmptyPageSkipsHydrationQueries(t *testing.T) {
	adapter := &fakeAdapter{respond: func(query string) [][]any {
		if strings.Contains(query, "COUNT(*)") {
			return [][]any{{int64(0)}}
		}

		return nil
	}}
	cs, err := newCatalogStore(adapter)
	require.NoError(t, err)

	filter := catalog.BuildSearchFilter().WithSearchText("nothing").Finalize()

	page, err := cs.SearchProducts(context.Background(), filter, nil)
	require.NoError(t, err)

	assert.Empty(t, page.Products)
	assert.Equal(t, int64(0), page.TotalCount)
	assert.Equal(t, 0, adapter.queriesAgainst("attributes"))
	assert.Equal(t, 0, adapter.queriesAgainst("product_images"))
}

func Test_GetProductByID_UnknownIDReturnsNotFound(t *testing.T) {
	adapter := &fakeAdapter{respond: func(string) [][]any { return nil }}
	cs, err := newCatalogStore(adapter)
	require.NoError(t, err)

	_, err = cs.GetProductByID(context.Background(), 404)

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func Test_ResolveCategoryRefs_EmptyInputSkipsTheStore(t *testing.T) {
	adapter := &fakeAdapter{respond: func(string) [][]any { return nil }}
	cs, err := newCatalogStore(adapter)
	require.NoError(t, err)

	refs, err := cs.ResolveCategoryRefs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, refs)
	assert.Empty(t, adapter.queries)
}

func Test_ResolveCategoryRefs_UnknownIDsAreSimplyAbsent(t *testing.T) {
	adapter := &fakeAdapter{respond: func(string) [][]any {
		return [][]any{{int64(3), catalog.CategoryTypeRoom}}
	}}
	cs, err := newCatalogStore(adapter)
	require.NoError(t, err)

	refs, err := cs.ResolveCategoryRefs(context.Background(), []int64{3, 999})

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, catalog.CategoryRef{ID: 3, Type: catalog.CategoryTypeRoom}, refs[0])
}

func Test_NewCatalogStore_NilConnectionIsRejected(t *testing.T) {
	_, err := NewCatalogStoreFromPGXPool(nil)

	assert.ErrorIs(t, err, catalog.ErrNilDatabaseConnection)
}

func Test_WithTableNames_EmptyNameIsRejected(t *testing.T) {
	adapter := &fakeAdapter{respond: func(string) [][]any { return nil }}

	_, err := newCatalogStore(adapter, WithTableNames(TableNames{Products: "products"}))

	assert.ErrorIs(t, err, catalog.ErrEmptyTableName)
}

func Test_GetCategoryByTitle_FiltersOnTheUniqueTitle(t *testing.T) {
	adapter := &fakeAdapter{respond: func(query string) [][]any {
		if strings.Contains(query, `FROM "categories"`) {
			return [][]any{{int64(3), "Lighting", "Lamps and lighting", "https://img.example/cat-3.jpg", catalog.CategoryTypeType}}
		}

		return nil
	}}
	cs, err := newCatalogStore(adapter)
	require.NoError(t, err)

	category, err := cs.GetCategoryByTitle(context.Background(), "Lighting")

	require.NoError(t, err)
	assert.Equal(t, catalog.Category{
		ID:          3,
		Title:       "Lighting",
		Description: "Lamps and lighting",
		ImageURL:    "https://img.example/cat-3.jpg",
		Type:        catalog.CategoryTypeType,
	}, category)
	require.Len(t, adapter.queries, 1)
	assert.Contains(t, adapter.queries[0], `"title" = 'Lighting'`)
}
