package postgresengine

import (
	"strings"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

func newTestStore() CatalogStore {
	return CatalogStore{tables: DefaultTableNames()}
}

// renderSearchSQL renders the WHERE clause a filter produces, the same way
// queryProductPage does.
func renderSearchSQL(t *testing.T, filter catalog.SearchFilter, groups []catalog.CategoryGroup) string {
	t.Helper()

	cs := newTestStore()

	stmt := goqu.Dialect(dialectPostgres).
		From(cs.tables.Products).
		Select(colID)

	if expressions := cs.searchWhereExpressions(filter, groups); len(expressions) > 0 {
		stmt = stmt.Where(goqu.And(expressions...))
	}

	sqlQuery, _, err := stmt.ToSQL()
	require.NoError(t, err)

	return sqlQuery
}

func Test_SearchWhereExpressions_UnconstrainedFilterRendersNoWhereClause(t *testing.T) {
	filter := catalog.BuildSearchFilter().Finalize()

	sqlQuery := renderSearchSQL(t, filter, nil)

	assert.NotContains(t, sqlQuery, "WHERE")
}

func Test_SearchWhereExpressions_CategoryGroupsCombineConjunctively(t *testing.T) {
	filter := catalog.BuildSearchFilter().Finalize()
	groups := []catalog.CategoryGroup{
		{Type: catalog.CategoryTypeRoom, IDs: []int64{7}},
		{Type: catalog.CategoryTypeType, IDs: []int64{1, 2}},
	}

	sqlQuery := renderSearchSQL(t, filter, groups)

	assert.Equal(t, 2, strings.Count(sqlQuery, `FROM "product_category"`),
		"expected one membership subquery per category group")
	assert.Contains(t, sqlQuery, `"category_id" IN (1, 2)`)
	assert.Contains(t, sqlQuery, `"category_id" IN (7)`)
	assert.Contains(t, sqlQuery, " AND ")
}

func Test_SearchWhereExpressions_WideningACategoryGroupWidensTheMembershipList(t *testing.T) {
	filter := catalog.BuildSearchFilter().Finalize()

	narrow := renderSearchSQL(t, filter, []catalog.CategoryGroup{
		{Type: catalog.CategoryTypeType, IDs: []int64{1}},
	})
	wide := renderSearchSQL(t, filter, []catalog.CategoryGroup{
		{Type: catalog.CategoryTypeType, IDs: []int64{1, 2}},
	})

	assert.Contains(t, narrow, `"category_id" IN (1)`)
	assert.Contains(t, wide, `"category_id" IN (1, 2)`)
}

func Test_SearchWhereExpressions_PriceBoundsAreInclusive(t *testing.T) {
	filter := catalog.BuildSearchFilter().
		WithMinPrice(decimal.RequireFromString("10.50")).
		WithMaxPrice(decimal.RequireFromString("99.99")).
		Finalize()

	sqlQuery := renderSearchSQL(t, filter, nil)

	assert.Contains(t, sqlQuery, `"price" >= '10.5'`)
	assert.Contains(t, sqlQuery, `"price" <= '99.99'`)
	assert.NotContains(t, sqlQuery, `"price" > '10.5'`,
		"lower bound must not be exclusive")
}

func Test_SearchWhereExpressions_SingleBoundRendersAlone(t *testing.T) {
	filter := catalog.BuildSearchFilter().
		WithMinPrice(decimal.RequireFromString("5")).
		Finalize()

	sqlQuery := renderSearchSQL(t, filter, nil)

	assert.Contains(t, sqlQuery, `"price" >= '5'`)
	assert.NotContains(t, sqlQuery, `"price" <=`)
}

func Test_SearchWhereExpressions_SingleTokenTextSearchMatchesFourSources(t *testing.T) {
	filter := catalog.BuildSearchFilter().
		WithSearchText("Lamp").
		Finalize()

	sqlQuery := renderSearchSQL(t, filter, nil)

	assert.Contains(t, sqlQuery, `lower("title") LIKE '%lamp%'`)
	assert.Contains(t, sqlQuery, `lower("description") LIKE '%lamp%'`)
	assert.Contains(t, sqlQuery, `lower("article") LIKE '%lamp%'`)
	assert.Contains(t, sqlQuery, `"value" LIKE '%lamp%'`)
	assert.Contains(t, sqlQuery, " OR ")
}

func Test_SearchWhereExpressions_MultiTokenTextSearchRendersEveryToken(t *testing.T) {
	filter := catalog.BuildSearchFilter().
		WithSearchText("oak table, round").
		Finalize()

	sqlQuery := renderSearchSQL(t, filter, nil)

	for _, token := range []string{"oak", "table", "round"} {
		assert.Contains(t, sqlQuery, `'%`+token+`%'`)
	}
	assert.NotContains(t, sqlQuery, `'%oak table, round%'`,
		"tokenized mode replaces the phrase match")
}

func Test_SearchWhereExpressions_AttributesRequireEveryKey(t *testing.T) {
	filter := catalog.BuildSearchFilter().
		WithAttribute("color", "red", "blue").
		WithAttribute("material", "oak").
		Finalize()

	sqlQuery := renderSearchSQL(t, filter, nil)

	assert.Contains(t, sqlQuery, `"key" = 'color'`)
	assert.Contains(t, sqlQuery, `"value" IN ('blue', 'red')`)
	assert.Contains(t, sqlQuery, `"key" = 'material'`)
	assert.Contains(t, sqlQuery, `"value" IN ('oak')`)
	assert.Contains(t, sqlQuery, `HAVING (COUNT(DISTINCT "key") = 2)`,
		"every requested key must be covered")
}

func Test_SearchWhereExpressions_ProvidersComposeInStableOrder(t *testing.T) {
	filter := catalog.BuildSearchFilter().
		WithMinPrice(decimal.RequireFromString("1")).
		WithSearchText("vase").
		WithAttribute("color", "white").
		Finalize()
	groups := []catalog.CategoryGroup{{Type: catalog.CategoryTypeDesign, IDs: []int64{3}}}

	sqlQuery := renderSearchSQL(t, filter, groups)

	categoryPos := strings.Index(sqlQuery, `"category_id"`)
	pricePos := strings.Index(sqlQuery, `"price" >=`)
	textPos := strings.Index(sqlQuery, `lower("title")`)
	attributePos := strings.Index(sqlQuery, `HAVING`)

	require.NotEqual(t, -1, categoryPos)
	require.NotEqual(t, -1, pricePos)
	require.NotEqual(t, -1, textPos)
	require.NotEqual(t, -1, attributePos)

	assert.Less(t, categoryPos, pricePos)
	assert.Less(t, pricePos, textPos)
	assert.Less(t, textPos, attributePos)
}

func Test_SearchWhereExpressions_SameFilterAlwaysRendersSameSQL(t *testing.T) {
	build := func() string {
		filter := catalog.BuildSearchFilter().
			WithAttribute("material", "oak", "ash").
			WithSearchText("table").
			Finalize()

		return renderSearchSQL(t, filter, []catalog.CategoryGroup{
			{Type: catalog.CategoryTypeRoom, IDs: []int64{4, 2}},
		})
	}

	first := build()
	for range 5 {
		assert.Equal(t, first, build())
	}
}
