package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

func facetPage() []catalog.Product {
	return []catalog.Product{
		{
			ID:    1,
			Price: decimal.RequireFromString("49.90"),
			Attributes: []catalog.Attribute{
				{Key: "color", Value: "red"},
				{Key: "color", Value: "blue"},
				{Key: "size", Value: "m"},
			},
		},
		{
			ID:    2,
			Price: decimal.RequireFromString("19.99"),
			Attributes: []catalog.Attribute{
				{Key: "color", Value: "red"},
				{Key: "material", Value: "oak"},
			},
		},
		{
			ID:         3,
			Price:      decimal.RequireFromString("120.00"),
			Attributes: nil,
		},
	}
}

func Test_AggregateFacets(t *testing.T) {
	result := catalog.AggregateFacets(facetPage())

	assert.Equal(t, map[string][]string{
		"color":    {"blue", "red"},
		"material": {"oak"},
		"size":     {"m"},
	}, result.Attributes)

	assert.True(t, result.HasPrices)
	assert.Equal(t, "19.99", result.MinPrice.StringFixed(2))
	assert.Equal(t, "120.00", result.MaxPrice.StringFixed(2))
}

func Test_AggregateFacets_EmptyPage(t *testing.T) {
	result := catalog.AggregateFacets(nil)

	assert.Empty(t, result.Attributes)
	assert.False(t, result.HasPrices)
}

func Test_AggregateFacets_SingleProductBoundsCoincide(t *testing.T) {
	page := []catalog.Product{{ID: 7, Price: decimal.RequireFromString("5.00")}}

	result := catalog.AggregateFacets(page)

	assert.True(t, result.HasPrices)
	assert.True(t, result.MinPrice.Equal(result.MaxPrice))
}

// Faceting is a pure function of the page content: re-running it must yield
// identical output.
func Test_AggregateFacets_Idempotent(t *testing.T) {
	page := facetPage()

	first := catalog.AggregateFacets(page)
	second := catalog.AggregateFacets(page)

	assert.Equal(t, first, second)
}
