package catalog

import (
	"slices"

	"github.com/shopspring/decimal"
)

// FacetResult reports, for one result page, which attribute values remain
// available for further refinement and the price bounds observed. It is
// derived, ephemeral, and recomputed on every request.
//
// The scope is deliberately the current page, not the whole filtered set;
// that mirrors the established behavior of this API.
type FacetResult struct {
	// Attributes maps each attribute key seen in the page to the sorted
	// distinct values seen in the page.
	Attributes map[string][]string

	// MinPrice and MaxPrice are the price bounds among page entries;
	// both are zero-valued with HasPrices=false for an empty page.
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	HasPrices bool
}

// AggregateFacets derives the FacetResult from a page of fully hydrated
// products. It is a pure function of the page content: same page in, same
// facets out, no matter how often or concurrently it runs.
func AggregateFacets(products []Product) FacetResult {
	result := FacetResult{
		Attributes: make(map[string][]string),
	}

	valueSets := make(map[string]map[string]struct{})

	for _, product := range products {
		for _, attribute := range product.Attributes {
			values, ok := valueSets[attribute.Key]
			if !ok {
				values = make(map[string]struct{})
				valueSets[attribute.Key] = values
			}
			values[attribute.Value] = struct{}{}
		}

		if !result.HasPrices {
			result.MinPrice = product.Price
			result.MaxPrice = product.Price
			result.HasPrices = true
			continue
		}

		if product.Price.LessThan(result.MinPrice) {
			result.MinPrice = product.Price
		}
		if product.Price.GreaterThan(result.MaxPrice) {
			result.MaxPrice = product.Price
		}
	}

	for key, values := range valueSets {
		sorted := make([]string, 0, len(values))
		for value := range values {
			sorted = append(sorted, value)
		}
		slices.Sort(sorted)

		result.Attributes[key] = sorted
	}

	return result
}
