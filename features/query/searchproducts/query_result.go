package searchproducts

import (
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// Result is one page of matching products plus the facets aggregated over it.
type Result struct {
	Page   catalog.ProductPage
	Facets catalog.FacetResult
}
