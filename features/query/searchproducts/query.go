package searchproducts

import (
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// Query represents the intent to search the product catalog with a filter.
type Query struct {
	Filter catalog.SearchFilter
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "SearchProducts"
}

// BuildQuery creates a new Query for the given filter.
func BuildQuery(filter catalog.SearchFilter) Query {
	return Query{Filter: filter}
}
