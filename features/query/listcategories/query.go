// Package listcategories implements the category listing use case with
// optional type restriction and pagination.
package listcategories

import (
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// Query represents the intent to list categories. An empty Type lists all
// categories; otherwise Type must be a valid category type.
type Query struct {
	Type       catalog.CategoryType
	PageNumber int
	PageSize   int
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "ListCategories"
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(categoryType catalog.CategoryType, pageNumber int, pageSize int) Query {
	return Query{
		Type:       categoryType,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}
