// Package categorybyid implements the category detail use case.
package categorybyid

// Query represents the intent to load one category by id.
type Query struct {
	CategoryID int64
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "CategoryByID"
}

// BuildQuery creates a new Query for the given category id.
func BuildQuery(categoryID int64) Query {
	return Query{CategoryID: categoryID}
}
