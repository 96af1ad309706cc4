// Package categorybytitle implements the category lookup by its unique title.
package categorybytitle

// Query represents the intent to load one category by its title.
type Query struct {
	Title string
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "CategoryByTitle"
}

// BuildQuery creates a new Query for the given category title.
func BuildQuery(title string) Query {
	return Query{Title: title}
}
