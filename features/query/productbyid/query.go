// Package productbyid implements the product detail use case: one product
// loaded with its attributes, images, and category memberships.
package productbyid

// Query represents the intent to load one product by id.
type Query struct {
	ProductID int64
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return "ProductByID"
}

// BuildQuery creates a new Query for the given product id.
func BuildQuery(productID int64) Query {
	return Query{ProductID: productID}
}
