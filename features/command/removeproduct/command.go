// Package removeproduct implements the remove product use case. The store
// removes the product and its owned attribute, image, and membership rows in
// one transaction.
package removeproduct

// Command represents the intent to remove a product from the catalog.
type Command struct {
	ProductID int64
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "RemoveProduct"
}

// BuildCommand creates a new Command for the given product id.
func BuildCommand(productID int64) Command {
	return Command{ProductID: productID}
}
