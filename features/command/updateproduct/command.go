// Package updateproduct implements the update product use case. Category
// links and attributes are replaced wholesale; images are replaced only when
// the command carries new ones, so metadata edits never force a re-upload.
package updateproduct

import (
	"io"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createproduct"
)

// Command represents the intent to update an existing product.
type Command struct {
	ProductID   int64
	Title       string
	Description string
	Article     string
	Price       string
	CategoryIDs []int64
	Attributes  []createproduct.AttributeInput
	Images      []io.Reader
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "UpdateProduct"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	productID int64,
	title string,
	description string,
	article string,
	price string,
	categoryIDs []int64,
	attributes []createproduct.AttributeInput,
	images []io.Reader,
) Command {

	return Command{
		ProductID:   productID,
		Title:       title,
		Description: description,
		Article:     article,
		Price:       price,
		CategoryIDs: categoryIDs,
		Attributes:  attributes,
		Images:      images,
	}
}
