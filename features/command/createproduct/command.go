package createproduct

import (
	"io"
)

// AttributeInput is one attribute pair as submitted by the client.
// Keys and values are normalized to lowercase before they reach storage so
// filtering stays case-insensitive.
type AttributeInput struct {
	Key   string
	Value string
}

// Command represents the intent to add a product to the catalog.
// It encapsulates all the necessary information required to execute the
// create product use case; Images are uploaded to the image store during
// handling and only their URLs are persisted.
type Command struct {
	Title       string
	Description string
	Article     string
	Price       string
	CategoryIDs []int64
	Attributes  []AttributeInput
	Images      []io.Reader
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "CreateProduct"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	title string,
	description string,
	article string,
	price string,
	categoryIDs []int64,
	attributes []AttributeInput,
	images []io.Reader,
) Command {

	return Command{
		Title:       title,
		Description: description,
		Article:     article,
		Price:       price,
		CategoryIDs: categoryIDs,
		Attributes:  attributes,
		Images:      images,
	}
}
