// Package createcategory implements the create category use case.
// Category titles are globally unique across all types.
package createcategory

import (
	"io"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// Command represents the intent to create a category. Image is an optional
// category image to upload.
type Command struct {
	Title       string
	Description string
	Type        catalog.CategoryType
	Image       io.Reader
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "CreateCategory"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(title string, description string, categoryType catalog.CategoryType, image io.Reader) Command {
	return Command{
		Title:       title,
		Description: description,
		Type:        categoryType,
		Image:       image,
	}
}
