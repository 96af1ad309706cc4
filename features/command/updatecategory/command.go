// Package updatecategory implements the update category use case. A changed
// category invalidates its cache entry so the search path never resolves a
// stale type.
package updatecategory

import (
	"io"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// Command represents the intent to change a category. A nil Image keeps the
// stored category image.
type Command struct {
	CategoryID  int64
	Title       string
	Description string
	Type        catalog.CategoryType
	Image       io.Reader
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "UpdateCategory"
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	categoryID int64,
	title string,
	description string,
	categoryType catalog.CategoryType,
	image io.Reader,
) Command {

	return Command{
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Type:        categoryType,
		Image:       image,
	}
}
