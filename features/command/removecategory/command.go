// Package removecategory implements the remove category use case. Removing
// a category unlinks its products and invalidates its cache entry; the
// products themselves stay.
package removecategory

// Command represents the intent to remove a category.
type Command struct {
	CategoryID int64
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return "RemoveCategory"
}

// BuildCommand creates a new Command for the given category id.
func BuildCommand(categoryID int64) Command {
	return Command{CategoryID: categoryID}
}
