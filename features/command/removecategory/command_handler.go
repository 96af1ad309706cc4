package removecategory

import (
	"context"
)

// CatalogStore defines the interface needed by the CommandHandler.
type CatalogStore interface {
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// CategoryCache invalidates cached category resolutions after a mutation.
type CategoryCache interface {
	Drop(ctx context.Context, categoryIDs ...int64)
}

// CommandHandler removes categories.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	store CatalogStore
	cache CategoryCache
}

// NewCommandHandler creates a new CommandHandler. The cache may be nil.
func NewCommandHandler(store CatalogStore, cache CategoryCache) CommandHandler {
	return CommandHandler{
		store: store,
		cache: cache,
	}
}

// Handle deletes the category or returns catalog.ErrCategoryNotFound.
func (h CommandHandler) Handle(ctx context.Context, command Command) (int64, error) {
	if err := h.store.DeleteCategory(ctx, command.CategoryID); err != nil {
		return 0, err
	}

	if h.cache != nil {
		h.cache.Drop(ctx, command.CategoryID)
	}

	return command.CategoryID, nil
}
