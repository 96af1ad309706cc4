package updatecategory

import (
	"context"
	"errors"
	"io"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createcategory"
)

// CatalogStore defines the interface needed by the CommandHandler.
type CatalogStore interface {
	UpdateCategory(ctx context.Context, categoryID int64, category postgresengine.NewCategory) error
}

// CategoryCache invalidates cached category resolutions after a mutation.
type CategoryCache interface {
	Drop(ctx context.Context, categoryIDs ...int64)
}

// ImageStore defines the interface for uploading category images.
type ImageStore interface {
	UploadCategoryImage(ctx context.Context, file io.Reader) (string, error)
}

// CommandHandler updates categories.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	store  CatalogStore
	cache  CategoryCache
	images ImageStore
}

// NewCommandHandler creates a new CommandHandler. The cache and the image
// store may be nil; commands carrying an image are rejected without a store.
func NewCommandHandler(store CatalogStore, cache CategoryCache, images ImageStore) CommandHandler {
	return CommandHandler{
		store:  store,
		cache:  cache,
		images: images,
	}
}

// Handle updates the category.
// Returns catalog.ErrCategoryNotFound for an unknown id and
// catalog.ErrDuplicateCategoryTitle when the title is taken.
func (h CommandHandler) Handle(ctx context.Context, command Command) (int64, error) {
	category, err := createcategory.NormalizeCategory(command.Title, command.Description, command.Type)
	if err != nil {
		return 0, err
	}

	if command.Image != nil {
		if h.images == nil {
			return 0, errors.Join(catalog.ErrInvalidCategoryData, errors.New("image uploads are not configured"))
		}

		if category.ImageURL, err = h.images.UploadCategoryImage(ctx, command.Image); err != nil {
			return 0, err
		}
	}

	if err = h.store.UpdateCategory(ctx, command.CategoryID, category); err != nil {
		return 0, err
	}

	if h.cache != nil {
		h.cache.Drop(ctx, command.CategoryID)
	}

	return command.CategoryID, nil
}
