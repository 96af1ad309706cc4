package createcategory

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
)

// CatalogStore defines the interface needed by the CommandHandler.
type CatalogStore interface {
	CreateCategory(ctx context.Context, category postgresengine.NewCategory) (int64, error)
}

// ImageStore defines the interface for uploading category images.
type ImageStore interface {
	UploadCategoryImage(ctx context.Context, file io.Reader) (string, error)
}

// CommandHandler creates categories.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	store  CatalogStore
	images ImageStore
}

// NewCommandHandler creates a new CommandHandler. The image store may be
// nil; commands carrying an image are then rejected.
func NewCommandHandler(store CatalogStore, images ImageStore) CommandHandler {
	return CommandHandler{
		store:  store,
		images: images,
	}
}

// Handle creates the category and returns its id.
// Returns catalog.ErrDuplicateCategoryTitle when the title is taken.
func (h CommandHandler) Handle(ctx context.Context, command Command) (int64, error) {
	category, err := NormalizeCategory(command.Title, command.Description, command.Type)
	if err != nil {
		return 0, err
	}

	if command.Image != nil {
		if category.ImageURL, err = h.uploadImage(ctx, command.Image); err != nil {
			return 0, err
		}
	}

	return h.store.CreateCategory(ctx, category)
}

func (h CommandHandler) uploadImage(ctx context.Context, image io.Reader) (string, error) {
	if h.images == nil {
		return "", errors.Join(catalog.ErrInvalidCategoryData, errors.New("image uploads are not configured"))
	}

	return h.images.UploadCategoryImage(ctx, image)
}

// NormalizeCategory validates and trims category input. The update use case
// reuses it.
func NormalizeCategory(title string, description string, categoryType catalog.CategoryType) (postgresengine.NewCategory, error) {
	var empty postgresengine.NewCategory

	title = strings.TrimSpace(title)
	if title == "" {
		return empty, errors.Join(catalog.ErrInvalidCategoryData, errors.New("category title must not be empty"))
	}

	if !categoryType.IsValid() {
		return empty, errors.Join(catalog.ErrInvalidCategoryData, errors.New("unknown category type"))
	}

	return postgresengine.NewCategory{
		Title:       title,
		Description: strings.TrimSpace(description),
		Type:        categoryType,
	}, nil
}
