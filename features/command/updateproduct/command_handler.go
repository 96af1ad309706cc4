package updateproduct

import (
	"context"
	"io"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/internal/productwrite"
)

// CatalogStore defines the interface needed by the CommandHandler for
// catalog store operations.
type CatalogStore interface {
	GetProductByID(ctx context.Context, productID int64) (catalog.Product, error)
	CountCategoriesByIDs(ctx context.Context, categoryIDs []int64) (int64, error)
	UpdateProduct(ctx context.Context, productID int64, product postgresengine.NewProduct) error
}

// ImageStore defines the interface for managing product image objects.
type ImageStore interface {
	UploadProductImage(ctx context.Context, file io.Reader) (string, error)
	DeleteImageByURL(ctx context.Context, imageURL string) error
}

// CommandHandler orchestrates the update product workflow.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	store  CatalogStore
	images ImageStore
}

// NewCommandHandler creates a new CommandHandler with the provided dependencies.
func NewCommandHandler(store CatalogStore, images ImageStore) CommandHandler {
	return CommandHandler{
		store:  store,
		images: images,
	}
}

// Handle executes the update product workflow.
// Returns catalog.ErrProductNotFound for an unknown id and
// catalog.ErrCategoryNotFound for unknown category references.
func (h CommandHandler) Handle(ctx context.Context, command Command) (int64, error) {
	product, err := productwrite.Normalize(
		command.Title, command.Description, command.Article, command.Price, command.CategoryIDs)
	if err != nil {
		return 0, err
	}

	attributes := make([]catalog.Attribute, 0, len(command.Attributes))
	for _, input := range command.Attributes {
		attributes = append(attributes, catalog.Attribute{Key: input.Key, Value: input.Value})
	}

	product.Attributes = productwrite.NormalizeAttributes(attributes)

	if err = h.validateCategoryRefs(ctx, product.CategoryIDs); err != nil {
		return 0, err
	}

	var replacedURLs []string

	if len(command.Images) > 0 {
		if replacedURLs, err = h.storedImageURLs(ctx, command.ProductID); err != nil {
			return 0, err
		}

		if product.ImageURLs, err = h.uploadImages(ctx, command.Images); err != nil {
			return 0, err
		}
	}

	if err = h.store.UpdateProduct(ctx, command.ProductID, product); err != nil {
		return 0, err
	}

	h.deleteImageObjects(ctx, replacedURLs)

	return command.ProductID, nil
}

func (h CommandHandler) storedImageURLs(ctx context.Context, productID int64) ([]string, error) {
	product, err := h.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(product.Images))
	for _, image := range product.Images {
		urls = append(urls, image.ImageURL)
	}

	return urls, nil
}

// deleteImageObjects removes the replaced objects after the rows committed.
// A failed object delete leaves an orphan but never rolls back the update.
func (h CommandHandler) deleteImageObjects(ctx context.Context, urls []string) {
	if h.images == nil {
		return
	}

	for _, url := range urls {
		_ = h.images.DeleteImageByURL(ctx, url)
	}
}

func (h CommandHandler) validateCategoryRefs(ctx context.Context, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	count, err := h.store.CountCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}

	if count != int64(len(categoryIDs)) {
		return catalog.ErrCategoryNotFound
	}

	return nil
}

func (h CommandHandler) uploadImages(ctx context.Context, images []io.Reader) ([]string, error) {
	if h.images == nil {
		return nil, catalog.ErrInvalidProductData
	}

	urls := make([]string, 0, len(images))
	for _, image := range images {
		url, err := h.images.UploadProductImage(ctx, image)
		if err != nil {
			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}
