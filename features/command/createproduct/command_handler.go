package createproduct

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
	CountCategoriesByIDs(ctx context.Context, categoryIDs []int64) (int64, error)
	CreateProduct(ctx context.Context, product postgresengine.NewProduct) (int64, error)
}

// ImageStore defines the interface for uploading product images.
type ImageStore interface {
	UploadProductImage(ctx context.Context, file io.Reader) (string, error)
}

// CommandHandler orchestrates the create product workflow:
// normalize → validate category references → upload images → persist.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	store  CatalogStore
	images ImageStore
}

// NewCommandHandler creates a new CommandHandler with the provided dependencies.
// The image store may be nil when the deployment has no image backend;
// commands carrying images then fail validation.
func NewCommandHandler(store CatalogStore, images ImageStore) CommandHandler {
	return CommandHandler{
		store:  store,
		images: images,
	}
}

// Handle executes the create product workflow and returns the new product id.
// Unknown category ids are rejected with catalog.ErrCategoryNotFound; a
// product write referencing nothing is fine.
func (h CommandHandler) Handle(ctx context.Context, command Command) (int64, error) {
	product, err := productwrite.Normalize(
		command.Title, command.Description, command.Article, command.Price, command.CategoryIDs)
	if err != nil {
		return 0, err
	}

	product.Attributes = productwrite.NormalizeAttributes(attributesFrom(command.Attributes))

	if err = h.validateCategoryRefs(ctx, product.CategoryIDs); err != nil {
		return 0, err
	}

	if product.ImageURLs, err = h.uploadImages(ctx, command.Images); err != nil {
		return 0, err
	}

	return h.store.CreateProduct(ctx, product)
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
	if len(images) == 0 {
		return nil, nil
	}

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

func attributesFrom(inputs []AttributeInput) []catalog.Attribute {
	attributes := make([]catalog.Attribute, 0, len(inputs))
	for _, input := range inputs {
		attributes = append(attributes, catalog.Attribute{Key: input.Key, Value: input.Value})
	}

	return attributes
}
