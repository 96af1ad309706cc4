package removeproduct

import (
	"context"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// CatalogStore defines the interface needed by the CommandHandler.
type CatalogStore interface {
	GetProductByID(ctx context.Context, productID int64) (catalog.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

// ImageStore deletes stored image objects by their delivery URL.
type ImageStore interface {
	DeleteImageByURL(ctx context.Context, imageURL string) error
}

// CommandHandler removes products.
// All observability concerns are handled by the external observable wrapper.
type CommandHandler struct {
	store  CatalogStore
	images ImageStore
}

// NewCommandHandler creates a new CommandHandler. The image store may be
// nil; stored image objects are then left in place.
func NewCommandHandler(store CatalogStore, images ImageStore) CommandHandler {
	return CommandHandler{
		store:  store,
		images: images,
	}
}

// Handle deletes the product or returns catalog.ErrProductNotFound. Stored
// image objects are removed after the rows; a failed object delete leaves an
// orphan but never resurrects the product.
func (h CommandHandler) Handle(ctx context.Context, command Command) (int64, error) {
	product, err := h.store.GetProductByID(ctx, command.ProductID)
	if err != nil {
		return 0, err
	}

	if err = h.store.DeleteProduct(ctx, command.ProductID); err != nil {
		return 0, err
	}

	h.deleteImageObjects(ctx, product.Images)

	return command.ProductID, nil
}

func (h CommandHandler) deleteImageObjects(ctx context.Context, images []catalog.ProductImage) {
	if h.images == nil {
		return
	}

	for _, image := range images {
		_ = h.images.DeleteImageByURL(ctx, image.ImageURL)
	}
}
