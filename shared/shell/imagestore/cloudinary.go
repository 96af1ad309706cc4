// Package imagestore stores product and category images in Cloudinary and
// hands back the secure delivery URLs that get persisted on the product.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	productFolder  = "products"
	categoryFolder = "categories"
)

var (
	ErrEmptyUploadURL  = errors.New("upload succeeded but returned no url")
	ErrNotADeliveryURL = errors.New("not a cloudinary delivery url")
)

// Store wraps a Cloudinary client.
type Store struct {
	cld *cloudinary.Cloudinary
}

// NewFromURL creates a store from a cloudinary:// credentials URL.
func NewFromURL(cloudinaryURL string) (*Store, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}

	return &Store{cld: cld}, nil
}

// UploadProductImage uploads one image and returns its secure URL.
// Object names are random so that re-uploads never overwrite each other.
func (s *Store) UploadProductImage(ctx context.Context, file io.Reader) (string, error) {
	return s.upload(ctx, productFolder, file)
}

// UploadCategoryImage uploads one category image and returns its secure URL.
func (s *Store) UploadCategoryImage(ctx context.Context, file io.Reader) (string, error) {
	return s.upload(ctx, categoryFolder, file)
}

func (s *Store) upload(ctx context.Context, folder string, file io.Reader) (string, error) {
	unique := true
	overwrite := false

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       uuid.NewString(),
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if result.SecureURL == "" {
		return "", ErrEmptyUploadURL
	}

	return result.SecureURL, nil
}

// DeleteImage removes an image by its public id.
func (s *Store) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})

	return err
}

// DeleteImageByURL removes the image object a stored delivery URL points at.
// The public id is derived from the URL, so only URLs this store handed out
// can be deleted.
func (s *Store) DeleteImageByURL(ctx context.Context, imageURL string) error {
	publicID, err := publicIDFromURL(imageURL)
	if err != nil {
		return err
	}

	return s.DeleteImage(ctx, publicID)
}

// publicIDFromURL extracts "<folder>/<id>" from a delivery URL of the form
// https://res.cloudinary.com/<cloud>/image/upload/v<version>/<folder>/<id>.<ext>
func publicIDFromURL(imageURL string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", ErrNotADeliveryURL
	}

	const uploadMarker = "/upload/"

	markerAt := strings.Index(parsed.Path, uploadMarker)
	if markerAt < 0 {
		return "", ErrNotADeliveryURL
	}

	segments := strings.Split(parsed.Path[markerAt+len(uploadMarker):], "/")
	if len(segments) > 1 && isVersionSegment(segments[0]) {
		segments = segments[1:]
	}

	publicID := strings.Join(segments, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", ErrNotADeliveryURL
	}

	return publicID, nil
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}

	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
