package imagestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PublicIDFromURL_ExtractsFolderAndID(t *testing.T) {
	testCases := []struct {
		name     string
		imageURL string
		want     string
	}{
		{
			name:     "versioned product url",
			imageURL: "https://res.cloudinary.com/demo/image/upload/v1712345678/products/0f8fad5b-d9cb-469f-a165-70867728950e.jpg",
			want:     "products/0f8fad5b-d9cb-469f-a165-70867728950e",
		},
		{
			name:     "versioned category url",
			imageURL: "https://res.cloudinary.com/demo/image/upload/v99/categories/abc.png",
			want:     "categories/abc",
		},
		{
			name:     "url without version segment",
			imageURL: "https://res.cloudinary.com/demo/image/upload/products/abc.webp",
			want:     "products/abc",
		},
		{
			name:     "url without extension",
			imageURL: "https://res.cloudinary.com/demo/image/upload/v1/products/abc",
			want:     "products/abc",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			publicID, err := publicIDFromURL(tc.imageURL)

			require.NoError(t, err)
			assert.Equal(t, tc.want, publicID)
		})
	}
}

func Test_PublicIDFromURL_RejectsForeignURLs(t *testing.T) {
	testCases := []struct {
		name     string
		imageURL string
	}{
		{name: "no upload marker", imageURL: "https://img.example/products/abc.jpg"},
		{name: "empty public id", imageURL: "https://res.cloudinary.com/demo/image/upload/"},
		{name: "garbage", imageURL: "://not-a-url"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := publicIDFromURL(tc.imageURL)

			assert.ErrorIs(t, err, ErrNotADeliveryURL)
		})
	}
}
