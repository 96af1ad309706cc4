package updatecategory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/updatecategory"
)

type fakeStore struct {
	err     error
	updated []int64
	last    postgresengine.NewCategory
}

func (s *fakeStore) UpdateCategory(_ context.Context, categoryID int64, category postgresengine.NewCategory) error {
	if s.err != nil {
		return s.err
	}

	s.updated = append(s.updated, categoryID)
	s.last = category

	return nil
}

type fakeCache struct {
	dropped []int64
}

func (c *fakeCache) Drop(_ context.Context, categoryIDs ...int64) {
	c.dropped = append(c.dropped, categoryIDs...)
}

type fakeImageStore struct {
	url string
}

func (f fakeImageStore) UploadCategoryImage(context.Context, io.Reader) (string, error) {
	return f.url, nil
}

func Test_Handle_UpdatesAndInvalidatesTheCache(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{}
	handler := updatecategory.NewCommandHandler(store, cache, nil)

	categoryID, err := handler.Handle(context.Background(),
		updatecategory.BuildCommand(7, "Bedroom", "Everything for the bedroom", catalog.CategoryTypeRoom, nil))

	require.NoError(t, err)
	assert.Equal(t, int64(7), categoryID)
	assert.Equal(t, []int64{7}, store.updated)
	assert.Equal(t, []int64{7}, cache.dropped)
	assert.Equal(t, "Everything for the bedroom", store.last.Description)
	assert.Empty(t, store.last.ImageURL, "no image in the command must leave the stored image untouched")
}

func Test_Handle_UploadsTheNewImage(t *testing.T) {
	store := &fakeStore{}
	images := fakeImageStore{url: "https://img.example/cat-7.jpg"}
	handler := updatecategory.NewCommandHandler(store, &fakeCache{}, images)

	_, err := handler.Handle(context.Background(),
		updatecategory.BuildCommand(7, "Bedroom", "", catalog.CategoryTypeRoom, strings.NewReader("png")))

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/cat-7.jpg", store.last.ImageURL)
}

func Test_Handle_StoreFailureLeavesTheCacheAlone(t *testing.T) {
	store := &fakeStore{err: catalog.ErrCategoryNotFound}
	cache := &fakeCache{}
	handler := updatecategory.NewCommandHandler(store, cache, nil)

	_, err := handler.Handle(context.Background(),
		updatecategory.BuildCommand(7, "Bedroom", "", catalog.CategoryTypeRoom, nil))

	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	assert.Empty(t, cache.dropped)
}

func Test_Handle_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name    string
		command updatecategory.Command
	}{
		{
			name:    "empty title",
			command: updatecategory.BuildCommand(7, "   ", "", catalog.CategoryTypeRoom, nil),
		},
		{
			name:    "unknown type",
			command: updatecategory.BuildCommand(7, "Bedroom", "", catalog.CategoryType("SEASON"), nil),
		},
		{
			name:    "image without a configured image store",
			command: updatecategory.BuildCommand(7, "Bedroom", "", catalog.CategoryTypeRoom, strings.NewReader("png")),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			handler := updatecategory.NewCommandHandler(store, &fakeCache{}, nil)

			_, err := handler.Handle(context.Background(), tc.command)

			assert.ErrorIs(t, err, catalog.ErrInvalidCategoryData)
			assert.Empty(t, store.updated)
		})
	}
}
