package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

func Test_FilterBuilder_Sanitization(t *testing.T) {
	tests := []struct {
		name     string
		build    func() catalog.SearchFilter
		validate func(t *testing.T, f catalog.SearchFilter)
	}{
		{
			name: "empty_builder_yields_unconstrained_filter_with_default_paging",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.True(t, f.IsUnconstrained())
				assert.Equal(t, 0, f.PageNumber())
				assert.Equal(t, catalog.DefaultPageSize, f.PageSize())
			},
		},
		{
			name: "category_ids_are_sorted_and_deduplicated",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithCategoryIDs(3, 1, 3, 2, 1).
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.Equal(t, []int64{1, 2, 3}, f.CategoryIDs())
				assert.False(t, f.IsUnconstrained())
			},
		},
		{
			name: "attribute_values_are_lowercased_sorted_deduplicated",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithAttribute("Color", "Red", "blue", "RED", " blue ").
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.Equal(t, map[string][]string{"color": {"blue", "red"}}, f.Attributes())
			},
		},
		{
			name: "attribute_with_only_empty_values_is_dropped",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithAttribute("color", "", "  ").
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.Empty(t, f.Attributes())
				assert.True(t, f.IsUnconstrained())
			},
		},
		{
			name: "repeated_attribute_key_replaces_value_set",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithAttribute("color", "red").
					WithAttribute("color", "green").
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.Equal(t, map[string][]string{"color": {"green"}}, f.Attributes())
			},
		},
		{
			name: "whitespace_search_text_counts_as_absent",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithSearchText("   \t ").
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.Equal(t, "", f.SearchText())
				assert.Nil(t, f.SearchPatterns())
				assert.True(t, f.IsUnconstrained())
			},
		},
		{
			name: "paging_is_clamped",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithPage(-3, 100000).
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.Equal(t, 0, f.PageNumber())
				assert.Equal(t, catalog.MaxPageSize, f.PageSize())
				assert.Equal(t, 0, f.Offset())
			},
		},
		{
			name: "offset_derives_from_page_number_and_size",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithPage(3, 10).
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				assert.Equal(t, 30, f.Offset())
			},
		},
		{
			name: "price_bounds_are_optional_and_independent",
			build: func() catalog.SearchFilter {
				return catalog.BuildSearchFilter().
					WithMinPrice(decimal.RequireFromString("19.99")).
					Finalize()
			},
			validate: func(t *testing.T, f catalog.SearchFilter) {
				min, ok := f.MinPrice()
				assert.True(t, ok)
				assert.True(t, min.Equal(decimal.RequireFromString("19.99")))

				_, ok = f.MaxPrice()
				assert.False(t, ok)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.validate(t, tc.build())
		})
	}
}

func Test_SearchFilter_SearchPatterns(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "single_token_is_used_as_one_pattern",
			text:     "Chair",
			expected: []string{"chair"},
		},
		{
			name:     "multi_word_text_splits_into_token_patterns",
			text:     "Modern Chair",
			expected: []string{"modern", "chair"},
		},
		{
			name:     "commas_and_periods_delimit_tokens",
			text:     "oak,table.round",
			expected: []string{"oak", "table", "round"},
		},
		{
			name:     "delimiter_runs_collapse",
			text:     "soft , .  pillow",
			expected: []string{"soft", "pillow"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filter := catalog.BuildSearchFilter().WithSearchText(tc.text).Finalize()
			assert.Equal(t, tc.expected, filter.SearchPatterns())
		})
	}
}

func Test_SearchFilter_AccessorsReturnCopies(t *testing.T) {
	filter := catalog.BuildSearchFilter().
		WithCategoryIDs(1, 2).
		WithAttribute("color", "red", "blue").
		Finalize()

	ids := filter.CategoryIDs()
	ids[0] = 99
	assert.Equal(t, []int64{1, 2}, filter.CategoryIDs())

	attrs := filter.Attributes()
	attrs["color"][0] = "mutated"
	delete(attrs, "color")
	assert.Equal(t, map[string][]string{"color": {"blue", "red"}}, filter.Attributes())
}
