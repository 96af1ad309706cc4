package catalog

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPageSize is used when a request does not name a page size.
	DefaultPageSize = 20

	// DefaultCategoryPageSize is the page size for category listings.
	DefaultCategoryPageSize = 5

	// MaxPageSize caps the page size a request may ask for.
	MaxPageSize = 100
)

/***** SearchFilter *****/

// SearchFilter is the immutable, parsed representation of one product search
// request: category ids, attribute key -> requested-value-set, optional price
// bounds, optional search text, and paging. It is built once per request and
// never mutated afterward; accessors return defensive copies. This is the
// invariant that keeps concurrent searches from ever observing each other's
// filter values.
type SearchFilter struct {
	categoryIDs []int64
	attributes  map[string][]string
	minPrice    *decimal.Decimal
	maxPrice    *decimal.Decimal
	searchText  string
	pageNumber  int
	pageSize    int
}

// CategoryIDs returns the requested category ids, sorted and deduplicated.
func (f SearchFilter) CategoryIDs() []int64 {
	return slices.Clone(f.categoryIDs)
}

// Attributes returns the requested attribute filters as a copy of the
// key -> value-set map. Keys and values are lowercase; each value set is
// sorted and deduplicated.
func (f SearchFilter) Attributes() map[string][]string {
	out := make(map[string][]string, len(f.attributes))
	for key, values := range f.attributes {
		out[key] = slices.Clone(values)
	}

	return out
}

// AttributeKeys returns the requested attribute keys in sorted order.
func (f SearchFilter) AttributeKeys() []string {
	return slices.Sorted(maps.Keys(f.attributes))
}

// MinPrice returns the inclusive lower price bound, or ok=false when absent.
func (f SearchFilter) MinPrice() (min decimal.Decimal, ok bool) {
	if f.minPrice == nil {
		return decimal.Decimal{}, false
	}

	return *f.minPrice, true
}

// MaxPrice returns the inclusive upper price bound, or ok=false when absent.
func (f SearchFilter) MaxPrice() (max decimal.Decimal, ok bool) {
	if f.maxPrice == nil {
		return decimal.Decimal{}, false
	}

	return *f.maxPrice, true
}

// SearchText returns the trimmed search text; "" means no text constraint.
func (f SearchFilter) SearchText() string {
	return f.searchText
}

// PageNumber returns the zero-based page number.
func (f SearchFilter) PageNumber() int {
	return f.pageNumber
}

// PageSize returns the page size.
func (f SearchFilter) PageSize() int {
	return f.pageSize
}

// Offset returns the row offset implied by page number and size.
func (f SearchFilter) Offset() int {
	return f.pageNumber * f.pageSize
}

// IsUnconstrained reports whether the filter imposes no predicate at all,
// i.e. the query degenerates to plain pagination over the whole catalog.
func (f SearchFilter) IsUnconstrained() bool {
	return len(f.categoryIDs) == 0 &&
		len(f.attributes) == 0 &&
		f.minPrice == nil &&
		f.maxPrice == nil &&
		f.searchText == ""
}

// SearchPatterns returns the lowercase substring patterns derived from the
// search text. A single-token text yields the text itself as one pattern;
// a text with internal whitespace, comma, or period delimiters is split on
// runs of those delimiters and each token becomes its own pattern, replacing
// phrase mode entirely. Matching any one pattern against any one text source
// is sufficient; this is a deliberately recall-favoring search.
func (f SearchFilter) SearchPatterns() []string {
	if f.searchText == "" {
		return nil
	}

	lowered := strings.ToLower(f.searchText)

	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',' || r == '.'
	})

	if len(tokens) <= 1 {
		return []string{lowered}
	}

	return tokens
}

/***** FilterBuilder *****/

// FilterBuilder assembles a SearchFilter. It sanitizes its inputs the same
// way regardless of order:
//   - category ids are sorted and deduplicated
//   - attribute keys and values are lowercased; value sets are sorted,
//     deduplicated, and dropped entirely when empty
//   - search text is trimmed; whitespace-only text counts as absent
//   - paging is clamped to sane bounds
//
// The zero builder is ready to use; Finalize returns the immutable filter.
type FilterBuilder struct {
	filter SearchFilter
}

// BuildSearchFilter creates a FilterBuilder with default paging.
func BuildSearchFilter() FilterBuilder {
	return FilterBuilder{
		filter: SearchFilter{
			pageNumber: 0,
			pageSize:   DefaultPageSize,
		},
	}
}

// WithCategoryIDs sets the requested category ids.
func (b FilterBuilder) WithCategoryIDs(categoryIDs ...int64) FilterBuilder {
	ids := slices.Clone(categoryIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	ids = slices.Clip(ids)

	b.filter.categoryIDs = ids

	return b
}

// WithAttribute adds one attribute filter: the product must carry the key
// with any one of the given values. Calling it again for the same key
// replaces the earlier value set.
func (b FilterBuilder) WithAttribute(key string, values ...string) FilterBuilder {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return b
	}

	sanitized := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		sanitized = append(sanitized, value)
	}

	slices.Sort(sanitized)
	sanitized = slices.Compact(sanitized)

	if len(sanitized) == 0 {
		return b
	}

	attributes := make(map[string][]string, len(b.filter.attributes)+1)
	maps.Copy(attributes, b.filter.attributes)
	attributes[key] = sanitized

	b.filter.attributes = attributes

	return b
}

// WithMinPrice sets the inclusive lower price bound.
func (b FilterBuilder) WithMinPrice(min decimal.Decimal) FilterBuilder {
	b.filter.minPrice = &min

	return b
}

// WithMaxPrice sets the inclusive upper price bound.
func (b FilterBuilder) WithMaxPrice(max decimal.Decimal) FilterBuilder {
	b.filter.maxPrice = &max

	return b
}

// WithSearchText sets the free-text query; whitespace-only text is absent.
func (b FilterBuilder) WithSearchText(text string) FilterBuilder {
	b.filter.searchText = strings.TrimSpace(text)

	return b
}

// WithPage sets the zero-based page number and the page size. Negative page
// numbers clamp to zero; a non-positive size falls back to the default and
// an oversized one clamps to MaxPageSize.
func (b FilterBuilder) WithPage(pageNumber int, pageSize int) FilterBuilder {
	if pageNumber < 0 {
		pageNumber = 0
	}

	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	b.filter.pageNumber = pageNumber
	b.filter.pageSize = pageSize

	return b
}

// Finalize returns the assembled immutable SearchFilter.
func (b FilterBuilder) Finalize() SearchFilter {
	if b.filter.pageSize == 0 {
		b.filter.pageSize = DefaultPageSize
	}

	return b.filter
}
