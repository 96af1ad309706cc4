package catalog

import (
	"github.com/shopspring/decimal"
)

// CategoryType partitions categories into independent facet dimensions.
// Categories of the same type are alternatives for a product (OR), while
// different types narrow a search independently (AND).
type CategoryType string

const (
	CategoryTypeType   CategoryType = "TYPE"
	CategoryTypeRoom   CategoryType = "ROOM"
	CategoryTypeDesign CategoryType = "DESIGN"
)

// IsValid reports whether t is one of the known category types.
func (t CategoryType) IsValid() bool {
	switch t {
	case CategoryTypeType, CategoryTypeRoom, CategoryTypeDesign:
		return true
	}

	return false
}

// Category is a navigable catalog dimension with a globally unique title.
type Category struct {
	ID          int64
	Title       string
	Description string
	ImageURL    string
	Type        CategoryType
}

// CategoryRef is the (id, type) pair a category resolves to when grouping
// requested category ids for filtering.
type CategoryRef struct {
	ID   int64
	Type CategoryType
}

// Attribute is one free-form key/value pair belonging to exactly one product.
// Key and value are normalized to lowercase at write time; a product may
// carry multiple attributes sharing a key.
type Attribute struct {
	ID        int64
	ProductID int64
	Key       string
	Value     string
}

// ProductImage is one image reference owned by a product; images are removed
// together with their product.
type ProductImage struct {
	ID        int64
	ProductID int64
	ImageURL  string
}

// Product is a catalog entry. Price carries an exact 2-digit decimal scale;
// category memberships are many-to-many links and not owned by the product.
type Product struct {
	ID          int64
	Title       string
	Description string
	Article     string
	Price       decimal.Decimal
	CategoryIDs []int64
	Attributes  []Attribute
	Images      []ProductImage
}

// PrimaryImageURL returns the first image reference or "" for a product
// without images.
func (p Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}

	return p.Images[0].ImageURL
}

// ProductPage is one window of a filtered result set together with the total
// number of matching products.
type ProductPage struct {
	Products   []Product
	TotalCount int64
	PageNumber int
	PageSize   int
}

// TotalPages derives the page count from the total and the page size.
func (p ProductPage) TotalPages() int64 {
	if p.PageSize <= 0 {
		return 0
	}

	return (p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize)
}
