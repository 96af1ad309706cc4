package catalog

import (
	"errors"
)

// ErrInvalidFilterValue marks a malformed numeric or id token in a filter
// parameter. It is detected during parsing, before any store access.
var ErrInvalidFilterValue = errors.New("invalid filter value")

// ErrProductNotFound is returned when a product id resolves to nothing.
var ErrProductNotFound = errors.New("product not found")

// ErrCategoryNotFound is returned when a category id or title resolves to
// nothing in a management operation. Unresolvable category ids inside a
// search filter are not an error; they are silently dropped.
var ErrCategoryNotFound = errors.New("category not found")

// ErrDuplicateArticle is returned when creating or updating a product would
// violate the unique article constraint.
var ErrDuplicateArticle = errors.New("duplicate product article")

// ErrDuplicateCategoryTitle is returned when a category title is already
// taken; titles are globally unique.
var ErrDuplicateCategoryTitle = errors.New("duplicate category title")

// ErrStoreUnavailable marks a transient backend failure during query
// execution. It propagates unchanged to the caller; retrying is the store
// client's business, not this subsystem's.
var ErrStoreUnavailable = errors.New("catalog store unavailable")

// ErrInvalidProductData is returned when a product write carries a malformed
// price or an empty required field.
var ErrInvalidProductData = errors.New("invalid product data")

// ErrInvalidCategoryData is returned when a category write carries an empty
// title or an unknown type.
var ErrInvalidCategoryData = errors.New("invalid category data")

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyTableName = errors.New("table names must not be empty")
var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
