// Package productwrite holds the input validation shared by the product
// write commands.
package productwrite

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
)

// Normalize validates and normalizes product input into the storage shape.
// Attribute keys and values are lowercased and trimmed, empty pairs dropped,
// category ids deduplicated, and the price parsed as an exact non-negative
// decimal. ImageURLs is left nil; the handler fills it after uploading.
func Normalize(
	title string,
	description string,
	article string,
	priceText string,
	categoryIDs []int64,
) (postgresengine.NewProduct, error) {

	var empty postgresengine.NewProduct

	title = strings.TrimSpace(title)
	article = strings.TrimSpace(article)

	if title == "" {
		return empty, errors.Join(catalog.ErrInvalidProductData, errors.New("title must not be empty"))
	}

	if article == "" {
		return empty, errors.Join(catalog.ErrInvalidProductData, errors.New("article must not be empty"))
	}

	price, err := decimal.NewFromString(strings.TrimSpace(priceText))
	if err != nil {
		return empty, errors.Join(catalog.ErrInvalidProductData, fmt.Errorf("price %q is not a valid decimal", priceText))
	}

	if price.IsNegative() {
		return empty, errors.Join(catalog.ErrInvalidProductData, errors.New("price must not be negative"))
	}

	ids := slices.Clone(categoryIDs)
	slices.Sort(ids)
	ids = slices.Clip(slices.Compact(ids))

	return postgresengine.NewProduct{
		Title:       title,
		Description: strings.TrimSpace(description),
		Article:     article,
		Price:       price.String(),
		CategoryIDs: ids,
	}, nil
}

// NormalizeAttributes lowercases and trims attribute pairs and drops pairs
// with an empty key or value.
func NormalizeAttributes(pairs []catalog.Attribute) []catalog.Attribute {
	normalized := make([]catalog.Attribute, 0, len(pairs))

	for _, pair := range pairs {
		key := strings.ToLower(strings.TrimSpace(pair.Key))
		value := strings.ToLower(strings.TrimSpace(pair.Value))

		if key == "" || value == "" {
			continue
		}

		normalized = append(normalized, catalog.Attribute{Key: key, Value: value})
	}

	return normalized
}
