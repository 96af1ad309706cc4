package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Reserved query-parameter names. They are consumed by dedicated parsers;
// every other parameter falls through to the generic attribute-filter path.
const (
	ParamCategoryIDs = "categoryIds"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamSearchText  = "searchText"
	ParamPageNumber  = "page"
	ParamPageSize    = "size"
)

// reservedParamParsers maps each recognized parameter name to the builder
// step that consumes it. Keys missing from this table are attribute filters.
var reservedParamParsers = map[string]func(b FilterBuilder, value string) (FilterBuilder, error){
	ParamCategoryIDs: parseCategoryIDsParam,
	ParamMinPrice:    parseMinPriceParam,
	ParamMaxPrice:    parseMaxPriceParam,
	ParamSearchText: func(b FilterBuilder, value string) (FilterBuilder, error) {
		return b.WithSearchText(value), nil
	},
	ParamPageNumber: nil, // handled together with ParamPageSize
	ParamPageSize:   nil,
}

// ParseSearchFilter turns raw query parameters into an immutable
// SearchFilter. Malformed numeric or id tokens yield ErrInvalidFilterValue;
// nothing else can fail. Parsing is pure: it writes no shared state, so any
// number of requests can parse concurrently.
//
// For parameters given more than once only the first value is considered,
// except attribute filters, where all occurrences merge into one value set.
func ParseSearchFilter(params url.Values) (SearchFilter, error) {
	builder := BuildSearchFilter()

	pageNumber, pageSize, err := parsePagingParams(params)
	if err != nil {
		return SearchFilter{}, err
	}
	builder = builder.WithPage(pageNumber, pageSize)

	for name, values := range params {
		if len(values) == 0 {
			continue
		}

		parse, reserved := reservedParamParsers[name]
		if !reserved {
			builder = builder.WithAttribute(name, splitCommaList(values)...)
			continue
		}
		if parse == nil {
			continue // paging, already consumed
		}

		builder, err = parse(builder, values[0])
		if err != nil {
			return SearchFilter{}, err
		}
	}

	return builder.Finalize(), nil
}

func parseCategoryIDsParam(b FilterBuilder, value string) (FilterBuilder, error) {
	if strings.TrimSpace(value) == "" {
		return b, nil
	}

	tokens := strings.Split(value, ",")
	ids := make([]int64, 0, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return b, invalidFilterValue(ParamCategoryIDs, token)
		}

		ids = append(ids, id)
	}

	return b.WithCategoryIDs(ids...), nil
}

func parseMinPriceParam(b FilterBuilder, value string) (FilterBuilder, error) {
	price, err := parsePriceParam(ParamMinPrice, value)
	if err != nil {
		return b, err
	}
	if price == nil {
		return b, nil
	}

	return b.WithMinPrice(*price), nil
}

func parseMaxPriceParam(b FilterBuilder, value string) (FilterBuilder, error) {
	price, err := parsePriceParam(ParamMaxPrice, value)
	if err != nil {
		return b, err
	}
	if price == nil {
		return b, nil
	}

	return b.WithMaxPrice(*price), nil
}

func parsePriceParam(name string, value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	price, err := decimal.NewFromString(value)
	if err != nil {
		return nil, invalidFilterValue(name, value)
	}

	return &price, nil
}

func parsePagingParams(params url.Values) (pageNumber int, pageSize int, err error) {
	pageNumber, err = parseIntParam(params, ParamPageNumber, 0)
	if err != nil {
		return 0, 0, err
	}

	pageSize, err = parseIntParam(params, ParamPageSize, DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}

	return pageNumber, pageSize, nil
}

func parseIntParam(params url.Values, name string, fallback int) (int, error) {
	value := strings.TrimSpace(params.Get(name))
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalidFilterValue(name, value)
	}

	return parsed, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, value := range values {
		out = append(out, strings.Split(value, ",")...)
	}

	return out
}

func invalidFilterValue(param string, token string) error {
	return errors.Join(
		ErrInvalidFilterValue,
		fmt.Errorf("parameter %q: malformed token %q", param, token),
	)
}
