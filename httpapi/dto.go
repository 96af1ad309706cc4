package httpapi

import (
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/searchproducts"
)

type productSummary struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Article      string `json:"article"`
	Price        string `json:"price"`
	PrimaryImage string `json:"primaryImage,omitempty"`
}

type productDetail struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Article     string            `json:"article"`
	Price       string            `json:"price"`
	CategoryIDs []int64           `json:"categoryIds"`
	Attributes  map[string]string `json:"attributes"`
	Images      []string          `json:"images"`
}

type searchResponse struct {
	Products   []productSummary    `json:"products"`
	Facets     map[string][]string `json:"facets"`
	MinPrice   string              `json:"minPrice,omitempty"`
	MaxPrice   string              `json:"maxPrice,omitempty"`
	TotalCount int64               `json:"totalCount"`
	TotalPages int64               `json:"totalPages"`
	PageNumber int                 `json:"page"`
	PageSize   int                 `json:"size"`
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Type        string `json:"type"`
}

type categoryListResponse struct {
	Categories []categoryResponse `json:"categories"`
	TotalCount int64              `json:"totalCount"`
	PageNumber int                `json:"page"`
	PageSize   int                `json:"size"`
}

type productRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Article     string            `json:"article"`
	Price       string            `json:"price"`
	CategoryIDs []int64           `json:"categoryIds"`
	Attributes  map[string]string `json:"attributes"`
}

type categoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func searchResponseFrom(result searchproducts.Result) searchResponse {
	summaries := make([]productSummary, 0, len(result.Page.Products))
	for _, product := range result.Page.Products {
		summaries = append(summaries, productSummary{
			ID:           product.ID,
			Title:        product.Title,
			Article:      product.Article,
			Price:        product.Price.String(),
			PrimaryImage: product.PrimaryImageURL(),
		})
	}

	response := searchResponse{
		Products:   summaries,
		Facets:     result.Facets.Attributes,
		TotalCount: result.Page.TotalCount,
		TotalPages: result.Page.TotalPages(),
		PageNumber: result.Page.PageNumber,
		PageSize:   result.Page.PageSize,
	}

	if result.Facets.HasPrices {
		response.MinPrice = result.Facets.MinPrice.String()
		response.MaxPrice = result.Facets.MaxPrice.String()
	}

	return response
}

func productDetailFrom(product catalog.Product) productDetail {
	attributes := make(map[string]string, len(product.Attributes))
	for _, attribute := range product.Attributes {
		attributes[attribute.Key] = attribute.Value
	}

	images := make([]string, 0, len(product.Images))
	for _, image := range product.Images {
		images = append(images, image.ImageURL)
	}

	return productDetail{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Article:     product.Article,
		Price:       product.Price.String(),
		CategoryIDs: product.CategoryIDs,
		Attributes:  attributes,
		Images:      images,
	}
}

func categoryResponseFrom(category catalog.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Title:       category.Title,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		Type:        string(category.Type),
	}
}

func categoryListResponseFrom(page postgresengine.CategoryPage) categoryListResponse {
	categories := make([]categoryResponse, 0, len(page.Categories))
	for _, category := range page.Categories {
		categories = append(categories, categoryResponseFrom(category))
	}

	return categoryListResponse{
		Categories: categories,
		TotalCount: page.TotalCount,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

func attributeInputsFrom(attributes map[string]string) []createproduct.AttributeInput {
	inputs := make([]createproduct.AttributeInput, 0, len(attributes))
	for key, value := range attributes {
		inputs = append(inputs, createproduct.AttributeInput{Key: key, Value: value})
	}

	return inputs
}
