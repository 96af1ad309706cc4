package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/auth"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes. Validation failures
// are client errors, missing references are 404s, duplicates conflict, and
// everything else is a 500 with the detail kept out of the response body.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidFilterValue),
		errors.Is(err, catalog.ErrInvalidProductData),
		errors.Is(err, catalog.ErrInvalidCategoryData):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrDuplicateArticle),
		errors.Is(err, catalog.ErrDuplicateCategoryTitle):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
