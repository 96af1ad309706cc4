package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createcategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/removecategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/updatecategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/categorybyid"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/categorybytitle"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/listcategories"
)

func (s *Server) listCategories(c *gin.Context) {
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(catalog.DefaultCategoryPageSize)))

	query := listcategories.BuildQuery(catalog.CategoryType(c.Query("type")), pageNumber, pageSize)

	page, err := s.deps.ListCategories.Handle(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryListResponseFrom(page))
}

func (s *Server) categoryByID(c *gin.Context) {
	categoryID, ok := pathID(c)
	if !ok {
		return
	}

	category, err := s.deps.CategoryByID.Handle(c.Request.Context(), categorybyid.BuildQuery(categoryID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponseFrom(category))
}

func (s *Server) categoryByTitle(c *gin.Context) {
	category, err := s.deps.CategoryByTitle.Handle(
		c.Request.Context(), categorybytitle.BuildQuery(c.Query("title")))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponseFrom(category))
}

func (s *Server) createCategory(c *gin.Context) {
	req, image, cleanup, ok := bindCategoryRequest(c)
	if !ok {
		return
	}
	defer cleanup()

	command := createcategory.BuildCommand(req.Title, req.Description, catalog.CategoryType(req.Type), image)

	categoryID, err := s.deps.CreateCategory.Handle(c.Request.Context(), command)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, idResponse{ID: categoryID})
}

func (s *Server) updateCategory(c *gin.Context) {
	categoryID, ok := pathID(c)
	if !ok {
		return
	}

	req, image, cleanup, bound := bindCategoryRequest(c)
	if !bound {
		return
	}
	defer cleanup()

	command := updatecategory.BuildCommand(
		categoryID, req.Title, req.Description, catalog.CategoryType(req.Type), image)

	if _, err := s.deps.UpdateCategory.Handle(c.Request.Context(), command); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) removeCategory(c *gin.Context) {
	categoryID, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := s.deps.RemoveCategory.Handle(c.Request.Context(), removecategory.BuildCommand(categoryID)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindCategoryRequest accepts either a plain JSON body or a multipart form
// with a "data" JSON part plus an optional single "image" file part. The
// returned cleanup closes an opened file and must always be called.
func bindCategoryRequest(c *gin.Context) (categoryRequest, io.Reader, func(), bool) {
	var req categoryRequest

	noop := func() {}

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed category body"})
			return req, nil, noop, false
		}

		return req, nil, noop, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed multipart form"})
		return req, nil, noop, false
	}

	data := form.Value["data"]
	if len(data) != 1 || json.UnmarshalFromString(data[0], &req) != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed category data part"})
		return req, nil, noop, false
	}

	parts := form.File["image"]
	if len(parts) == 0 {
		return req, nil, noop, true
	}

	file, err := parts[0].Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable image part"})
		return req, nil, noop, false
	}

	return req, file, func() { _ = file.Close() }, true
}
