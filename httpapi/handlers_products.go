package httpapi

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/removeproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/updateproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/productbyid"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/searchproducts"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// searchProducts is the main storefront surface. Every query parameter not
// reserved for paging, price, text, or categories filters as an attribute.
func (s *Server) searchProducts(c *gin.Context) {
	filter, err := catalog.ParseSearchFilter(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := s.deps.SearchProducts.Handle(c.Request.Context(), searchproducts.BuildQuery(filter))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchResponseFrom(result))
}

func (s *Server) productByID(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	product, err := s.deps.ProductByID.Handle(c.Request.Context(), productbyid.BuildQuery(productID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productDetailFrom(product))
}

func (s *Server) createProduct(c *gin.Context) {
	req, images, cleanup, ok := bindProductRequest(c)
	if !ok {
		return
	}
	defer cleanup()

	command := createproduct.BuildCommand(
		req.Title, req.Description, req.Article, req.Price,
		req.CategoryIDs, attributeInputsFrom(req.Attributes), images)

	productID, err := s.deps.CreateProduct.Handle(c.Request.Context(), command)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, idResponse{ID: productID})
}

func (s *Server) updateProduct(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	req, images, cleanup, bound := bindProductRequest(c)
	if !bound {
		return
	}
	defer cleanup()

	command := updateproduct.BuildCommand(
		productID, req.Title, req.Description, req.Article, req.Price,
		req.CategoryIDs, attributeInputsFrom(req.Attributes), images)

	if _, err := s.deps.UpdateProduct.Handle(c.Request.Context(), command); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) removeProduct(c *gin.Context) {
	productID, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := s.deps.RemoveProduct.Handle(c.Request.Context(), removeproduct.BuildCommand(productID)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindProductRequest accepts either a plain JSON body or a multipart form
// with a "data" JSON part plus "images" file parts. The returned cleanup
// closes any opened files and must always be called.
func bindProductRequest(c *gin.Context) (productRequest, []io.Reader, func(), bool) {
	var req productRequest

	noop := func() {}

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed product body"})
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
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed product data part"})
		return req, nil, noop, false
	}

	images, cleanup, err := openImageParts(form.File["images"])
	if err != nil {
		cleanup()
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable image part"})
		return req, nil, noop, false
	}

	return req, images, cleanup, true
}

func openImageParts(parts []*multipart.FileHeader) ([]io.Reader, func(), error) {
	readers := make([]io.Reader, 0, len(parts))
	closers := make([]io.Closer, 0, len(parts))

	cleanup := func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}

	for _, part := range parts {
		file, err := part.Open()
		if err != nil {
			return nil, cleanup, err
		}

		readers = append(readers, file)
		closers = append(closers, file)
	}

	return readers, cleanup, nil
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed id"})
		return 0, false
	}

	return id, true
}
