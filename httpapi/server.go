// Package httpapi exposes the catalog over HTTP. It is a thin boundary:
// requests are parsed into filters and commands, handed to the feature
// handlers, and results rendered back as JSON. Management routes sit behind
// admin-token middleware.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createcategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/removecategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/removeproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/updatecategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/updateproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/categorybyid"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/categorybytitle"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/listcategories"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/productbyid"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/searchproducts"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/auth"
)

// LoginService authenticates users for the login route.
type LoginService interface {
	Login(ctx context.Context, email string, password string) (string, error)
}

// TokenVerifier validates bearer tokens for the admin middleware.
type TokenVerifier interface {
	VerifyToken(tokenString string) (auth.Claims, error)
}

// Deps carries every handler the router dispatches to. Query and command
// handlers are usually the observable wrappers around the feature handlers.
type Deps struct {
	SearchProducts  shell.QueryHandler[searchproducts.Query, searchproducts.Result]
	ProductByID     shell.QueryHandler[productbyid.Query, catalog.Product]
	ListCategories  shell.QueryHandler[listcategories.Query, postgresengine.CategoryPage]
	CategoryByID    shell.QueryHandler[categorybyid.Query, catalog.Category]
	CategoryByTitle shell.QueryHandler[categorybytitle.Query, catalog.Category]

	CreateProduct  shell.CommandHandler[createproduct.Command, int64]
	UpdateProduct  shell.CommandHandler[updateproduct.Command, int64]
	RemoveProduct  shell.CommandHandler[removeproduct.Command, int64]
	CreateCategory shell.CommandHandler[createcategory.Command, int64]
	UpdateCategory shell.CommandHandler[updatecategory.Command, int64]
	RemoveCategory shell.CommandHandler[removecategory.Command, int64]

	Login  LoginService
	Tokens TokenVerifier

	// Ready reports backend readiness for the /ready probe; nil means
	// always ready.
	Ready func(ctx context.Context) error
}

// Server dispatches HTTP requests to the feature handlers.
type Server struct {
	deps Deps
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	s := &Server{deps: deps}

	router := gin.New()
	router.Use(gin.Recovery(), requestID)

	router.GET("/health", s.health)
	router.GET("/ready", s.ready)
	router.POST("/login", s.login)

	router.GET("/products/search", s.searchProducts)
	router.GET("/products/:id", s.productByID)
	router.GET("/categories", s.listCategories)
	router.GET("/categories/title", s.categoryByTitle)
	router.GET("/categories/:id", s.categoryByID)

	admin := router.Group("/", s.requireAdmin)
	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.removeProduct)
	admin.POST("/categories", s.createCategory)
	admin.PUT("/categories/:id", s.updateCategory)
	admin.DELETE("/categories/:id", s.removeCategory)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ready(c *gin.Context) {
	if s.deps.Ready != nil {
		if err := s.deps.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) login(c *gin.Context) {
	if s.deps.Login == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "login is not configured"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed login request"})
		return
	}

	token, err := s.deps.Login.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
