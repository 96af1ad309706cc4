package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

const (
	bearerPrefix    = "Bearer "
	requestIDHeader = "X-Request-ID"
)

// requestID tags every request with an id for log correlation, keeping a
// caller-supplied one when present.
func requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	c.Header(requestIDHeader, id)
	c.Next()
}

// requireAdmin gates management routes behind a valid admin bearer token.
func (s *Server) requireAdmin(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	claims, err := s.deps.Tokens.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
		return
	}

	if claims.Role != catalog.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	c.Next()
}
