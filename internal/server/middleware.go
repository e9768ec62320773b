package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/warpwanderer/project-management/internal/models"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
)

const (
	userKey      = "currentUser"
	requestIDKey = "requestID"
)

// requestID tags every request with an id for log correlation. An incoming
// X-Request-Id is honored so upstream proxies can trace through.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// authRequired rejects requests without a valid bearer access token and
// resolves the calling user once, so handlers receive an explicit identity
// instead of re-parsing ambient request state.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := s.tokens.ValidateAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		user, err := sqlite.Get[models.User](c.Request.Context(), s.store, claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated caller set by authRequired.
func currentUser(c *gin.Context) models.User {
	v, _ := c.Get(userKey)
	user, _ := v.(models.User)
	return user
}
