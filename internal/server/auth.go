package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/auth"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin checks credentials and issues the access/refresh pair.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := s.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		s.storeError(c, err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Username, user.Email)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": pair,
		"userData": gin.H{
			"username": user.Username,
			"userId":   user.ID,
		},
	})
}

// handleRegister creates a new user account.
func (s *Server) handleRegister(c *gin.Context) {
	s.createUser(c)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// handleTokenRefresh exchanges a refresh token for a new access token.
func (s *Server) handleTokenRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token is required"})
		return
	}

	access, err := s.tokens.RefreshAccess(req.Refresh)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
