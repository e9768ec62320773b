package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/auth"
	"github.com/warpwanderer/project-management/internal/models"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
)

type userRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  *bool  `json:"is_active"`
	RoleID    *uint  `json:"role"`
}

// createUser validates the payload, hashes the password and stores the
// account. Shared by registration and the users resource.
func (s *Server) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
		RoleID:       req.RoleID,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := sqlite.Create(c.Request.Context(), s.store, &user); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// handleCreateUser backs POST /api/users/.
func (s *Server) handleCreateUser(c *gin.Context) {
	s.createUser(c)
}

// handlePatchUser merges profile fields over the stored user. A "password"
// field in the body is re-hashed rather than written through.
func (s *Server) handlePatchUser(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	user, err := sqlite.Get[models.User](c.Request.Context(), s.store, id)
	if err != nil {
		s.storeError(c, err)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	delete(fields, "id")

	if raw, ok := fields["password"]; ok {
		var password string
		if err := json.Unmarshal(raw, &password); err != nil || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be a non-empty string"})
			return
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			s.respondError(c, http.StatusInternalServerError, err)
			return
		}
		user.PasswordHash = hash
		delete(fields, "password")
	}

	cleaned, err := json.Marshal(fields)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := json.Unmarshal(cleaned, &user); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sqlite.Save(c.Request.Context(), s.store, &user); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// handleDeleteUser removes an account with an explicit fan-out: references
// from other records are nulled in the same transaction.
func (s *Server) handleDeleteUser(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	if err := s.store.DeleteUser(c.Request.Context(), id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleUsersTeams preserves the original API quirk: the collection GET
// answers with the caller's username only.
func (s *Server) handleUsersTeams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": currentUser(c).Username})
}
