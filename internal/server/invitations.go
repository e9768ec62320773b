package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/models"
)

// handleListInvitations returns invitations addressed to the caller's email.
func (s *Server) handleListInvitations(c *gin.Context) {
	invitations, err := s.store.ListInvitationsByEmail(c.Request.Context(), currentUser(c).Email)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if invitations == nil {
		invitations = []models.UserInvitation{}
	}
	c.JSON(http.StatusOK, invitations)
}

type invitationRequest struct {
	Email  string `json:"email" binding:"required"`
	TeamID uint   `json:"team" binding:"required"`
}

// handleCreateInvitation invites an email address to a team. The store
// rejects duplicates: existing members and already-pending invitations.
func (s *Server) handleCreateInvitation(c *gin.Context) {
	var req invitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	invitation, err := s.store.CreateInvitation(c.Request.Context(), req.Email, req.TeamID, currentUser(c).ID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invitation)
}

type invitationResolution struct {
	Accepted bool `json:"accepted"`
	Declined bool `json:"declined"`
}

// handleResolveInvitation accepts or declines a pending invitation.
// Accepting also creates the team membership, atomically. Declining
// deletes the invitation record entirely.
func (s *Server) handleResolveInvitation(c *gin.Context) {
	invitationID, ok := parseID(c, "invitation_id")
	if !ok {
		return
	}

	var req invitationResolution
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	caller := currentUser(c)
	switch {
	case req.Accepted:
		if err := s.store.AcceptInvitation(c.Request.Context(), invitationID, caller.ID); err != nil {
			s.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "invitation accepted successfully"})
	case req.Declined:
		if err := s.store.DeclineInvitation(c.Request.Context(), invitationID, caller.ID); err != nil {
			s.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "invitation declined successfully"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operation"})
	}
}
