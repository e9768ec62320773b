package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/models"
)

// handleListTeams returns all teams with their member counts.
func (s *Server) handleListTeams(c *gin.Context) {
	teams, err := s.store.ListTeams(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	c.JSON(http.StatusOK, teams)
}

// handleGetTeam returns one team together with its members.
func (s *Server) handleGetTeam(c *gin.Context) {
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return
	}
	team, members, err := s.store.GetTeamWithMembers(c.Request.Context(), teamID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if members == nil {
		members = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"team": team, "members": members})
}

// handleDeleteTeam removes a team. Only the creator may delete it; anyone
// else sees the team as not found.
func (s *Server) handleDeleteTeam(c *gin.Context) {
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return
	}
	if err := s.store.DeleteTeamOwned(c.Request.Context(), teamID, currentUser(c).ID); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleRemoveMember drops a member from a team the caller owns.
func (s *Server) handleRemoveMember(c *gin.Context) {
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return
	}
	memberID, ok := parseID(c, "member_id")
	if !ok {
		return
	}
	if err := s.store.RemoveMember(c.Request.Context(), teamID, memberID, currentUser(c).ID); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
