package sqlite

import (
	"context"
	"fmt"

	"github.com/warpwanderer/project-management/internal/models"
)

// ListTeams returns every team with its member count filled in.
func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.WithContext(ctx).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	type teamCount struct {
		TeamID uint
		Total  int64
	}
	var counts []teamCount
	err := s.db.WithContext(ctx).Model(&models.UserTeam{}).
		Select("team_id, COUNT(*) AS total").
		Group("team_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	byTeam := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byTeam[c.TeamID] = c.Total
	}
	for i := range teams {
		teams[i].MembersCount = byTeam[teams[i].ID]
	}
	return teams, nil
}

// GetTeamWithMembers returns a team, its member count and its member users.
func (s *Store) GetTeamWithMembers(ctx context.Context, teamID uint) (models.Team, []models.User, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).First(&team, teamID).Error; err != nil {
		return models.Team{}, nil, translate(err)
	}

	var members []models.User
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN user_teams ON user_teams.user_id = users.id").
		Where("user_teams.team_id = ?", teamID).
		Find(&members).Error
	if err != nil {
		return models.Team{}, nil, fmt.Errorf("list members: %w", err)
	}
	team.MembersCount = int64(len(members))
	return team, members, nil
}

// getOwnedTeam loads a team only when the given user created it.
func (s *Store) getOwnedTeam(ctx context.Context, teamID, ownerID uint) (models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		First(&team, "id = ? AND created_by_id = ?", teamID, ownerID).Error
	if err != nil {
		return models.Team{}, translate(err)
	}
	return team, nil
}

// DeleteTeamOwned removes a team when the caller created it. A team the
// caller does not own is reported as not found, matching the API contract.
func (s *Store) DeleteTeamOwned(ctx context.Context, teamID, ownerID uint) error {
	team, err := s.getOwnedTeam(ctx, teamID, ownerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Team{}, team.ID).Error
}

// RemoveMember deletes a membership row. Only the team creator may do so.
func (s *Store) RemoveMember(ctx context.Context, teamID, memberID, ownerID uint) error {
	if _, err := s.getOwnedTeam(ctx, teamID, ownerID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ?", memberID, teamID).
		Delete(&models.UserTeam{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
