package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/warpwanderer/project-management/internal/models"
)

// ListInvitationsByEmail returns invitations addressed to the email.
func (s *Store) ListInvitationsByEmail(ctx context.Context, email string) ([]models.UserInvitation, error) {
	var invitations []models.UserInvitation
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}

// CreateInvitation stores a pending invitation after checking the guards:
// the team must exist, the target must not already be a member, and no
// invitation for the same email/team pair may be pending.
func (s *Store) CreateInvitation(ctx context.Context, email string, teamID uint, invitedBy uint) (models.UserInvitation, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).First(&team, teamID).Error; err != nil {
		return models.UserInvitation{}, translate(err)
	}

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserInvitation{}, err
	}
	if err == nil {
		var memberships int64
		err := s.db.WithContext(ctx).Model(&models.UserTeam{}).
			Where("user_id = ? AND team_id = ?", user.ID, teamID).
			Count(&memberships).Error
		if err != nil {
			return models.UserInvitation{}, err
		}
		if memberships > 0 {
			return models.UserInvitation{}, ErrAlreadyMember
		}

		var pending int64
		err = s.db.WithContext(ctx).Model(&models.UserInvitation{}).
			Where("email = ? AND team_id = ?", email, teamID).
			Count(&pending).Error
		if err != nil {
			return models.UserInvitation{}, err
		}
		if pending > 0 {
			return models.UserInvitation{}, ErrInvitationExists
		}
	}

	invitation := models.UserInvitation{
		Email:       email,
		TeamID:      teamID,
		InvitedByID: &invitedBy,
	}
	if err := s.db.WithContext(ctx).Create(&invitation).Error; err != nil {
		return models.UserInvitation{}, translate(err)
	}
	return invitation, nil
}

// AcceptInvitation marks the invitation accepted and creates the team
// membership. Both writes happen in one transaction so an accepted
// invitation without a membership can never be observed.
func (s *Store) AcceptInvitation(ctx context.Context, invitationID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation models.UserInvitation
		if err := tx.First(&invitation, invitationID).Error; err != nil {
			return translate(err)
		}

		invitation.Accepted = true
		invitation.AcceptedByID = &userID
		if err := tx.Save(&invitation).Error; err != nil {
			return err
		}

		membership := models.UserTeam{UserID: userID, TeamID: invitation.TeamID}
		if err := tx.Create(&membership).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// DeclineInvitation records who declined and deletes the invitation.
// Nothing remains of a declined invitation afterwards.
func (s *Store) DeclineInvitation(ctx context.Context, invitationID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation models.UserInvitation
		if err := tx.First(&invitation, invitationID).Error; err != nil {
			return translate(err)
		}

		invitation.DeclinedByID = &userID
		if err := tx.Save(&invitation).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserInvitation{}, invitation.ID).Error
	})
}
