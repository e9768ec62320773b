package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/warpwanderer/project-management/internal/models"
)

// GetUserByUsername fetches a user by their unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// GetUserByEmail fetches the first user registered with the email, if any.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// DeleteUser removes a user. Soft references (creator, assignee, comment
// author and similar) are nulled out explicitly in the same transaction,
// owned rows (memberships, authored materials) are removed with the user.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return translate(err)
		}

		nulls := []struct {
			model  any
			column string
		}{
			{&models.Project{}, "created_by_id"},
			{&models.Column{}, "created_by_id"},
			{&models.Task{}, "created_by_id"},
			{&models.Task{}, "assigned_to_id"},
			{&models.Team{}, "created_by_id"},
			{&models.TaskComment{}, "user_id"},
			{&models.TaskHistory{}, "changed_by_id"},
			{&models.UserInvitation{}, "invited_by_id"},
			{&models.UserInvitation{}, "accepted_by_id"},
			{&models.UserInvitation{}, "declined_by_id"},
		}
		for _, n := range nulls {
			if err := tx.Model(n.model).Where(n.column+" = ?", id).
				Update(n.column, nil).Error; err != nil {
				return fmt.Errorf("clear %s: %w", n.column, err)
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.UserTeam{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.LearningMaterial{}).Error; err != nil {
			return fmt.Errorf("delete materials: %w", err)
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
