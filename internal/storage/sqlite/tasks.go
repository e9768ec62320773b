package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/warpwanderer/project-management/internal/models"
)

// ListTasksByCreator returns the tasks the user created.
func (s *Store) ListTasksByCreator(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := taskPreloads(s.db.WithContext(ctx)).
		Where("created_by_id = ?", userID).
		Order("`order`").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	decorateTasks(tasks)
	return tasks, nil
}

// GetTask fetches a task with its display names filled in.
func (s *Store) GetTask(ctx context.Context, id uint) (models.Task, error) {
	var task models.Task
	if err := taskPreloads(s.db.WithContext(ctx)).First(&task, id).Error; err != nil {
		return models.Task{}, translate(err)
	}
	decorateTask(&task)
	return task, nil
}

// SaveTask persists an updated task. When its status changed, a history
// row recording the transition is appended in the same transaction.
func (s *Store) SaveTask(ctx context.Context, task *models.Task, prevStatusID *uint, changedBy *uint) error {
	statusChanged := !uintPtrEqual(task.StatusID, prevStatusID)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Relation fields must not be upserted alongside the row.
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if statusChanged {
			history := models.TaskHistory{
				TaskID:      task.ID,
				StatusID:    task.StatusID,
				ChangedByID: changedBy,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
