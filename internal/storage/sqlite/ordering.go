package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/warpwanderer/project-management/internal/models"
)

// ColumnOrder is one entry of a column re-sequencing payload.
type ColumnOrder struct {
	ID    uint `json:"id"`
	Order uint `json:"order"`
}

// TaskOrder is one entry of a task re-sequencing payload. Column, when
// present, moves the task into that column.
type TaskOrder struct {
	ID     uint  `json:"id"`
	Order  uint  `json:"order"`
	Column *uint `json:"column"`
}

// ReorderColumns overwrites the order of each listed column with exactly
// the value the client sent. The batch is atomic: an unknown id rolls the
// whole update back.
func (s *Store) ReorderColumns(ctx context.Context, items []ColumnOrder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var column models.Column
			if err := tx.First(&column, item.ID).Error; err != nil {
				return translate(err)
			}
			column.Order = item.Order
			if err := tx.Save(&column).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReorderTasks overwrites order (and column, when supplied) for each listed
// task. Atomic like ReorderColumns; no renumbering or gap checking is done.
func (s *Store) ReorderTasks(ctx context.Context, items []TaskOrder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var task models.Task
			if err := tx.First(&task, item.ID).Error; err != nil {
				return translate(err)
			}
			task.Order = item.Order
			if item.Column != nil {
				task.ColumnID = item.Column
			}
			if err := tx.Save(&task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
