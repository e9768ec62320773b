package sqlite

import (
	"context"
	"fmt"

	"github.com/warpwanderer/project-management/internal/models"
)

// ListProjectsByCreator returns the projects the user created.
func (s *Store) ListProjectsByCreator(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := projectPreloads(s.db.WithContext(ctx)).
		Where("created_by_id = ?", userID).
		Order("created_at").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	decorateProjects(projects)
	return projects, nil
}

// ListColumns returns a project's columns in display order.
func (s *Store) ListColumns(ctx context.Context, projectID uint) ([]models.Column, error) {
	if _, err := Get[models.Project](ctx, s, projectID); err != nil {
		return nil, err
	}
	var columns []models.Column
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("`order`").
		Find(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return columns, nil
}

// GetColumnInProject fetches a column and verifies it belongs to the project.
func (s *Store) GetColumnInProject(ctx context.Context, projectID, columnID uint) (models.Column, error) {
	var column models.Column
	err := s.db.WithContext(ctx).
		First(&column, "id = ? AND project_id = ?", columnID, projectID).Error
	if err != nil {
		return models.Column{}, translate(err)
	}
	return column, nil
}

// ListProjectTasks returns all tasks whose column belongs to the project.
func (s *Store) ListProjectTasks(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := taskPreloads(s.db.WithContext(ctx)).
		Select("tasks.*").
		Joins("JOIN columns ON columns.id = tasks.column_id").
		Where("columns.project_id = ?", projectID).
		Order("tasks.`order`").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	decorateTasks(tasks)
	return tasks, nil
}

// ListColumnTasks returns the tasks in a column, verifying the column
// belongs to the project first.
func (s *Store) ListColumnTasks(ctx context.Context, projectID, columnID uint) ([]models.Task, error) {
	if _, err := s.GetColumnInProject(ctx, projectID, columnID); err != nil {
		return nil, err
	}
	var tasks []models.Task
	err := taskPreloads(s.db.WithContext(ctx)).
		Where("column_id = ?", columnID).
		Order("`order`").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list column tasks: %w", err)
	}
	decorateTasks(tasks)
	return tasks, nil
}

// GetTaskInColumn fetches a task and verifies it sits in the column.
func (s *Store) GetTaskInColumn(ctx context.Context, columnID, taskID uint) (models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		First(&task, "id = ? AND column_id = ?", taskID, columnID).Error
	if err != nil {
		return models.Task{}, translate(err)
	}
	return task, nil
}
