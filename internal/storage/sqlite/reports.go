package sqlite

import (
	"context"
	"fmt"

	"github.com/warpwanderer/project-management/internal/models"
)

// ReportData computes the caller's visibility set: projects shared with
// their teams or created by them, and the union of tasks inside those
// projects they touch, tasks assigned to them and tasks they created.
func (s *Store) ReportData(ctx context.Context, userID uint) ([]models.Project, []models.Task, error) {
	var teamIDs []uint
	err := s.db.WithContext(ctx).Model(&models.UserTeam{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &teamIDs).Error
	if err != nil {
		return nil, nil, fmt.Errorf("list user teams: %w", err)
	}

	var projects []models.Project
	err = projectPreloads(s.db.WithContext(ctx)).
		Where("team_id IN ? OR created_by_id = ?", idsOrNone(teamIDs), userID).
		Find(&projects).Error
	if err != nil {
		return nil, nil, fmt.Errorf("list visible projects: %w", err)
	}
	decorateProjects(projects)

	projectIDs := make([]uint, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	var tasks []models.Task
	err = taskPreloads(s.db.WithContext(ctx)).
		Select("tasks.*").
		Joins("LEFT JOIN columns ON columns.id = tasks.column_id").
		Where(`(columns.project_id IN ? AND (tasks.column_id IS NULL OR tasks.assigned_to_id = ? OR tasks.created_by_id = ?))
			OR tasks.assigned_to_id = ? OR tasks.created_by_id = ?`,
			idsOrNone(projectIDs), userID, userID, userID, userID).
		Distinct().
		Find(&tasks).Error
	if err != nil {
		return nil, nil, fmt.Errorf("list visible tasks: %w", err)
	}
	decorateTasks(tasks)

	return projects, tasks, nil
}

// FilterTasks narrows the full task set with optional equality filters and
// also returns the distinct projects the matched tasks belong to. Unlike
// ReportData this entry point is not scoped to the caller.
func (s *Store) FilterTasks(ctx context.Context, projectID, statusID, priorityID *uint) ([]models.Task, []models.Project, error) {
	q := taskPreloads(s.db.WithContext(ctx)).Select("tasks.*")
	if projectID != nil {
		q = q.Joins("JOIN columns ON columns.id = tasks.column_id").
			Where("columns.project_id = ?", *projectID)
	}
	if statusID != nil {
		q = q.Where("tasks.status_id = ?", *statusID)
	}
	if priorityID != nil {
		q = q.Where("tasks.priority_id = ?", *priorityID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, nil, fmt.Errorf("filter tasks: %w", err)
	}
	decorateTasks(tasks)

	taskIDs := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}

	var projects []models.Project
	err := projectPreloads(s.db.WithContext(ctx)).
		Select("projects.*").
		Joins("JOIN columns ON columns.project_id = projects.id").
		Joins("JOIN tasks ON tasks.column_id = columns.id").
		Where("tasks.id IN ?", idsOrNone(taskIDs)).
		Distinct().
		Find(&projects).Error
	if err != nil {
		return nil, nil, fmt.Errorf("filter projects: %w", err)
	}
	decorateProjects(projects)

	return tasks, projects, nil
}

// TasksForExport returns every task with status and priority resolved,
// ordered by id for a stable CSV layout.
func (s *Store) TasksForExport(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Preload("Status").Preload("Priority").
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	decorateTasks(tasks)
	return tasks, nil
}

// idsOrNone keeps "IN ?" well-formed when the id list is empty.
func idsOrNone(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
