package sqlite

import (
	"gorm.io/gorm"

	"github.com/warpwanderer/project-management/internal/models"
)

// taskPreloads joins everything needed to fill the read-only name fields
// the API exposes alongside raw foreign keys.
func taskPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("CreatedBy").Preload("AssignedTo").
		Preload("Status").Preload("Priority").Preload("Column.Project")
}

func decorateTask(t *models.Task) {
	if t.CreatedBy != nil {
		t.CreatedByUsername = t.CreatedBy.Username
	}
	if t.AssignedTo != nil {
		t.AssignedToName = t.AssignedTo.Username
	}
	if t.Status != nil {
		t.StatusName = t.Status.Name
	}
	if t.Priority != nil {
		t.PriorityName = t.Priority.Name
	}
	if t.Column != nil {
		t.ColumnName = t.Column.Name
		if t.Column.Project != nil {
			t.ProjectName = t.Column.Project.Name
		}
	}
}

func decorateTasks(tasks []models.Task) {
	for i := range tasks {
		decorateTask(&tasks[i])
	}
}

func projectPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("CreatedBy").Preload("Team")
}

func decorateProject(p *models.Project) {
	if p.CreatedBy != nil {
		p.CreatedByUsername = p.CreatedBy.Username
	}
	if p.Team != nil {
		p.TeamName = p.Team.Name
	}
}

func decorateProjects(projects []models.Project) {
	for i := range projects {
		decorateProject(&projects[i])
	}
}
