package server

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/models"
)

// handleReport returns the caller's visibility set: the projects they can
// see and the tasks they touch, per the union rules of the store.
func (s *Server) handleReport(c *gin.Context) {
	projects, tasks, err := s.store.ReportData(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "tasks": tasks})
}

// handleFilterTasks narrows the full task set with optional project,
// status and priority equality filters. An omitted parameter places no
// constraint on that dimension.
func (s *Server) handleFilterTasks(c *gin.Context) {
	projectID, ok := parseQueryID(c, "project")
	if !ok {
		return
	}
	statusID, ok := parseQueryID(c, "status")
	if !ok {
		return
	}
	priorityID, ok := parseQueryID(c, "priority")
	if !ok {
		return
	}

	tasks, projects, err := s.store.FilterTasks(c.Request.Context(), projectID, statusID, priorityID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "projects": projects})
}

// handleExportTasks streams every task as a CSV attachment.
func (s *Server) handleExportTasks(c *gin.Context) {
	tasks, err := s.store.TasksForExport(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="tasks.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "Name", "Description", "Status", "Priority", "Due Date"})
	for _, t := range tasks {
		description := ""
		if t.Description != nil {
			description = *t.Description
		}
		dueDate := ""
		if t.DueDate != nil {
			dueDate = t.DueDate.Format("2006-01-02 15:04:05")
		}
		_ = w.Write([]string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Name,
			description,
			t.StatusName,
			t.PriorityName,
			dueDate,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("csv export failed", "error", err.Error())
	}
}

// parseQueryID reads an optional numeric query parameter, responding with
// a validation error when it is present but malformed.
func parseQueryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return nil, false
	}
	v := uint(id)
	return &v, true
}
