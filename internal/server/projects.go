package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/models"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
)

// handleListProjects returns the caller's own projects.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjectsByCreator(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// handleListProjectColumns lists the columns of a project in display order.
func (s *Server) handleListProjectColumns(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	columns, err := s.store.ListColumns(c.Request.Context(), projectID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if columns == nil {
		columns = []models.Column{}
	}
	c.JSON(http.StatusOK, columns)
}

// handleCreateProjectColumn adds a column to the project, stamping the
// caller as creator regardless of the payload.
func (s *Server) handleCreateProjectColumn(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	if _, err := sqlite.Get[models.Project](c.Request.Context(), s.store, projectID); err != nil {
		s.storeError(c, err)
		return
	}

	var column models.Column
	if err := c.ShouldBindJSON(&column); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if column.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	column.ProjectID = projectID
	column.SetCreatedBy(currentUser(c).ID)

	if err := sqlite.Create(c.Request.Context(), s.store, &column); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// columnInProject resolves the column and verifies it belongs to the
// project, answering 404 otherwise.
func (s *Server) columnInProject(c *gin.Context) (models.Column, bool) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return models.Column{}, false
	}
	columnID, ok := parseID(c, "column_id")
	if !ok {
		return models.Column{}, false
	}
	column, err := s.store.GetColumnInProject(c.Request.Context(), projectID, columnID)
	if err != nil {
		s.storeError(c, err)
		return models.Column{}, false
	}
	return column, true
}

// handleReplaceProjectColumn overwrites a column's fields, keeping it
// attached to the project in the path.
func (s *Server) handleReplaceProjectColumn(c *gin.Context) {
	column, ok := s.columnInProject(c)
	if !ok {
		return
	}
	var update models.Column
	if err := c.ShouldBindJSON(&update); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	update.ProjectID = column.ProjectID
	updated, err := sqlite.Replace(c.Request.Context(), s.store, column.ID, &update)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// handlePatchProjectColumn merges the body over the column.
func (s *Server) handlePatchProjectColumn(c *gin.Context) {
	column, ok := s.columnInProject(c)
	if !ok {
		return
	}
	if !mergeBody(c, s, &column) {
		return
	}
	if err := sqlite.Save(c.Request.Context(), s.store, &column); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// handleDeleteProjectColumn removes a column and, through the cascade,
// its tasks.
func (s *Server) handleDeleteProjectColumn(c *gin.Context) {
	column, ok := s.columnInProject(c)
	if !ok {
		return
	}
	if err := sqlite.Delete[models.Column](c.Request.Context(), s.store, column.ID); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleProjectTasks lists every task whose column belongs to the project.
func (s *Server) handleProjectTasks(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	tasks, err := s.store.ListProjectTasks(c.Request.Context(), projectID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

type columnOrderRequest struct {
	Order []sqlite.ColumnOrder `json:"order" binding:"required"`
}

// handleColumnOrder applies a client-supplied column sequence in one
// atomic batch.
func (s *Server) handleColumnOrder(c *gin.Context) {
	if _, ok := parseID(c, "project_id"); !ok {
		return
	}
	var req columnOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.store.ReorderColumns(c.Request.Context(), req.Order); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type taskOrderRequest struct {
	Order []sqlite.TaskOrder `json:"order" binding:"required"`
}

// handleTaskOrder applies a client-supplied task sequence, optionally
// moving tasks between columns, in one atomic batch.
func (s *Server) handleTaskOrder(c *gin.Context) {
	if _, ok := parseID(c, "project_id"); !ok {
		return
	}
	var req taskOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.store.ReorderTasks(c.Request.Context(), req.Order); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
