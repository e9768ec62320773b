package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/models"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
)

// handleListTasks returns the tasks the caller created.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasksByCreator(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// handleGetTask returns a task with its display names resolved.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleUpdateTask merges the body over the task and persists it. A status
// change appends a history row recording who made the transition.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	s.updateTask(c, id)
}

// updateTask is the shared update path for the flat and nested task routes.
func (s *Server) updateTask(c *gin.Context, id uint) {
	task, err := sqlite.Get[models.Task](c.Request.Context(), s.store, id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	prevStatus := task.StatusID

	if !mergeBody(c, s, &task) {
		return
	}

	caller := currentUser(c).ID
	if err := s.store.SaveTask(c.Request.Context(), &task, prevStatus, &caller); err != nil {
		s.storeError(c, err)
		return
	}

	updated, err := s.store.GetTask(c.Request.Context(), task.ID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// taskInColumn resolves the task and verifies it sits in the column from
// the path, answering 404 otherwise.
func (s *Server) taskInColumn(c *gin.Context) (models.Task, bool) {
	column, ok := s.columnInProject(c)
	if !ok {
		return models.Task{}, false
	}
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return models.Task{}, false
	}
	task, err := s.store.GetTaskInColumn(c.Request.Context(), column.ID, taskID)
	if err != nil {
		s.storeError(c, err)
		return models.Task{}, false
	}
	return task, true
}

// handleListColumnTasks lists the tasks of one column.
func (s *Server) handleListColumnTasks(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	columnID, ok := parseID(c, "column_id")
	if !ok {
		return
	}
	tasks, err := s.store.ListColumnTasks(c.Request.Context(), projectID, columnID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// handleCreateColumnTask creates a task inside the column from the path,
// stamping the caller as creator.
func (s *Server) handleCreateColumnTask(c *gin.Context) {
	column, ok := s.columnInProject(c)
	if !ok {
		return
	}

	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if task.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	task.ColumnID = &column.ID
	task.SetCreatedBy(currentUser(c).ID)

	if err := sqlite.Create(c.Request.Context(), s.store, &task); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// handleUpdateColumnTask updates a task through its nested route.
func (s *Server) handleUpdateColumnTask(c *gin.Context) {
	task, ok := s.taskInColumn(c)
	if !ok {
		return
	}
	s.updateTask(c, task.ID)
}

// handleDeleteColumnTask removes a task through its nested route.
func (s *Server) handleDeleteColumnTask(c *gin.Context) {
	task, ok := s.taskInColumn(c)
	if !ok {
		return
	}
	if err := sqlite.Delete[models.Task](c.Request.Context(), s.store, task.ID); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
