package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warpwanderer/project-management/internal/auth"
	"github.com/warpwanderer/project-management/internal/models"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
)

// Server provides the HTTP surface of the project management backend.
type Server struct {
	engine    *gin.Engine
	store     *sqlite.Store
	tokens    *auth.Manager
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqlite.Store, tokens *auth.Manager, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	srv := &Server{
		engine:    router,
		store:     store,
		tokens:    tokens,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the auth endpoints, the API surface and the static
// frontend together. The API group requires a bearer access token.
func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/login/", s.handleLogin)
	s.engine.POST("/register/", s.handleRegister)
	s.engine.POST("/token/refresh", s.handleTokenRefresh)

	api := s.engine.Group("/api")
	api.Use(s.authRequired())

	registerResource[models.Role](s, api, "/roles", "role_id")
	registerResource[models.Status](s, api, "/statuses", "status_id")
	registerResource[models.Priority](s, api, "/priorities", "priority_id")
	registerResource[models.Tag](s, api, "/tags", "tag_id")
	registerResource[models.TaskTag](s, api, "/task-tag", "tasktag_id")
	registerResource[models.TaskComment](s, api, "/task-comments", "comment_id")
	registerResource[models.LearningMaterial](s, api, "/learning-materials", "material_id")
	registerResource[models.Column](s, api, "/columns", "column_id")

	// History rows are append-only: list and create, nothing else.
	api.GET("/task-history/", listHandler[models.TaskHistory](s))
	api.POST("/task-history/", createHandler[models.TaskHistory](s))

	api.GET("/users/", listHandler[models.User](s))
	api.POST("/users/", s.handleCreateUser)
	api.GET("/users/:user_id/", getHandler[models.User](s, "user_id"))
	api.PATCH("/users/:user_id/", s.handlePatchUser)
	api.DELETE("/users/:user_id/", s.handleDeleteUser)

	api.GET("/teams/", s.handleListTeams)
	api.POST("/teams/", createHandler[models.Team](s))
	api.GET("/teams/:team_id/", s.handleGetTeam)
	api.PUT("/teams/:team_id/", replaceHandler[models.Team](s, "team_id"))
	api.PATCH("/teams/:team_id/", patchHandler[models.Team](s, "team_id"))
	api.DELETE("/teams/:team_id/", s.handleDeleteTeam)
	api.DELETE("/teams/:team_id/members/:member_id/", s.handleRemoveMember)

	api.GET("/users-teams/", s.handleUsersTeams)
	api.POST("/users-teams/", createHandler[models.UserTeam](s))

	api.GET("/user-invitations/", s.handleListInvitations)
	api.POST("/user-invitations/", s.handleCreateInvitation)
	api.PATCH("/user-invitations/:invitation_id/", s.handleResolveInvitation)

	api.GET("/projects/", s.handleListProjects)
	api.POST("/projects/", createHandler[models.Project](s))
	api.GET("/projects/:project_id/", getHandler[models.Project](s, "project_id"))
	api.PUT("/projects/:project_id/", replaceHandler[models.Project](s, "project_id"))
	api.PATCH("/projects/:project_id/", patchHandler[models.Project](s, "project_id"))
	api.DELETE("/projects/:project_id/", deleteHandler[models.Project](s, "project_id"))

	api.GET("/projects/:project_id/columns", s.handleListProjectColumns)
	api.POST("/projects/:project_id/columns", s.handleCreateProjectColumn)
	api.PUT("/projects/:project_id/columns/:column_id", s.handleReplaceProjectColumn)
	api.PATCH("/projects/:project_id/columns/:column_id", s.handlePatchProjectColumn)
	api.DELETE("/projects/:project_id/columns/:column_id", s.handleDeleteProjectColumn)
	api.POST("/projects/:project_id/columns/update-order/", s.handleColumnOrder)

	api.GET("/projects/:project_id/tasks/", s.handleProjectTasks)
	api.POST("/projects/:project_id/tasks/update-order/", s.handleTaskOrder)

	api.GET("/projects/:project_id/columns/:column_id/tasks/", s.handleListColumnTasks)
	api.POST("/projects/:project_id/columns/:column_id/tasks/", s.handleCreateColumnTask)
	api.PUT("/projects/:project_id/columns/:column_id/tasks/:task_id", s.handleUpdateColumnTask)
	api.PATCH("/projects/:project_id/columns/:column_id/tasks/:task_id", s.handleUpdateColumnTask)
	api.DELETE("/projects/:project_id/columns/:column_id/tasks/:task_id", s.handleDeleteColumnTask)

	api.GET("/tasks/", s.handleListTasks)
	api.POST("/tasks/", createHandler[models.Task](s))
	api.GET("/tasks/:task_id/", s.handleGetTask)
	api.PUT("/tasks/:task_id/", s.handleUpdateTask)
	api.PATCH("/tasks/:task_id/", s.handleUpdateTask)
	api.DELETE("/tasks/:task_id/", deleteHandler[models.Task](s, "task_id"))

	api.GET("/reports/", s.handleReport)
	api.GET("/filter-tasks/", s.handleFilterTasks)
	api.GET("/export-tasks/", s.handleExportTasks)

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to an id with error handling.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return uint(id), true
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// storeError maps storage sentinel errors to their HTTP status.
func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sqlite.ErrNotFound):
		s.respondError(c, http.StatusNotFound, err)
	case errors.Is(err, sqlite.ErrDuplicate),
		errors.Is(err, sqlite.ErrAlreadyMember),
		errors.Is(err, sqlite.ErrInvitationExists):
		s.respondError(c, http.StatusBadRequest, err)
	default:
		s.respondError(c, http.StatusInternalServerError, err)
	}
}
