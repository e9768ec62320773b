package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warpwanderer/project-management/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ptr[T any](v T) *T {
	return &v
}

func seedUser(t *testing.T, s *Store, username, email string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, Create(context.Background(), s, &user))
	return user
}

func seedTeam(t *testing.T, s *Store, name string, ownerID uint) models.Team {
	t.Helper()
	team := models.Team{Name: name, CreatedByID: &ownerID}
	require.NoError(t, Create(context.Background(), s, &team))
	return team
}

func seedMembership(t *testing.T, s *Store, userID, teamID uint) {
	t.Helper()
	membership := models.UserTeam{UserID: userID, TeamID: teamID}
	require.NoError(t, Create(context.Background(), s, &membership))
}

func seedProject(t *testing.T, s *Store, name string, ownerID uint, teamID *uint) models.Project {
	t.Helper()
	project := models.Project{Name: name, CreatedByID: &ownerID, TeamID: teamID}
	require.NoError(t, Create(context.Background(), s, &project))
	return project
}

func seedColumn(t *testing.T, s *Store, name string, projectID uint, order uint) models.Column {
	t.Helper()
	column := models.Column{Name: name, ProjectID: projectID, Order: order}
	require.NoError(t, Create(context.Background(), s, &column))
	return column
}

func seedTask(t *testing.T, s *Store, name string, columnID *uint, mutate func(*models.Task)) models.Task {
	t.Helper()
	task := models.Task{Name: name, ColumnID: columnID}
	if mutate != nil {
		mutate(&task)
	}
	require.NoError(t, Create(context.Background(), s, &task))
	return task
}
