package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warpwanderer/project-management/internal/models"
)

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	status := models.Status{Name: "Open", Color: "green"}
	require.NoError(t, Create(ctx, s, &status))
	require.NotZero(t, status.ID)

	loaded, err := Get[models.Status](ctx, s, status.ID)
	require.NoError(t, err)
	assert.Equal(t, "Open", loaded.Name)
	assert.Equal(t, "green", loaded.Color)
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t)
	_, err := Get[models.Status](context.Background(), s, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "alice", "alice@example.com")
	dup := models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	err := Create(ctx, s, &dup)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestReplaceOverwritesFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "alice", "alice@example.com")
	project := models.Project{
		Name:        "Original",
		Description: ptr("keep me?"),
		CreatedByID: &owner.ID,
	}
	require.NoError(t, Create(ctx, s, &project))

	replacement := models.Project{Name: "Renamed"}
	updated, err := Replace(ctx, s, project.ID, &replacement)
	require.NoError(t, err)

	assert.Equal(t, project.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.CreatedByID)
	assert.Equal(t, project.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestReplaceUnknownID(t *testing.T) {
	s := newTestStore(t)
	replacement := models.Status{Name: "Ghost"}
	_, err := Replace(context.Background(), s, 424242, &replacement)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := models.Tag{Name: "urgent"}
	require.NoError(t, Create(ctx, s, &tag))
	require.NoError(t, Delete[models.Tag](ctx, s, tag.ID))

	_, err := Get[models.Tag](ctx, s, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = Delete[models.Tag](ctx, s, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Low", "Medium", "High"} {
		priority := models.Priority{Name: name}
		require.NoError(t, Create(ctx, s, &priority))
	}

	priorities, err := List[models.Priority](ctx, s)
	require.NoError(t, err)
	assert.Len(t, priorities, 3)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}
