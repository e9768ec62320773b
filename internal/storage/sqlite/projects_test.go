package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListColumnsOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	project := seedProject(t, s, "Board", alice.ID, nil)
	seedColumn(t, s, "Done", project.ID, 2)
	seedColumn(t, s, "Todo", project.ID, 0)
	seedColumn(t, s, "Doing", project.ID, 1)

	columns, err := s.ListColumns(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, "Todo", columns[0].Name)
	assert.Equal(t, "Doing", columns[1].Name)
	assert.Equal(t, "Done", columns[2].Name)
}

func TestListColumnsUnknownProject(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ListColumns(context.Background(), 424242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetColumnInProjectEnforcesOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	boardA := seedProject(t, s, "A", alice.ID, nil)
	boardB := seedProject(t, s, "B", alice.ID, nil)
	column := seedColumn(t, s, "Todo", boardA.ID, 0)

	found, err := s.GetColumnInProject(ctx, boardA.ID, column.ID)
	require.NoError(t, err)
	assert.Equal(t, column.ID, found.ID)

	// The same column through the wrong project is not found.
	_, err = s.GetColumnInProject(ctx, boardB.ID, column.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectTasksSpansColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	board := seedProject(t, s, "Board", alice.ID, nil)
	other := seedProject(t, s, "Other", alice.ID, nil)
	c1 := seedColumn(t, s, "Todo", board.ID, 0)
	c2 := seedColumn(t, s, "Done", board.ID, 1)
	elsewhere := seedColumn(t, s, "Todo", other.ID, 0)

	seedTask(t, s, "one", &c1.ID, nil)
	seedTask(t, s, "two", &c2.ID, nil)
	seedTask(t, s, "foreign", &elsewhere.ID, nil)

	tasks, err := s.ListProjectTasks(ctx, board.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, taskNames(tasks))
	for _, task := range tasks {
		assert.Equal(t, "Board", task.ProjectName)
	}
}

func TestListColumnTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	board := seedProject(t, s, "Board", alice.ID, nil)
	c1 := seedColumn(t, s, "Todo", board.ID, 0)
	c2 := seedColumn(t, s, "Done", board.ID, 1)

	seedTask(t, s, "keep", &c1.ID, nil)
	seedTask(t, s, "skip", &c2.ID, nil)

	tasks, err := s.ListColumnTasks(ctx, board.ID, c1.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"keep"}, taskNames(tasks))

	// Asking through the wrong project fails the containment check.
	otherBoard := seedProject(t, s, "Other", alice.ID, nil)
	_, err = s.ListColumnTasks(ctx, otherBoard.ID, c1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectsByCreator(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	bob := seedUser(t, s, "bob", "bob@example.com")
	team := seedTeam(t, s, "Core", alice.ID)
	seedProject(t, s, "Mine", alice.ID, &team.ID)
	seedProject(t, s, "Theirs", bob.ID, nil)

	projects, err := s.ListProjectsByCreator(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Mine", projects[0].Name)
	assert.Equal(t, "alice", projects[0].CreatedByUsername)
	assert.Equal(t, "Core", projects[0].TeamName)
}

func TestGetTaskInColumn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	board := seedProject(t, s, "Board", alice.ID, nil)
	c1 := seedColumn(t, s, "Todo", board.ID, 0)
	c2 := seedColumn(t, s, "Done", board.ID, 1)
	task := seedTask(t, s, "card", &c1.ID, nil)

	found, err := s.GetTaskInColumn(ctx, c1.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)

	_, err = s.GetTaskInColumn(ctx, c2.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
