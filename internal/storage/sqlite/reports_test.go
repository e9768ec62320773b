package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warpwanderer/project-management/internal/models"
)

func taskNames(tasks []models.Task) []string {
	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	return names
}

func projectNames(projects []models.Project) []string {
	names := make([]string, 0, len(projects))
	for _, project := range projects {
		names = append(names, project.Name)
	}
	return names
}

func TestReportDataVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	bob := seedUser(t, s, "bob", "bob@example.com")

	team := seedTeam(t, s, "Core", alice.ID)
	seedMembership(t, s, bob.ID, team.ID)

	// alice's private board and a board shared with bob's team.
	private := seedProject(t, s, "Private", alice.ID, nil)
	shared := seedProject(t, s, "Shared", alice.ID, &team.ID)

	privateCol := seedColumn(t, s, "Todo", private.ID, 0)
	sharedCol := seedColumn(t, s, "Todo", shared.ID, 0)

	// In the private board: a task assigned to bob.
	seedTask(t, s, "assigned-to-bob", &privateCol.ID, func(task *models.Task) {
		task.CreatedByID = &alice.ID
		task.AssignedToID = &bob.ID
	})
	// In the shared board: one task bob touches, one he does not.
	seedTask(t, s, "bobs-own", &sharedCol.ID, func(task *models.Task) {
		task.CreatedByID = &bob.ID
	})
	seedTask(t, s, "untouched", &sharedCol.ID, func(task *models.Task) {
		task.CreatedByID = &alice.ID
	})

	// bob sees the shared project only, plus every task he touches,
	// including the one sitting in a board he otherwise cannot see.
	projects, tasks, err := s.ReportData(ctx, bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Shared"}, projectNames(projects))
	assert.ElementsMatch(t, []string{"assigned-to-bob", "bobs-own"}, taskNames(tasks))

	// alice sees both of her projects and every task she created.
	projects, tasks, err = s.ReportData(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Private", "Shared"}, projectNames(projects))
	assert.ElementsMatch(t, []string{"assigned-to-bob", "untouched"}, taskNames(tasks))
}

func TestReportDataEmptyForStranger(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	stranger := seedUser(t, s, "stranger", "stranger@example.com")
	project := seedProject(t, s, "Private", alice.ID, nil)
	column := seedColumn(t, s, "Todo", project.ID, 0)
	seedTask(t, s, "hidden", &column.ID, func(task *models.Task) {
		task.CreatedByID = &alice.ID
	})

	projects, tasks, err := s.ReportData(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.Empty(t, tasks)
}

func TestReportDataDecoratesTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	status := models.Status{Name: "Open"}
	require.NoError(t, Create(ctx, s, &status))

	project := seedProject(t, s, "Board", alice.ID, nil)
	column := seedColumn(t, s, "Todo", project.ID, 0)
	seedTask(t, s, "card", &column.ID, func(task *models.Task) {
		task.CreatedByID = &alice.ID
		task.StatusID = &status.ID
	})

	_, tasks, err := s.ReportData(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "alice", tasks[0].CreatedByUsername)
	assert.Equal(t, "Open", tasks[0].StatusName)
	assert.Equal(t, "Board", tasks[0].ProjectName)
	assert.Equal(t, "Todo", tasks[0].ColumnName)
}

func TestFilterTasksConjunction(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	open := models.Status{Name: "Open"}
	done := models.Status{Name: "Done"}
	require.NoError(t, Create(ctx, s, &open))
	require.NoError(t, Create(ctx, s, &done))
	high := models.Priority{Name: "High"}
	require.NoError(t, Create(ctx, s, &high))

	boardA := seedProject(t, s, "A", alice.ID, nil)
	boardB := seedProject(t, s, "B", alice.ID, nil)
	colA := seedColumn(t, s, "Todo", boardA.ID, 0)
	colB := seedColumn(t, s, "Todo", boardB.ID, 0)

	seedTask(t, s, "a-open-high", &colA.ID, func(task *models.Task) {
		task.StatusID = &open.ID
		task.PriorityID = &high.ID
	})
	seedTask(t, s, "a-done", &colA.ID, func(task *models.Task) {
		task.StatusID = &done.ID
	})
	seedTask(t, s, "b-open", &colB.ID, func(task *models.Task) {
		task.StatusID = &open.ID
	})

	// All three filters combine with AND.
	tasks, projects, err := s.FilterTasks(ctx, &boardA.ID, &open.ID, &high.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a-open-high"}, taskNames(tasks))
	assert.ElementsMatch(t, []string{"A"}, projectNames(projects))

	// A single filter leaves the other dimensions unconstrained.
	tasks, projects, err = s.FilterTasks(ctx, nil, &open.ID, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a-open-high", "b-open"}, taskNames(tasks))
	assert.ElementsMatch(t, []string{"A", "B"}, projectNames(projects))

	// No filters returns everything.
	tasks, _, err = s.FilterTasks(ctx, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestFilterTasksNoMatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@example.com")
	board := seedProject(t, s, "A", alice.ID, nil)
	column := seedColumn(t, s, "Todo", board.ID, 0)
	seedTask(t, s, "card", &column.ID, nil)

	unknownStatus := uint(424242)
	tasks, projects, err := s.FilterTasks(ctx, nil, &unknownStatus, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Empty(t, projects)
}

func TestTasksForExport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	open := models.Status{Name: "Open"}
	require.NoError(t, Create(ctx, s, &open))

	seedTask(t, s, "standalone", nil, func(task *models.Task) {
		task.StatusID = &open.ID
	})
	seedTask(t, s, "bare", nil, nil)

	tasks, err := s.TasksForExport(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "standalone", tasks[0].Name)
	assert.Equal(t, "Open", tasks[0].StatusName)
	assert.Empty(t, tasks[1].StatusName)
}
