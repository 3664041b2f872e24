package services

import (
	"context"
	"testing"

	"github.com/rodrigoanasco/nwHacks/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		attempts int
		passed   bool
		want     models.Status
	}{
		{0, false, models.StatusIncomplete},
		{3, false, models.StatusInProgress},
		{1, false, models.StatusInProgress},
		{0, true, models.StatusCompleted},
		{9, true, models.StatusCompleted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.attempts, tt.passed), "attempts=%d passed=%v", tt.attempts, tt.passed)
	}
}

func TestMergeJoinsByNameNotPosition(t *testing.T) {
	catalog := []models.Exercise{
		exercise("a", models.DifficultyEasy),
		exercise("b", models.DifficultyMedium),
		exercise("c", models.DifficultyHard),
	}
	// Shorter and in a different order than the catalog, plus a stale entry.
	progress := &models.ProgressRecord{
		UserID: "u1",
		Questions: []models.QuestionProgress{
			{Name: "c", Attempts: 2, Passed: false},
			{Name: "retired", Attempts: 5, Passed: true},
			{Name: "a", Attempts: 1, Passed: true},
		},
	}

	rows := Merge(catalog, progress)

	assert.Equal(t, []models.DashboardRow{
		{Name: "a", Difficulty: models.DifficultyEasy, Attempts: 1, Status: models.StatusCompleted},
		{Name: "b", Difficulty: models.DifficultyMedium, Attempts: 0, Status: models.StatusIncomplete},
		{Name: "c", Difficulty: models.DifficultyHard, Attempts: 2, Status: models.StatusInProgress},
	}, rows)
}

func TestMergeEdgeCases(t *testing.T) {
	assert.Empty(t, Merge(nil, &models.ProgressRecord{Questions: []models.QuestionProgress{{Name: "a", Attempts: 1}}}))

	rows := Merge([]models.Exercise{exercise("a", "")}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DifficultyUnknown, rows[0].Difficulty)
	assert.Equal(t, models.StatusIncomplete, rows[0].Status)
	assert.Zero(t, rows[0].Attempts)
}

func TestDashboardRowsCreatesRecordOnFirstAccess(t *testing.T) {
	env := setupTestEnv(t,
		exercise("cube_basic", models.DifficultyEasy),
		exercise("sphere_smooth", models.DifficultyMedium),
	)
	ctx := context.Background()

	rows, err := env.dashboard.Rows(ctx, "newcomer")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, models.StatusIncomplete, row.Status)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.ProgressRecord{}).Where("user_id = ?", "newcomer").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDashboardRowsToleratesCatalogGrowth(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	ctx := context.Background()

	_, err := env.reconciler.Reconcile(ctx, submit("u1", "cube_basic", false))
	require.NoError(t, err)
	require.NoError(t, env.catalog.Upsert(ctx, []models.Exercise{
		exercise("cube_basic", models.DifficultyEasy),
		exercise("cone_new", models.DifficultyHard),
	}))

	rows, err := env.dashboard.Rows(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.DashboardRow{
		{Name: "cube_basic", Difficulty: models.DifficultyEasy, Attempts: 1, Status: models.StatusInProgress},
		{Name: "cone_new", Difficulty: models.DifficultyHard, Attempts: 0, Status: models.StatusIncomplete},
	}, rows)
}
