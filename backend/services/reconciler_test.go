package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rodrigoanasco/nwHacks/backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"pgregory.net/rapid"
)

func TestReconcileScenarioTwoFailsThenPass(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	ctx := context.Background()

	for _, passed := range []bool{false, false, true} {
		_, err := env.reconciler.Reconcile(ctx, submit("u1", "cube_basic", passed))
		require.NoError(t, err)
	}

	record, err := env.store.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, record.Questions, 1)
	assert.Equal(t, models.QuestionProgress{
		ID:        record.Questions[0].ID,
		UserID:    "u1",
		Name:      "cube_basic",
		Attempts:  3,
		Passed:    true,
		UpdatedAt: record.Questions[0].UpdatedAt,
	}, record.Questions[0])

	rows, err := env.dashboard.Rows(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.DashboardRow{
		{Name: "cube_basic", Difficulty: models.DifficultyEasy, Attempts: 3, Status: models.StatusCompleted},
	}, rows)
}

func TestReconcileReturnsPostUpdateRecord(t *testing.T) {
	env := setupTestEnv(t,
		exercise("cube_basic", models.DifficultyEasy),
		exercise("sphere_smooth", models.DifficultyMedium),
	)

	record, err := env.reconciler.Reconcile(context.Background(), submit("u1", "sphere_smooth", false))
	require.NoError(t, err)

	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, []string{"cube_basic", "sphere_smooth"}, entryNames(record))
	sphere, ok := record.Entry("sphere_smooth")
	require.True(t, ok)
	assert.Equal(t, 1, sphere.Attempts)
	assert.False(t, sphere.Passed)
	cube, ok := record.Entry("cube_basic")
	require.True(t, ok)
	assert.Zero(t, cube.Attempts)
}

func TestReconcileAppendsEntryMissingFromExistingRecord(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	ctx := context.Background()

	_, err := env.store.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, env.catalog.Upsert(ctx, []models.Exercise{
		exercise("cube_basic", models.DifficultyEasy),
		exercise("cone_new", models.DifficultyHard),
	}))

	record, err := env.reconciler.Reconcile(ctx, submit("u1", "cone_new", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"cube_basic", "cone_new"}, entryNames(record))
	cone, _ := record.Entry("cone_new")
	assert.Equal(t, 1, cone.Attempts)
	assert.True(t, cone.Passed)
}

func TestReconcileValidationHasNoSideEffects(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	ctx := context.Background()

	cases := map[string]SubmissionInput{
		"empty user":     {QuestionName: "cube_basic", Passed: boolPtr(true)},
		"blank question": {UserID: "u1", QuestionName: "  ", Passed: boolPtr(true)},
		"missing passed": {UserID: "u1", QuestionName: "cube_basic"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.reconciler.Reconcile(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}

	for _, model := range []interface{}{&models.ProgressRecord{}, &models.QuestionProgress{}, &models.Submission{}} {
		var count int64
		require.NoError(t, env.db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestReconcileUnknownExercise(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))

	_, err := env.reconciler.Reconcile(context.Background(), submit("u1", "no_such_model", true))
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.ProgressRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReconcileRecordsSubmissionMetrics(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	actions := 14
	taken := 73.5
	score := 0.8

	in := submit("u1", "cube_basic", false)
	in.NumberOfActions = &actions
	in.TimeTaken = &taken
	in.Score = &score
	_, err := env.reconciler.Reconcile(context.Background(), in)
	require.NoError(t, err)

	var subs []models.Submission
	require.NoError(t, env.db.Find(&subs).Error)
	require.Len(t, subs, 1)
	_, err = uuid.Parse(subs[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, "u1", subs[0].UserID)
	assert.Equal(t, "cube_basic", subs[0].QuestionName)
	require.NotNil(t, subs[0].NumberOfActions)
	assert.Equal(t, 14, *subs[0].NumberOfActions)
	require.NotNil(t, subs[0].TimeTaken)
	assert.Equal(t, 73.5, *subs[0].TimeTaken)
	require.NotNil(t, subs[0].Score)
	assert.Equal(t, 0.8, *subs[0].Score)
}

func TestReconcileRecordsOutOfRangeMetricsAsSent(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	actions := -3
	taken := -1.5

	in := submit("u1", "cube_basic", false)
	in.NumberOfActions = &actions
	in.TimeTaken = &taken
	record, err := env.reconciler.Reconcile(context.Background(), in)
	require.NoError(t, err)

	cube, ok := record.Entry("cube_basic")
	require.True(t, ok)
	assert.Equal(t, 1, cube.Attempts)

	var sub models.Submission
	require.NoError(t, env.db.Take(&sub).Error)
	require.NotNil(t, sub.NumberOfActions)
	assert.Equal(t, -3, *sub.NumberOfActions)
	require.NotNil(t, sub.TimeTaken)
	assert.Equal(t, -1.5, *sub.TimeTaken)
}

// failReadsAfterSubmissionInsert makes every query fail once a submission row
// has been inserted while enabled is set.
func failReadsAfterSubmissionInsert(t *testing.T, env *testEnv, enabled, tripped *atomic.Bool) {
	t.Helper()

	require.NoError(t, env.db.Callback().Create().After("gorm:create").Register("test:trip_on_submission", func(db *gorm.DB) {
		if enabled.Load() && db.Error == nil && db.Statement.Table == "submissions" {
			tripped.Store(true)
		}
	}))
	require.NoError(t, env.db.Callback().Query().Before("gorm:query").Register("test:fail_query", func(db *gorm.DB) {
		if tripped.Load() {
			db.AddError(errors.New("store went away"))
		}
	}))
}

func TestReconcileFailedReadBackWritesNothing(t *testing.T) {
	t.Run("existing entry", func(t *testing.T) {
		env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
		ctx := context.Background()
		var enabled, tripped atomic.Bool
		failReadsAfterSubmissionInsert(t, env, &enabled, &tripped)

		_, err := env.reconciler.Reconcile(ctx, submit("u1", "cube_basic", false))
		require.NoError(t, err)

		enabled.Store(true)
		_, err = env.reconciler.Reconcile(ctx, submit("u1", "cube_basic", true))
		assert.ErrorIs(t, err, ErrStore)
		require.True(t, tripped.Load())
		enabled.Store(false)
		tripped.Store(false)

		record, err := env.store.Get(ctx, "u1")
		require.NoError(t, err)
		cube, ok := record.Entry("cube_basic")
		require.True(t, ok)
		assert.Equal(t, 1, cube.Attempts)
		assert.False(t, cube.Passed)

		var subs int64
		require.NoError(t, env.db.Model(&models.Submission{}).Count(&subs).Error)
		assert.Equal(t, int64(1), subs)
	})

	t.Run("new entry", func(t *testing.T) {
		env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
		ctx := context.Background()
		var enabled, tripped atomic.Bool
		failReadsAfterSubmissionInsert(t, env, &enabled, &tripped)

		enabled.Store(true)
		_, err := env.reconciler.Reconcile(ctx, submit("u2", "cube_basic", true))
		assert.ErrorIs(t, err, ErrStore)
		require.True(t, tripped.Load())
		enabled.Store(false)
		tripped.Store(false)

		for _, model := range []interface{}{&models.ProgressRecord{}, &models.QuestionProgress{}, &models.Submission{}} {
			var count int64
			require.NoError(t, env.db.Model(model).Where("user_id = ?", "u2").Count(&count).Error)
			assert.Zero(t, count)
		}
	})
}

func TestReconcileConcurrentSubmissionsAreAllCounted(t *testing.T) {
	env := setupPooledTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	const n = 20

	var g errgroup.Group
	for i := 0; i < n; i++ {
		passed := i == 7
		g.Go(func() error {
			_, err := env.reconciler.Reconcile(context.Background(), submit("racer", "cube_basic", passed))
			return err
		})
	}
	require.NoError(t, g.Wait())

	record, err := env.store.Get(context.Background(), "racer")
	require.NoError(t, err)
	require.Len(t, record.Questions, 1)
	assert.Equal(t, n, record.Questions[0].Attempts)
	assert.True(t, record.Questions[0].Passed)
}

func TestReconcileStoreUnavailable(t *testing.T) {
	env := setupTestEnv(t, exercise("cube_basic", models.DifficultyEasy))
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = env.reconciler.Reconcile(context.Background(), submit("u1", "cube_basic", true))
	assert.ErrorIs(t, err, ErrStore)
}

func TestPropertyAttemptsCountEverySubmission(t *testing.T) {
	env := setupTestEnv(t,
		exercise("cube_basic", models.DifficultyEasy),
		exercise("sphere_smooth", models.DifficultyMedium),
	)

	rapid.Check(t, func(rt *rapid.T) {
		user := uuid.NewString()
		name := rapid.SampledFrom([]string{"cube_basic", "sphere_smooth"}).Draw(rt, "exercise")
		outcomes := rapid.SliceOfN(rapid.Bool(), 1, 12).Draw(rt, "outcomes")

		everPassed := false
		for i, passed := range outcomes {
			record, err := env.reconciler.Reconcile(context.Background(), submit(user, name, passed))
			if err != nil {
				rt.Fatalf("reconcile %d: %v", i, err)
			}
			everPassed = everPassed || passed

			entry, ok := record.Entry(name)
			if !ok {
				rt.Fatalf("entry %s missing after reconcile %d", name, i)
			}
			if entry.Attempts != i+1 {
				rt.Fatalf("expected %d attempts, got %d", i+1, entry.Attempts)
			}
			if entry.Passed != everPassed {
				rt.Fatalf("after %v expected passed=%v, got %v", outcomes[:i+1], everPassed, entry.Passed)
			}
		}
	})
}
