package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rodrigoanasco/nwHacks/backend/models"
	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	catalog    *Catalog
	store      *ProgressStore
	reconciler *Reconciler
	dashboard  *Dashboard
}

func setupTestEnv(t *testing.T, exercises ...models.Exercise) *testEnv {
	t.Helper()

	db, err := utils.OpenSQLite(":memory:")
	require.NoError(t, err)
	return newTestEnv(t, db, exercises...)
}

// setupPooledTestEnv uses a database file shared by several connections, so
// concurrent transactions really overlap.
func setupPooledTestEnv(t *testing.T, exercises ...models.Exercise) *testEnv {
	t.Helper()

	db, err := utils.OpenSQLitePool(filepath.Join(t.TempDir(), "progress.db"), 8)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.Equal(t, 8, sqlDB.Stats().MaxOpenConnections)
	return newTestEnv(t, db, exercises...)
}

func newTestEnv(t *testing.T, db *gorm.DB, exercises ...models.Exercise) *testEnv {
	t.Helper()

	require.NoError(t, utils.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	logger := zaptest.NewLogger(t)
	catalog := NewCatalog(db)
	store := NewProgressStore(db, catalog, logger)
	env := &testEnv{
		db:         db,
		catalog:    catalog,
		store:      store,
		reconciler: NewReconciler(db, catalog, logger),
		dashboard:  NewDashboard(catalog, store),
	}

	if len(exercises) > 0 {
		require.NoError(t, catalog.Upsert(context.Background(), exercises))
	}
	return env
}

func exercise(name string, difficulty models.Difficulty) models.Exercise {
	return models.Exercise{Name: name, Difficulty: difficulty}
}

func boolPtr(b bool) *bool { return &b }

func submit(user, question string, passed bool) SubmissionInput {
	return SubmissionInput{UserID: user, QuestionName: question, Passed: boolPtr(passed)}
}

func entryNames(r *models.ProgressRecord) []string {
	names := make([]string, 0, len(r.Questions))
	for _, q := range r.Questions {
		names = append(names, q.Name)
	}
	return names
}
