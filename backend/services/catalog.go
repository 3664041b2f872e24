package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rodrigoanasco/nwHacks/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExerciseLister возвращает весь каталог в порядке каталога.
type ExerciseLister interface {
	List(ctx context.Context) ([]models.Exercise, error)
}

// ExerciseFinder ищет упражнение по имени.
type ExerciseFinder interface {
	Get(ctx context.Context, name string) (*models.Exercise, error)
}

// Catalog дает доступ к описаниям упражнений.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) List(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := c.db.WithContext(ctx).Order("position ASC, name ASC").Find(&exercises).Error; err != nil {
		return nil, storeError("list exercises", err)
	}
	for i := range exercises {
		exercises[i].Difficulty = models.ParseDifficulty(string(exercises[i].Difficulty))
	}
	return exercises, nil
}

func (c *Catalog) Get(ctx context.Context, name string) (*models.Exercise, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationError("get exercise", "exercise name is required")
	}

	var exercise models.Exercise
	err := c.db.WithContext(ctx).Where("name = ?", name).Take(&exercise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError("get exercise", "exercise %q not found", name)
	}
	if err != nil {
		return nil, storeError("get exercise", err)
	}
	exercise.Difficulty = models.ParseDifficulty(string(exercise.Difficulty))
	return &exercise, nil
}

// Upsert заменяет описания переданных упражнений. Упражнения, которые уже
// есть в каталоге, сохраняют позицию, новые добавляются в конец в переданном
// порядке. Используется только при загрузке каталога.
func (c *Catalog) Upsert(ctx context.Context, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(exercises))
	rows := make([]models.Exercise, len(exercises))
	names := make([]string, len(exercises))
	for i, ex := range exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			return validationError("upsert exercises", "exercise #%d has no name", i+1)
		}
		if _, dup := seen[ex.Name]; dup {
			return validationError("upsert exercises", "exercise %q is listed twice", ex.Name)
		}
		seen[ex.Name] = struct{}{}
		ex.Difficulty = models.ParseDifficulty(string(ex.Difficulty))
		rows[i] = ex
		names[i] = ex.Name
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Позиции уже известных упражнений
		var existing []models.Exercise
		if err := tx.Select("name", "position").Where("name IN ?", names).Find(&existing).Error; err != nil {
			return err
		}
		positions := make(map[string]int, len(existing))
		for _, ex := range existing {
			positions[ex.Name] = ex.Position
		}

		// Новые упражнения идут после последнего
		var next int
		err := tx.Model(&models.Exercise{}).Select("COALESCE(MAX(position) + 1, 0)").Row().Scan(&next)
		if err != nil {
			return err
		}
		for i := range rows {
			if pos, ok := positions[rows[i].Name]; ok {
				rows[i].Position = pos
				continue
			}
			rows[i].Position = next
			next++
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"difficulty", "scene_objects", "expected_completion_time",
				"expected_action_count", "updated_at",
			}),
		}).Create(&rows).Error
	})
	if err != nil {
		return storeError("upsert exercises", err)
	}
	return nil
}
