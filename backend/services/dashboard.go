package services

import (
	"context"

	"github.com/rodrigoanasco/nwHacks/backend/models"
)

// StatusFor возвращает статус строки дашборда. Пройденное упражнение
// завершено при любом числе попыток.
func StatusFor(attempts int, passed bool) models.Status {
	switch {
	case passed:
		return models.StatusCompleted
	case attempts > 0:
		return models.StatusInProgress
	default:
		return models.StatusIncomplete
	}
}

// Merge объединяет каталог с прогрессом по имени упражнения. Одна строка на
// каждое упражнение каталога в порядке каталога. Упражнение без записи идет
// с нулем попыток, записи об упражнениях вне каталога отбрасываются.
func Merge(catalog []models.Exercise, progress *models.ProgressRecord) []models.DashboardRow {
	byName := make(map[string]models.QuestionProgress)
	if progress != nil {
		for _, q := range progress.Questions {
			byName[q.Name] = q
		}
	}

	rows := make([]models.DashboardRow, 0, len(catalog))
	for _, ex := range catalog {
		q := byName[ex.Name]
		rows = append(rows, models.DashboardRow{
			Name:       ex.Name,
			Difficulty: models.ParseDifficulty(string(ex.Difficulty)),
			Attempts:   q.Attempts,
			Status:     StatusFor(q.Attempts, q.Passed),
		})
	}
	return rows
}

// Dashboard строит строки дашборда для пользователя.
type Dashboard struct {
	catalog ExerciseLister
	store   *ProgressStore
}

func NewDashboard(catalog ExerciseLister, store *ProgressStore) *Dashboard {
	return &Dashboard{catalog: catalog, store: store}
}

// Rows возвращает строки дашборда. Запись прогресса создается при первом
// обращении.
func (d *Dashboard) Rows(ctx context.Context, userID string) ([]models.DashboardRow, error) {
	// Получаем прогресс пользователя
	record, err := d.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Получаем каталог
	catalog, err := d.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return Merge(catalog, record), nil
}
