package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rodrigoanasco/nwHacks/backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionInput одна отправка ответа. Passed указатель, чтобы отличать
// отсутствие значения от false. Метрики сохраняются в журнал как есть и
// не влияют на число попыток.
type SubmissionInput struct {
	UserID          string
	QuestionName    string
	Passed          *bool
	NumberOfActions *int
	TimeTaken       *float64
	Score           *float64
}

// Reconciler применяет отправки к записям прогресса.
type Reconciler struct {
	db      *gorm.DB
	catalog ExerciseLister
	logger  *zap.Logger
}

func NewReconciler(db *gorm.DB, catalog ExerciseLister, logger *zap.Logger) *Reconciler {
	return &Reconciler{db: db, catalog: catalog, logger: logger}
}

// errEntryMissing прерывает быстрый путь, если строки еще нет.
var errEntryMissing = errors.New("progress entry missing")

// Reconcile засчитывает одну попытку для пары (пользователь, упражнение) и
// отмечает прохождение. Возвращает запись после изменения.
//
// Существующая строка обновляется одним условным UPDATE. Если строки нет,
// запись создается при отсутствии, а строка вставляется через ON CONFLICT,
// поэтому одновременные первые отправки учитываются все. Каждый путь идет
// в одной транзакции вместе с журналом и чтением результата, при ошибке
// ничего не сохраняется.
func (r *Reconciler) Reconcile(ctx context.Context, in SubmissionInput) (*models.ProgressRecord, error) {
	const op = "reconcile"

	if err := in.validate(op); err != nil {
		return nil, err
	}
	passed := *in.Passed

	// Быстрый путь: строка уже есть
	var record *models.ProgressRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.QuestionProgress{}).
			Where("user_id = ? AND name = ?", in.UserID, in.QuestionName).
			Updates(map[string]interface{}{
				"attempts": gorm.Expr("attempts + 1"),
				"passed":   gorm.Expr("passed OR ?", passed),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errEntryMissing
		}
		if err := tx.Create(in.auditRow()).Error; err != nil {
			return err
		}
		var err error
		record, err = loadRecord(tx, in.UserID)
		return err
	})

	// Строки нет, добавляем ее
	if errors.Is(err, errEntryMissing) {
		record, err = r.appendEntry(ctx, op, in)
	}
	if err != nil {
		return nil, storeError(op, err)
	}

	r.logger.Info("submission reconciled",
		zap.String("user_id", in.UserID),
		zap.String("question", in.QuestionName),
		zap.Bool("passed", passed),
		optionalInt("number_of_actions", in.NumberOfActions),
		optionalFloat("time_taken", in.TimeTaken),
		optionalFloat("score", in.Score))

	return record, nil
}

func (r *Reconciler) appendEntry(ctx context.Context, op string, in SubmissionInput) (*models.ProgressRecord, error) {
	exercises, err := r.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	// Упражнение должно быть в каталоге
	if !containsExercise(exercises, in.QuestionName) {
		return nil, notFoundError(op, "exercise %q not found", in.QuestionName)
	}

	var record *models.ProgressRecord
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := createIfAbsent(tx, in.UserID, exercises); err != nil {
			return err
		}

		entry := models.QuestionProgress{
			UserID:   in.UserID,
			Name:     in.QuestionName,
			Attempts: 1,
			Passed:   *in.Passed,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"attempts": gorm.Expr("question_progress.attempts + 1"),
				"passed":   gorm.Expr("question_progress.passed OR excluded.passed"),
			}),
		}).Create(&entry).Error
		if err != nil {
			return err
		}
		if err := tx.Create(in.auditRow()).Error; err != nil {
			return err
		}
		record, err = loadRecord(tx, in.UserID)
		return err
	})
	return record, err
}

func (in SubmissionInput) validate(op string) error {
	if strings.TrimSpace(in.UserID) == "" {
		return validationError(op, "user id is required")
	}
	if strings.TrimSpace(in.QuestionName) == "" {
		return validationError(op, "question name is required")
	}
	if in.Passed == nil {
		return validationError(op, "passed must be a boolean")
	}
	return nil
}

func (in SubmissionInput) auditRow() *models.Submission {
	return &models.Submission{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		QuestionName:    in.QuestionName,
		Passed:          *in.Passed,
		NumberOfActions: in.NumberOfActions,
		TimeTaken:       in.TimeTaken,
		Score:           in.Score,
	}
}

func containsExercise(exercises []models.Exercise, name string) bool {
	for _, ex := range exercises {
		if ex.Name == name {
			return true
		}
	}
	return false
}

func optionalInt(key string, v *int) zap.Field {
	if v == nil {
		return zap.Skip()
	}
	return zap.Int(key, *v)
}

func optionalFloat(key string, v *float64) zap.Field {
	if v == nil {
		return zap.Skip()
	}
	return zap.Float64(key, *v)
}
