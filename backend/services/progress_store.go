package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rodrigoanasco/nwHacks/backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressStore хранит записи прогресса пользователей.
type ProgressStore struct {
	db      *gorm.DB
	catalog ExerciseLister
	logger  *zap.Logger
}

func NewProgressStore(db *gorm.DB, catalog ExerciseLister, logger *zap.Logger) *ProgressStore {
	return &ProgressStore{db: db, catalog: catalog, logger: logger}
}

// GetOrCreate возвращает запись пользователя. При первом обращении запись
// создается с нулевой строкой для каждого упражнения каталога.
func (s *ProgressStore) GetOrCreate(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	if err := validateUserID("get or create progress", userID); err != nil {
		return nil, err
	}

	record, err := s.find(ctx, userID)
	if err != nil {
		return nil, storeError("get or create progress", err)
	}
	if record != nil {
		return record, nil
	}

	// Записи нет, создаем ее по текущему каталогу
	exercises, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	var created bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = createIfAbsent(tx, userID, exercises)
		return err
	})
	if err != nil {
		return nil, storeError("get or create progress", err)
	}
	if created {
		s.logger.Info("progress record created",
			zap.String("user_id", userID),
			zap.Int("seeded_entries", len(exercises)))
	}

	return s.load(ctx, userID, "get or create progress")
}

// Get возвращает запись без создания. Если записи нет, возвращается пустая.
func (s *ProgressStore) Get(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	if err := validateUserID("get progress", userID); err != nil {
		return nil, err
	}

	record, err := s.find(ctx, userID)
	if err != nil {
		return nil, storeError("get progress", err)
	}
	if record == nil {
		return &models.ProgressRecord{UserID: userID, Questions: []models.QuestionProgress{}}, nil
	}
	return record, nil
}

// Reset обнуляет все строки прогресса пользователя. Это операция для
// dev-базы, возвращает число затронутых строк.
func (s *ProgressStore) Reset(ctx context.Context, userID string) (int64, error) {
	if err := validateUserID("reset progress", userID); err != nil {
		return 0, err
	}

	res := s.db.WithContext(ctx).Model(&models.QuestionProgress{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"attempts": 0, "passed": false})
	if res.Error != nil {
		return 0, storeError("reset progress", res.Error)
	}

	s.logger.Warn("progress reset", zap.String("user_id", userID), zap.Int64("entries", res.RowsAffected))
	return res.RowsAffected, nil
}

func (s *ProgressStore) load(ctx context.Context, userID, op string) (*models.ProgressRecord, error) {
	record, err := loadRecord(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, storeError(op, err)
	}
	return record, nil
}

func (s *ProgressStore) find(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	return findRecord(s.db.WithContext(ctx), userID)
}

// findRecord читает запись со строками в порядке вставки. db может быть
// транзакцией. Если записи нет, возвращает (nil, nil).
func findRecord(db *gorm.DB, userID string) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	err := db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("user_id = ?", userID).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if record.Questions == nil {
		record.Questions = []models.QuestionProgress{}
	}
	return &record, nil
}

// loadRecord как findRecord, но запись должна существовать.
func loadRecord(db *gorm.DB, userID string) (*models.ProgressRecord, error) {
	record, err := findRecord(db, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("progress record vanished after write")
	}
	return record, nil
}

// createIfAbsent вставляет запись через ON CONFLICT DO NOTHING и заполняет
// строки, только если запись создал этот вызов. Выполняется внутри tx.
func createIfAbsent(tx *gorm.DB, userID string, exercises []models.Exercise) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProgressRecord{UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if len(exercises) == 0 {
		return true, nil
	}

	entries := make([]models.QuestionProgress, 0, len(exercises))
	for _, ex := range exercises {
		entries = append(entries, models.QuestionProgress{UserID: userID, Name: ex.Name})
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entries).Error
	return true, err
}

func validateUserID(op, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return validationError(op, "user id is required")
	}
	return nil
}
