package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rodrigoanasco/nwHacks/backend/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConvertRequest тело запроса к воркеру рендеринга.
type ConvertRequest struct {
	UserID                 string               `json:"userId"`
	Objects                []models.SceneObject `json:"objects"`
	ExpectedCompletionTime *float64             `json:"expectedCompletionTime"`
	ExpectedNumOfActions   *float64             `json:"expectedNumOfActions"`
}

// ConvertResponse ответ воркера. Тело передается дальше без разбора.
type ConvertResponse struct {
	Status int
	Body   []byte
}

// Converter отправляет сцену воркеру рендеринга. Ошибка транспорта
// возвращается как error, любой HTTP ответ считается ответом.
type Converter interface {
	Convert(req ConvertRequest) (*ConvertResponse, error)
}

// WorkerClient обращается к воркеру по HTTP без таймаута и без повторов.
type WorkerClient struct {
	url string
}

func NewWorkerClient(url string) *WorkerClient {
	return &WorkerClient{url: url}
}

func (w *WorkerClient) Convert(req ConvertRequest) (*ConvertResponse, error) {
	agent := fiber.Post(w.url)
	agent.JSON(req)
	if err := agent.Parse(); err != nil {
		return nil, err
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &ConvertResponse{Status: status, Body: body}, nil
}

// Gateway передает сцену упражнения воркеру. Прогресс не меняется.
type Gateway struct {
	catalog ExerciseFinder
	worker  Converter
	logger  *zap.Logger
}

func NewGateway(catalog ExerciseFinder, worker Converter, logger *zap.Logger) *Gateway {
	return &Gateway{catalog: catalog, worker: worker, logger: logger}
}

func (g *Gateway) Dispatch(ctx context.Context, exerciseName, userID string) error {
	const op = "dispatch"

	if strings.TrimSpace(exerciseName) == "" {
		return validationError(op, "exercise name is required")
	}
	if err := validateUserID(op, userID); err != nil {
		return err
	}

	exercise, err := g.catalog.Get(ctx, exerciseName)
	if err != nil {
		return err
	}

	objects := exercise.SceneObjects
	if objects == nil {
		objects = []models.SceneObject{}
	}
	resp, err := g.worker.Convert(ConvertRequest{
		UserID:                 userID,
		Objects:                objects,
		ExpectedCompletionTime: exercise.ExpectedCompletionTime,
		ExpectedNumOfActions:   exercise.ExpectedActionCount,
	})
	if err != nil {
		g.logger.Error("rendering worker unreachable",
			zap.String("exercise", exerciseName),
			zap.String("user_id", userID),
			zap.Error(err))
		return upstreamError(op, 0, err.Error(), err)
	}
	if resp.Status < fiber.StatusOK || resp.Status >= fiber.StatusMultipleChoices {
		g.logger.Warn("rendering worker rejected payload",
			zap.String("exercise", exerciseName),
			zap.String("user_id", userID),
			zap.Int("status", resp.Status))
		return upstreamError(op, resp.Status, string(resp.Body), nil)
	}

	g.logger.Info("exercise dispatched",
		zap.String("exercise", exerciseName),
		zap.String("user_id", userID),
		zap.Int("objects", len(objects)))
	return nil
}
