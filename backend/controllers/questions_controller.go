package controllers

import (
	"github.com/rodrigoanasco/nwHacks/backend/models"
	"github.com/rodrigoanasco/nwHacks/backend/services"
	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuestionsController struct {
	Catalog *services.Catalog
	Gateway *services.Gateway
	Logger  *zap.Logger
}

func NewQuestionsController(catalog *services.Catalog, gateway *services.Gateway, logger *zap.Logger) *QuestionsController {
	return &QuestionsController{Catalog: catalog, Gateway: gateway, Logger: logger}
}

// ListQuestions godoc
// @Summary List exercises
// @Description Returns every exercise name and difficulty in catalog order
// @Tags questions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponse
// @Router /question/all [get]
func (qc *QuestionsController) ListQuestions(c *fiber.Ctx) error {
	exercises, err := qc.Catalog.List(c.UserContext())
	if err != nil {
		return respondError(c, qc.Logger, err)
	}

	// Формируем упрощенный ответ
	questions := make([]models.ExerciseSummary, 0, len(exercises))
	for _, ex := range exercises {
		questions = append(questions, ex.Summary())
	}

	return c.JSON(fiber.Map{
		"questions": questions,
	})
}

// GetQuestion godoc
// @Summary Exercise details
// @Description Returns one exercise with its scene objects and expectations
// @Tags questions
// @Produce json
// @Param name path string true "Exercise name"
// @Success 200 {object} models.Exercise
// @Failure 404 {object} utils.ErrorResponse
// @Router /question/{name} [get]
func (qc *QuestionsController) GetQuestion(c *fiber.Ctx) error {
	exercise, err := qc.Catalog.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return respondError(c, qc.Logger, err)
	}
	return c.JSON(exercise)
}

type loadRequest struct {
	Name   string `json:"name" validate:"required"`
	UserID string `json:"userId"`
}

// LoadQuestion godoc
// @Summary Load exercise in the renderer
// @Description Sends the exercise's scene objects to the rendering worker
// @Tags questions
// @Accept json
// @Produce json
// @Param request body loadRequest true "Exercise to load"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /question [post]
func (qc *QuestionsController) LoadQuestion(c *fiber.Ctx) error {
	var input loadRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, "Invalid load request", errs)
	}

	// Проверяем, что userId принадлежит вызывающему
	userID, ok := resolveUserID(c, input.UserID)
	if !ok {
		return utils.Forbidden(c, "userId does not match the caller")
	}

	if err := qc.Gateway.Dispatch(c.UserContext(), input.Name, userID); err != nil {
		return respondError(c, qc.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}
