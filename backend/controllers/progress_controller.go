package controllers

import (
	"github.com/rodrigoanasco/nwHacks/backend/middleware"
	"github.com/rodrigoanasco/nwHacks/backend/services"
	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProgressController struct {
	Store      *services.ProgressStore
	Reconciler *services.Reconciler
	Dashboard  *services.Dashboard
	Logger     *zap.Logger
}

func NewProgressController(store *services.ProgressStore, reconciler *services.Reconciler, dashboard *services.Dashboard, logger *zap.Logger) *ProgressController {
	return &ProgressController{Store: store, Reconciler: reconciler, Dashboard: dashboard, Logger: logger}
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns the caller's progress record without creating one
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressRecord
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	principal := middleware.PrincipalFrom(c)

	record, err := pc.Store.Get(c.UserContext(), principal.UserID)
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return c.JSON(record)
}

// GetDashboard godoc
// @Summary Dashboard rows
// @Description Joins the catalog with the caller's progress; creates the record on first access
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponse
// @Router /dashboard [get]
func (pc *ProgressController) GetDashboard(c *fiber.Ctx) error {
	principal := middleware.PrincipalFrom(c)

	rows, err := pc.Dashboard.Rows(c.UserContext(), principal.UserID)
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return c.JSON(fiber.Map{
		"rows": rows,
	})
}

type submitRequest struct {
	UserID          string   `json:"userId"`
	QuestionName    string   `json:"questionName" validate:"required"`
	Passed          *bool    `json:"passed" validate:"required"`
	NumberOfActions *int     `json:"numberOfActions"`
	TimeTaken       *float64 `json:"timeTaken"`
	Score           *float64 `json:"score"`
}

// Submit godoc
// @Summary Submit an answer
// @Description Counts one attempt for the exercise and records a pass
// @Tags progress
// @Accept json
// @Produce json
// @Param request body submitRequest true "Submission"
// @Success 200 {object} models.ProgressRecord
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /submit [post]
func (pc *ProgressController) Submit(c *fiber.Ctx) error {
	var input submitRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, "Invalid submission", errs)
	}

	// Проверяем, что userId принадлежит вызывающему
	userID, ok := resolveUserID(c, input.UserID)
	if !ok {
		return utils.Forbidden(c, "userId does not match the caller")
	}

	// Засчитываем попытку
	record, err := pc.Reconciler.Reconcile(c.UserContext(), services.SubmissionInput{
		UserID:          userID,
		QuestionName:    input.QuestionName,
		Passed:          input.Passed,
		NumberOfActions: input.NumberOfActions,
		TimeTaken:       input.TimeTaken,
		Score:           input.Score,
	})
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return c.JSON(record)
}
