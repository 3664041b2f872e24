package controllers

import (
	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthController struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewHealthController(db *gorm.DB, logger *zap.Logger) *HealthController {
	return &HealthController{DB: db, Logger: logger}
}

// Health godoc
// @Summary Liveness and store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponse
// @Router /health [get]
func (hc *HealthController) Health(c *fiber.Ctx) error {
	sqlDB, err := hc.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		hc.Logger.Error("store ping failed", zap.Error(err))
		return utils.Error(c, fiber.StatusServiceUnavailable, utils.CodeStore, "Store unavailable")
	}
	return c.JSON(fiber.Map{"ok": true})
}
