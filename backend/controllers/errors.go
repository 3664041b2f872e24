package controllers

import (
	"errors"

	"github.com/rodrigoanasco/nwHacks/backend/middleware"
	"github.com/rodrigoanasco/nwHacks/backend/services"
	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError формирует JSON ответ с ошибкой для ошибки сервиса.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var serr *services.Error
	if !errors.As(err, &serr) {
		logger.Error("unexpected error", zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		return utils.InternalServerError(c, "Unexpected error")
	}

	switch serr.Kind {
	case services.KindValidation:
		return utils.ValidationError(c, serr.Message, nil)
	case services.KindNotFound:
		return utils.Error(c, fiber.StatusNotFound, utils.CodeNotFound, serr.Message)
	case services.KindUpstream:
		return utils.Error(c, fiber.StatusBadGateway, utils.CodeUpstream, serr.Message, fiber.Map{
			"status": serr.Status,
			"detail": serr.Detail,
		})
	case services.KindStore:
		logger.Error("store failure", zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		return utils.Error(c, fiber.StatusServiceUnavailable, utils.CodeStore, serr.Message)
	default:
		return utils.InternalServerError(c, serr.Error())
	}
}

// resolveUserID определяет пользователя запроса. Явный userId должен
// совпадать с вызывающим.
func resolveUserID(c *fiber.Ctx, requested string) (string, bool) {
	principal := middleware.PrincipalFrom(c)
	if requested == "" || requested == principal.UserID {
		return principal.UserID, true
	}
	return "", false
}
