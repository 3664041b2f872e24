package controllers

import (
	"github.com/rodrigoanasco/nwHacks/backend/middleware"

	"github.com/gofiber/fiber/v2"
)

type IdentityController struct{}

func NewIdentityController() *IdentityController {
	return &IdentityController{}
}

// Me godoc
// @Summary Current caller
// @Description Returns the resolved identity; unauthenticated callers get the guest principal
// @Tags identity
// @Produce json
// @Success 200 {object} models.Principal
// @Failure 401 {object} utils.ErrorResponse
// @Router /me [get]
func (ic *IdentityController) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.PrincipalFrom(c))
}
