package middleware

import (
	"github.com/rodrigoanasco/nwHacks/backend/config"
	"github.com/rodrigoanasco/nwHacks/backend/models"
	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Identity определяет вызывающего для каждого запроса. Запросы без токена
// выполняются от анонимного пользователя, неверный токен отклоняется.
func Identity(cfg *config.Config) fiber.Handler {
	anonymous := models.Principal{
		Authenticated: false,
		UserID:        cfg.AnonymousUserID,
		Name:          "Guest",
	}

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			c.Locals(principalKey, anonymous)
			return c.Next()
		}

		principal, err := utils.ParsePrincipal(header, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(principalKey, *principal)
		return c.Next()
	}
}

// PrincipalFrom возвращает пользователя, сохраненного Identity.
func PrincipalFrom(c *fiber.Ctx) models.Principal {
	p, _ := c.Locals(principalKey).(models.Principal)
	return p
}
