package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/utils"
)

const claimsKey = "auth_claims"

// AccessTokenValidator проверяет access token и возвращает его содержимое
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*domain.TokenClaims, error)
}

// Auth требует заголовок "Authorization: Bearer <token>" с действующим access token
func Auth(tokens AccessTokenValidator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := bearerToken(header)
		if !ok {
			return utils.SendError(c, errors.ErrMissingToken)
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			logger.Debug("Access token rejected", zap.String("path", c.Path()), zap.Error(err))
			return utils.SendError(c, errors.ErrInvalidToken)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireCapability пропускает только роли, которым разрешено действие. Ставится после Auth
func RequireCapability(capability domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return utils.SendError(c, errors.ErrMissingToken)
		}
		if !claims.Role.Can(capability) {
			return utils.SendError(c, errors.ErrForbidden)
		}
		return c.Next()
	}
}

// ClaimsFrom достаёт данные токена, сохранённые Auth
func ClaimsFrom(c *fiber.Ctx) (*domain.TokenClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*domain.TokenClaims)
	return claims, ok && claims != nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
