package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/delivery/http/middleware"
	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/utils"
	"github.com/innovation-atlas/internal/pkg/validator"
	"github.com/innovation-atlas/internal/usecase/dto"
)

// AuthService - вход, ротация и выход
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID int64, refreshToken string) error
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

type AuthHandler struct {
	authUC AuthService
	logger *zap.Logger
}

func NewAuthHandler(authUC AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// Login godoc
// @Summary Вход в админ-панель
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} utils.Response{data=dto.AuthResponse}
// @Failure 401 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.authUC.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result)
}

// Refresh godoc
// @Summary Обновить пару токенов
// @Description Refresh token одноразовый: после успешного вызова старый токен недействителен
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} utils.Response{data=dto.AuthResponse}
// @Failure 401 {object} utils.Response
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.authUC.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result)
}

// Logout godoc
// @Summary Выход
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RefreshRequest true "Refresh token текущей сессии"
// @Success 200 {object} utils.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return utils.SendError(c, errors.ErrMissingToken)
	}

	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.authUC.Logout(c.UserContext(), claims.UserID, req.RefreshToken); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, "Выход выполнен")
}

// Me godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=domain.User}
// @Failure 401 {object} utils.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return utils.SendError(c, errors.ErrMissingToken)
	}

	user, err := h.authUC.Me(c.UserContext(), claims.UserID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user)
}
