package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/innovation-atlas/internal/pkg/errors"
)

// Response - единый конверт ответа API
type Response struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Count   *int                   `json:"count,omitempty"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Data:    data,
	})
}

// SendList отправляет список с количеством элементов
func SendList(c *fiber.Ctx, data interface{}, count int) error {
	return c.JSON(Response{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func SendMessage(c *fiber.Ctx, message string) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
	})
}

// requestErrorKey - ключ Locals, по которому middleware.Logger находит причину 5xx
const requestErrorKey = "request_error"

// SendError выбирает статус по типу ошибки. Неизвестные ошибки отдаются как 500 без подробностей,
// исходная ошибка остаётся в Locals для журнала запросов.
func SendError(c *fiber.Ctx, err error) error {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.ErrInternalServer
	}
	if appErr.StatusCode >= fiber.StatusInternalServerError {
		c.Locals(requestErrorKey, err)
	}

	return c.Status(appErr.StatusCode).JSON(Response{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// RequestError возвращает ошибку, скрытую SendError от клиента
func RequestError(c *fiber.Ctx) error {
	err, _ := c.Locals(requestErrorKey).(error)
	return err
}
