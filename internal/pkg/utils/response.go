package utils

import (
	"github.com/address-search/internal/pkg/errors"
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse - конверт успешного ответа
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// ErrorResponse - конверт ошибки
type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// Meta - сводка по сгруппированным результатам
type Meta struct {
	Total    int     `json:"total,omitempty"`
	Groups   int     `json:"groups,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{Data: data, Meta: meta})
}

// SendCreated отвечает 201 и ставит Location на созданный ресурс
func SendCreated(c *fiber.Ctx, location string, data interface{}) error {
	if location != "" {
		c.Location(location)
	}
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{Data: data})
}

func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// SendError рендерит AppError с его статусом; все прочее скрывается за 500
func SendError(c *fiber.Ctx, err error) error {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.ErrInternalServer
	}
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{Error: appErr})
}
