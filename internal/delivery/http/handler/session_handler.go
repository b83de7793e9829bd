package handler

import (
	"github.com/address-search/internal/pkg/utils"
	"github.com/address-search/internal/pkg/validator"
	"github.com/address-search/internal/usecase"
	"github.com/address-search/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler - обработчик сессий поиска с дебаунсом
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

// NewSessionHandler - создание нового SessionHandler
func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Создать сессию поиска
// @Description Сессия хранит текст ввода, результаты и выбор; закрывается после 10 минут простоя
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionCreatedResponse}
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	result := h.sessionUC.Create()
	return utils.SendCreated(c, c.Path()+"/"+result.ID, result)
}

// Get godoc
// @Summary Состояние сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return h.respond(c)(h.sessionUC.State(c.Params("id")))
}

// Input godoc
// @Summary Изменение текста ввода
// @Description Запрос к геокодеру уходит через 300 мс после последнего изменения. Список должен быть открыт.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SessionInputRequest true "Текст поля ввода"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/input [post]
func (h *SessionHandler) Input(c *fiber.Ctx) error {
	var req dto.SessionInputRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	return h.respond(c)(h.sessionUC.Input(c.Params("id"), req))
}

// Open godoc
// @Summary Открыть список результатов
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/open [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	return h.respond(c)(h.sessionUC.Open(c.Params("id")))
}

// Dismiss godoc
// @Summary Закрыть список без выбора
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/dismiss [post]
func (h *SessionHandler) Dismiss(c *fiber.Ctx) error {
	return h.respond(c)(h.sessionUC.Dismiss(c.Params("id")))
}

// Select godoc
// @Summary Выбрать кандидата
// @Description Выбор публикуется в stream:location:selected, если Redis включен
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectCandidateRequest true "ID кандидата"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/select [post]
func (h *SessionHandler) Select(c *fiber.Ctx) error {
	var req dto.SelectCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	return h.respond(c)(h.sessionUC.Select(c.Params("id"), req))
}

// ClearSelection godoc
// @Summary Сбросить выбор
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/selection [delete]
func (h *SessionHandler) ClearSelection(c *fiber.Ctx) error {
	return h.respond(c)(h.sessionUC.ClearSelection(c.Params("id")))
}

// Delete godoc
// @Summary Закрыть сессию
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessionUC.Close(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendNoContent(c)
}

func (h *SessionHandler) respond(c *fiber.Ctx) func(*dto.SessionResponse, error) error {
	return func(state *dto.SessionResponse, err error) error {
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendSuccess(c, state, &utils.Meta{
			Total:  state.Results.Total(),
			Groups: state.Results.Len(),
		})
	}
}
