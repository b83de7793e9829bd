package handler

import (
	"time"

	"github.com/address-search/internal/pkg/utils"
	"github.com/address-search/internal/pkg/validator"
	"github.com/address-search/internal/usecase"
	"github.com/address-search/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SearchHandler - обработчик разового поиска
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск адреса с группировкой по категории
// @Description Разовый запрос к геокодеру без дебаунса. Запрос из 2 символов и короче не отправляется, в ответе будет notice QUERY_TOO_SHORT. При ошибке геокодера возвращается пустой список, если не указан strict.
// @Tags Search
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param strict query bool false "Вернуть ошибку геокодера вместо пустого результата" default(false)
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	start := time.Now()
	result, err := h.searchUC.Search(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		Groups:   len(result.Groups),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
