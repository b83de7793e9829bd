package usecase

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	apperrors "github.com/address-search/internal/pkg/errors"
	"github.com/address-search/internal/usecase/dto"
	"github.com/address-search/internal/usecase/search"
)

// SearchUseCase - разовый сгруппированный поиск для HTTP API
type SearchUseCase struct {
	geocoder       repository.GeocoderRepository
	minQueryLength int
	logger         *zap.Logger
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(
	geocoder repository.GeocoderRepository,
	minQueryLength int,
	logger *zap.Logger,
) *SearchUseCase {
	if minQueryLength <= 0 {
		minQueryLength = search.DefaultMinQueryLength
	}
	return &SearchUseCase{
		geocoder:       geocoder,
		minQueryLength: minQueryLength,
		logger:         logger,
	}
}

// Search - поиск с группировкой по категории. Короткий запрос не уходит в геокодер.
// Ошибка геокодера дает пустой результат, если не запрошен строгий режим.
func (uc *SearchUseCase) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	resp := &dto.SearchResponse{
		Query:  req.Query,
		Groups: []domain.ResultGroup{},
	}

	if utf8.RuneCountInString(req.Query) <= uc.minQueryLength {
		resp.Notice = apperrors.CodeQueryTooShort
		return resp, nil
	}

	candidates, err := uc.geocoder.Search(ctx, req.Query)
	if err != nil {
		uc.logger.Warn("Geocoder lookup failed",
			zap.String("query", req.Query),
			zap.Error(err))
		if req.Strict {
			return nil, geocoderError(err)
		}
		return resp, nil
	}

	rs := search.GroupByCategory(candidates)
	resp.Groups = rs.Groups()
	resp.Total = rs.Total()

	return resp, nil
}

// geocoderError переводит ошибку геокодера в ошибку API
func geocoderError(err error) *apperrors.AppError {
	if errors.Is(err, domain.ErrMalformedPayload) {
		return apperrors.ErrMalformedResponse
	}
	return apperrors.ErrGeocoderUnavailable.WithDetails(map[string]interface{}{
		"reason": err.Error(),
	})
}
