package repository

import (
	"context"

	"github.com/address-search/internal/domain"
)

// GeocoderRepository определяет методы для работы с внешним геокодером
type GeocoderRepository interface {
	// Search выполняет прямое геокодирование свободного текста.
	// Возвращает кандидатов в порядке релевантности провайдера.
	Search(ctx context.Context, query string) ([]domain.LocationCandidate, error)
}
