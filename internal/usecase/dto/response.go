package dto

import (
	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/usecase/search"
)

// SearchResponse - сгруппированный результат разового поиска
type SearchResponse struct {
	Query  string               `json:"query"`
	Groups []domain.ResultGroup `json:"groups"`
	Total  int                  `json:"total"`
	// Notice - код информационного сообщения, например QUERY_TOO_SHORT
	Notice string `json:"notice,omitempty"`
}

// SessionCreatedResponse - ответ на создание сессии
type SessionCreatedResponse struct {
	ID string `json:"id"`
}

// SessionResponse - снимок состояния сессии
type SessionResponse = search.SessionState

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}
