package search

import (
	"context"
	"sync"
	"time"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	apperrors "github.com/address-search/internal/pkg/errors"
	"github.com/address-search/internal/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelectionHandler получает выбор пользователя вместе с ID сессии
type SelectionHandler func(sessionID string, candidate *domain.LocationCandidate)

// RegistryConfig - параметры реестра сессий
type RegistryConfig struct {
	Controller  ControllerConfig
	IdleTimeout time.Duration
}

// Registry хранит сессии поиска для HTTP API; простаивающие сессии закрываются свипером
type Registry struct {
	geocoder repository.GeocoderRepository
	cfg      RegistryConfig
	clock    Clock
	onSelect SelectionHandler
	logger   *zap.Logger
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(
	geocoder repository.GeocoderRepository,
	cfg RegistryConfig,
	onSelect SelectionHandler,
	logger *zap.Logger,
) *Registry {
	if onSelect == nil {
		onSelect = func(string, *domain.LocationCandidate) {}
	}
	return &Registry{
		geocoder: geocoder,
		cfg:      cfg,
		clock:    RealClock(),
		onSelect: onSelect,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// WithClock подменяет часы дебаунса для новых сессий
func (r *Registry) WithClock(clock Clock) *Registry {
	r.clock = clock
	return r
}

// Create открывает новую сессию
func (r *Registry) Create() *Session {
	id := uuid.New().String()

	s := NewSession(SessionOptions{
		ID:       id,
		Geocoder: r.geocoder,
		Config:   r.cfg.Controller,
		Clock:    r.clock,
		OnSelectLocation: func(c *domain.LocationCandidate) {
			r.onSelect(id, c)
		},
		Logger: r.logger,
	})

	r.mu.Lock()
	r.sessions[id] = s
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	r.logger.Debug("Search session created", zap.String("session_id", id))

	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrSessionNotFound.WithDetails(map[string]interface{}{
			"session_id": id,
		})
	}
	return s, nil
}

// Close закрывает и удаляет сессию
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	count := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return apperrors.ErrSessionNotFound.WithDetails(map[string]interface{}{
			"session_id": id,
		})
	}

	s.Close()
	metrics.ActiveSessions.Set(float64(count))
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll закрывает все сессии при остановке сервиса
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	metrics.ActiveSessions.Set(0)

	r.logger.Info("All search sessions closed", zap.Int("count", len(sessions)))
}

// Sweep закрывает сессии, простаивающие дольше IdleTimeout
func (r *Registry) Sweep(now time.Time) int {
	if r.cfg.IdleTimeout <= 0 {
		return 0
	}

	var expired []*Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if now.Sub(s.IdleSince()) > r.cfg.IdleTimeout {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	metrics.ActiveSessions.Set(float64(count))

	if len(expired) > 0 {
		r.logger.Info("Expired idle search sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// StartSweeper запускает периодическую очистку до отмены ctx
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				r.Sweep(now)
			}
		}
	}()
}
