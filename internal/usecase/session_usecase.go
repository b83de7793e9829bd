package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	apperrors "github.com/address-search/internal/pkg/errors"
	"github.com/address-search/internal/usecase/dto"
	"github.com/address-search/internal/usecase/search"
)

const publishTimeout = 5 * time.Second

// SessionUseCase - сессии поиска с дебаунсом для HTTP API.
// Выбор пользователя публикуется в Redis Stream, если он подключен.
type SessionUseCase struct {
	registry   *search.Registry
	streamRepo repository.StreamRepository
	stream     string
	logger     *zap.Logger
}

// NewSessionUseCase - создание нового SessionUseCase; streamRepo может быть nil
func NewSessionUseCase(
	geocoder repository.GeocoderRepository,
	cfg search.RegistryConfig,
	streamRepo repository.StreamRepository,
	stream string,
	logger *zap.Logger,
) *SessionUseCase {
	if stream == "" {
		stream = domain.StreamLocationSelected
	}

	uc := &SessionUseCase{
		streamRepo: streamRepo,
		stream:     stream,
		logger:     logger,
	}
	uc.registry = search.NewRegistry(geocoder, cfg, uc.publishSelection, logger)

	return uc
}

// Registry - реестр сессий (для тестов и свипера)
func (uc *SessionUseCase) Registry() *search.Registry {
	return uc.registry
}

// Create - новая сессия поиска
func (uc *SessionUseCase) Create() *dto.SessionCreatedResponse {
	s := uc.registry.Create()
	return &dto.SessionCreatedResponse{ID: s.ID()}
}

// State - снимок состояния сессии
func (uc *SessionUseCase) State(id string) (*dto.SessionResponse, error) {
	return uc.apply(id, nil)
}

// Input - новый текст в поле ввода
func (uc *SessionUseCase) Input(id string, req dto.SessionInputRequest) (*dto.SessionResponse, error) {
	return uc.apply(id, func(s *search.Session) error {
		return s.Input(req.Text)
	})
}

func (uc *SessionUseCase) Open(id string) (*dto.SessionResponse, error) {
	return uc.apply(id, (*search.Session).Open)
}

func (uc *SessionUseCase) Dismiss(id string) (*dto.SessionResponse, error) {
	return uc.apply(id, (*search.Session).Dismiss)
}

// Select - выбор кандидата из текущих результатов
func (uc *SessionUseCase) Select(id string, req dto.SelectCandidateRequest) (*dto.SessionResponse, error) {
	return uc.apply(id, func(s *search.Session) error {
		return s.Select(req.CandidateID)
	})
}

// ClearSelection - сброс выбора
func (uc *SessionUseCase) ClearSelection(id string) (*dto.SessionResponse, error) {
	return uc.apply(id, (*search.Session).Clear)
}

// Close - удаление сессии
func (uc *SessionUseCase) Close(id string) error {
	return uc.registry.Close(id)
}

// StartSweeper запускает очистку простаивающих сессий
func (uc *SessionUseCase) StartSweeper(ctx context.Context, interval time.Duration) {
	uc.registry.StartSweeper(ctx, interval)
}

// Shutdown закрывает все сессии
func (uc *SessionUseCase) Shutdown() {
	uc.registry.CloseAll()
}

// apply выполняет операцию над сессией и возвращает ее новое состояние
func (uc *SessionUseCase) apply(id string, op func(*search.Session) error) (*dto.SessionResponse, error) {
	s, err := uc.registry.Get(id)
	if err != nil {
		return nil, err
	}

	if op != nil {
		if err := op(s); err != nil {
			return nil, sessionError(id, err)
		}
	}

	state, err := s.Snapshot()
	if err != nil {
		return nil, sessionError(id, err)
	}
	return &state, nil
}

func sessionError(id string, err error) error {
	// сессия закрылась между Get и операцией
	if errors.Is(err, search.ErrSessionClosed) {
		return apperrors.ErrSessionNotFound.WithDetails(map[string]interface{}{
			"session_id": id,
		})
	}
	return err
}

// publishSelection вызывается из цикла сессии, поэтому публикация уходит в отдельную горутину
func (uc *SessionUseCase) publishSelection(sessionID string, candidate *domain.LocationCandidate) {
	event := domain.NewSelectionEvent(sessionID, candidate)

	if uc.streamRepo == nil {
		uc.logger.Info("Location selection",
			zap.String("session_id", sessionID),
			zap.String("kind", event.Kind()),
			zap.String("event_id", event.EventID.String()))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := uc.streamRepo.PublishToStream(ctx, uc.stream, event); err != nil {
			uc.logger.Error("Failed to publish selection event",
				zap.String("session_id", sessionID),
				zap.String("event_id", event.EventID.String()),
				zap.Error(err))
		}
	}()
}
