package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/address-search/internal/domain"
	apperrors "github.com/address-search/internal/pkg/errors"
	"github.com/address-search/internal/usecase"
	"github.com/address-search/internal/usecase/dto"
	"github.com/address-search/internal/usecase/search"
)

var fastConfig = search.RegistryConfig{
	Controller: search.ControllerConfig{DebounceDelay: 5 * time.Millisecond},
}

func waitSettled(t *testing.T, uc *usecase.SessionUseCase, id string) *dto.SessionResponse {
	t.Helper()

	var state *dto.SessionResponse
	require.Eventually(t, func() bool {
		var err error
		state, err = uc.State(id)
		return err == nil && !state.Pending
	}, time.Second, 5*time.Millisecond)
	return state
}

func TestSessionUseCase_Flow(t *testing.T) {
	geocoder := &MockGeocoderRepository{}
	geocoder.On("Search", mock.Anything, "Par").Return([]domain.LocationCandidate{
		candidate("paris", "Paris, France", "city"),
		candidate("parma", "Parma, Italy", "city"),
	}, nil)

	published := make(chan struct{}, 2)
	notify := func(mock.Arguments) { published <- struct{}{} }

	streamRepo := &MockStreamRepository{}
	streamRepo.On("PublishToStream", mock.Anything, "stream:test", mock.MatchedBy(func(e *domain.SelectionEvent) bool {
		return e.Candidate != nil && e.Candidate.ID == "paris"
	})).Run(notify).Return(nil).Once()
	streamRepo.On("PublishToStream", mock.Anything, "stream:test", mock.MatchedBy(func(e *domain.SelectionEvent) bool {
		return e.Cleared
	})).Run(notify).Return(nil).Once()

	uc := usecase.NewSessionUseCase(geocoder, fastConfig, streamRepo, "stream:test", zap.NewNop())
	defer uc.Shutdown()

	created := uc.Create()
	require.NotEmpty(t, created.ID)

	state, err := uc.Open(created.ID)
	require.NoError(t, err)
	assert.True(t, state.Open)
	assert.Equal(t, search.PlaceholderLabel, state.TriggerLabel)

	state, err = uc.Input(created.ID, dto.SessionInputRequest{Text: "Par"})
	require.NoError(t, err)
	assert.Equal(t, "Par", state.QueryText)

	state = waitSettled(t, uc, created.ID)
	require.Len(t, state.List.Groups, 1)
	assert.Equal(t, "City", state.List.Groups[0].Heading)

	state, err = uc.Select(created.ID, dto.SelectCandidateRequest{CandidateID: "paris"})
	require.NoError(t, err)
	assert.False(t, state.Open)
	assert.Equal(t, "Paris, France (city)", state.TriggerLabel)

	state, err = uc.ClearSelection(created.ID)
	require.NoError(t, err)
	assert.Nil(t, state.Selected)

	for i := 0; i < 2; i++ {
		select {
		case <-published:
		case <-time.After(time.Second):
			t.Fatal("selection event was not published")
		}
	}
	streamRepo.AssertExpectations(t)
}

func TestSessionUseCase_Errors(t *testing.T) {
	uc := usecase.NewSessionUseCase(&MockGeocoderRepository{}, fastConfig, nil, "", zap.NewNop())
	defer uc.Shutdown()

	_, err := uc.State("missing")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeSessionNotFound, appErr.Code)

	created := uc.Create()

	_, err = uc.Input(created.ID, dto.SessionInputRequest{Text: "Paris"})
	assert.ErrorIs(t, err, apperrors.ErrListClosed)

	_, err = uc.Open(created.ID)
	require.NoError(t, err)
	_, err = uc.Select(created.ID, dto.SelectCandidateRequest{CandidateID: "nope"})
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeCandidateNotFound, appErr.Code)

	require.NoError(t, uc.Close(created.ID))
	_, err = uc.State(created.ID)
	assert.Error(t, err)
	assert.Error(t, uc.Close(created.ID))
}
