package search_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/address-search/internal/domain"
	apperrors "github.com/address-search/internal/pkg/errors"
	"github.com/address-search/internal/usecase/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistry_Lifecycle(t *testing.T) {
	registry := search.NewRegistry(&MockGeocoderRepository{}, search.RegistryConfig{}, nil, zap.NewNop())
	defer registry.CloseAll()

	s := registry.Create()
	require.NotEmpty(t, s.ID())
	assert.Equal(t, 1, registry.Len())

	got, err := registry.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, registry.Close(s.ID()))
	assert.Equal(t, 0, registry.Len())

	_, err = registry.Get(s.ID())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrSessionNotFound.Code, appErr.Code)

	assert.Error(t, registry.Close(s.ID()))
}

func TestRegistry_SelectionHandler(t *testing.T) {
	geocoder := &MockGeocoderRepository{}
	geocoder.On("Search", mock.Anything, "Par").
		Return([]domain.LocationCandidate{candidate("paris", "Paris, France", "city")}, nil)

	var mu sync.Mutex
	var gotSession string
	var gotCandidate *domain.LocationCandidate

	clock := &manualClock{}
	registry := search.NewRegistry(geocoder, search.RegistryConfig{}, func(sessionID string, c *domain.LocationCandidate) {
		mu.Lock()
		defer mu.Unlock()
		gotSession = sessionID
		gotCandidate = c
	}, zap.NewNop()).WithClock(clock)
	defer registry.CloseAll()

	s := registry.Create()
	require.NoError(t, s.Open())
	require.NoError(t, s.Input("Par"))
	clock.Advance(search.DefaultDebounceDelay)

	require.Eventually(t, func() bool {
		state, err := s.Snapshot()
		return err == nil && !state.Pending
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Select("paris"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, s.ID(), gotSession)
	require.NotNil(t, gotCandidate)
	assert.Equal(t, "paris", gotCandidate.ID)
}

func TestRegistry_Sweep(t *testing.T) {
	registry := search.NewRegistry(&MockGeocoderRepository{}, search.RegistryConfig{
		IdleTimeout: time.Minute,
	}, nil, zap.NewNop())
	defer registry.CloseAll()

	s := registry.Create()

	assert.Equal(t, 0, registry.Sweep(time.Now()))
	assert.Equal(t, 1, registry.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, registry.Len())

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("expired session was not closed")
	}
}

func TestRegistry_StartSweeper(t *testing.T) {
	registry := search.NewRegistry(&MockGeocoderRepository{}, search.RegistryConfig{
		IdleTimeout: time.Nanosecond,
	}, nil, zap.NewNop())
	defer registry.CloseAll()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry.Create()
	registry.StartSweeper(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return registry.Len() == 0
	}, time.Second, 5*time.Millisecond)
}
