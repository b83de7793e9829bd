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

func newTestSession(t *testing.T, geocoder *MockGeocoderRepository, onSelect search.SelectLocationFunc) (*search.Session, *manualClock) {
	t.Helper()

	clock := &manualClock{}
	s := search.NewSession(search.SessionOptions{
		ID:               "test-session",
		Geocoder:         geocoder,
		Clock:            clock,
		OnSelectLocation: onSelect,
		Logger:           zap.NewNop(),
	})
	t.Cleanup(s.Close)

	return s, clock
}

func snapshot(t *testing.T, s *search.Session) search.SessionState {
	t.Helper()
	state, err := s.Snapshot()
	require.NoError(t, err)
	return state
}

func TestSession_SearchAndSelect(t *testing.T) {
	geocoder := &MockGeocoderRepository{}
	geocoder.On("Search", mock.Anything, "Par").Return([]domain.LocationCandidate{
		candidate("paris", "Paris, France", "city"),
		candidate("parma", "Parma, Italy", "city"),
	}, nil).Once()

	var mu sync.Mutex
	var selected []*domain.LocationCandidate
	s, clock := newTestSession(t, geocoder, func(c *domain.LocationCandidate) {
		mu.Lock()
		selected = append(selected, c)
		mu.Unlock()
	})

	require.NoError(t, s.Open())
	require.NoError(t, s.Input("Par"))

	state := snapshot(t, s)
	assert.True(t, state.Pending)
	assert.Equal(t, search.ListLoading, state.List.State)
	assert.Equal(t, search.PlaceholderLabel, state.TriggerLabel)

	clock.Advance(search.DefaultDebounceDelay)

	require.Eventually(t, func() bool {
		return !snapshot(t, s).Pending
	}, time.Second, 5*time.Millisecond)

	state = snapshot(t, s)
	require.Len(t, state.List.Groups, 1)
	assert.Equal(t, "City", state.List.Groups[0].Heading)
	assert.Len(t, state.List.Groups[0].Items, 2)

	require.NoError(t, s.Select("parma"))

	state = snapshot(t, s)
	assert.False(t, state.Open)
	assert.Equal(t, "Parma, Italy (city)", state.TriggerLabel)
	require.NotNil(t, state.Selected)
	assert.Equal(t, "parma", state.Selected.ID)

	mu.Lock()
	require.Len(t, selected, 1)
	assert.Equal(t, "parma", selected[0].ID)
	mu.Unlock()

	geocoder.AssertExpectations(t)
}

func TestSession_DebounceCancelsOlderTimers(t *testing.T) {
	geocoder := &MockGeocoderRepository{}
	geocoder.On("Search", mock.Anything, "Paris").
		Return([]domain.LocationCandidate{candidate("1", "Paris, France", "city")}, nil).Once()

	s, clock := newTestSession(t, geocoder, nil)
	require.NoError(t, s.Open())

	for _, text := range []string{"Par", "Pari", "Paris"} {
		require.NoError(t, s.Input(text))
		clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 1, clock.Active())

	clock.Advance(search.DefaultDebounceDelay)

	require.Eventually(t, func() bool {
		return !snapshot(t, s).Pending
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "Paris", snapshot(t, s).QueryText)
	geocoder.AssertNumberOfCalls(t, "Search", 1)
}

func TestSession_ShortQueryStopsTimer(t *testing.T) {
	geocoder := &MockGeocoderRepository{}
	s, clock := newTestSession(t, geocoder, nil)
	require.NoError(t, s.Open())

	require.NoError(t, s.Input("Par"))
	require.NoError(t, s.Input("xy"))
	assert.Equal(t, 0, clock.Active())

	clock.Advance(time.Second)

	state := snapshot(t, s)
	assert.False(t, state.Pending)
	assert.Equal(t, search.ListEmpty, state.List.State)
	assert.Equal(t, search.EmptyMessage, state.List.Message)
	geocoder.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSession_InputRequiresOpenList(t *testing.T) {
	s, _ := newTestSession(t, &MockGeocoderRepository{}, nil)

	assert.ErrorIs(t, s.Input("Paris"), apperrors.ErrListClosed)

	require.NoError(t, s.Open())
	require.NoError(t, s.Input("Paris"))
	require.NoError(t, s.Dismiss())

	state := snapshot(t, s)
	assert.False(t, state.Open)
	assert.Equal(t, "Paris", state.QueryText)
}

func TestSession_Close(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	geocoder := &MockGeocoderRepository{}
	geocoder.On("Search", mock.Anything, "Paris").
		Run(func(args mock.Arguments) {
			close(started)
			ctx := args.Get(0).(context.Context)
			select {
			case <-ctx.Done():
			case <-release:
			}
		}).
		Return([]domain.LocationCandidate{candidate("1", "Paris, France", "city")}, nil)

	s, clock := newTestSession(t, geocoder, nil)
	require.NoError(t, s.Open())
	require.NoError(t, s.Input("Paris"))
	clock.Advance(search.DefaultDebounceDelay)
	<-started

	s.Close()
	close(release)

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("session did not stop")
	}

	_, err := s.Snapshot()
	assert.ErrorIs(t, err, search.ErrSessionClosed)
	assert.ErrorIs(t, s.Input("Paris, France"), search.ErrSessionClosed)

	// повторный Close безопасен
	s.Close()
}

func TestSession_ClearNotifiesHost(t *testing.T) {
	geocoder := &MockGeocoderRepository{}
	geocoder.On("Search", mock.Anything, "Par").
		Return([]domain.LocationCandidate{candidate("paris", "Paris, France", "city")}, nil)

	var mu sync.Mutex
	var calls []*domain.LocationCandidate
	s, clock := newTestSession(t, geocoder, func(c *domain.LocationCandidate) {
		mu.Lock()
		calls = append(calls, c)
		mu.Unlock()
	})

	require.NoError(t, s.Open())
	require.NoError(t, s.Input("Par"))
	clock.Advance(search.DefaultDebounceDelay)
	require.Eventually(t, func() bool {
		return !snapshot(t, s).Pending
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Select("paris"))
	require.NoError(t, s.Clear())

	state := snapshot(t, s)
	assert.Nil(t, state.Selected)
	assert.Equal(t, search.PlaceholderLabel, state.TriggerLabel)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 2)
	assert.Nil(t, calls[1])
}

func TestSession_HostCallbackCanReenterSession(t *testing.T) {
	geocoder := &MockGeocoderRepository{}
	geocoder.On("Search", mock.Anything, "Par").
		Return([]domain.LocationCandidate{candidate("paris", "Paris, France", "city")}, nil)

	var s *search.Session
	seen := make(chan search.SessionState, 2)
	s, clock := newTestSession(t, geocoder, func(c *domain.LocationCandidate) {
		state, err := s.Snapshot()
		if err == nil {
			seen <- state
		}
	})

	require.NoError(t, s.Open())
	require.NoError(t, s.Input("Par"))
	clock.Advance(search.DefaultDebounceDelay)
	require.Eventually(t, func() bool {
		return !snapshot(t, s).Pending
	}, time.Second, 5*time.Millisecond)

	selectDone := make(chan error, 1)
	go func() { selectDone <- s.Select("paris") }()

	select {
	case err := <-selectDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Select blocked while the host callback read the session")
	}

	// колбэк видит уже примененный выбор
	state := <-seen
	require.NotNil(t, state.Selected)
	assert.Equal(t, "paris", state.Selected.ID)
	assert.False(t, state.Open)

	closeDone := make(chan struct{})
	go func() {
		s.Close()
		close(closeDone)
	}()
	select {
	case <-closeDone:
	case <-time.After(time.Second):
		t.Fatal("Close blocked after a reentrant callback")
	}
}
