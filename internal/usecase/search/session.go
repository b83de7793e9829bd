package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	apperrors "github.com/address-search/internal/pkg/errors"
	"go.uber.org/zap"
)

// ErrSessionClosed возвращается операциями над закрытой сессией
var ErrSessionClosed = errors.New("search session closed")

// SessionState - снимок сессии для отображения хостом
type SessionState struct {
	ID           string                    `json:"id"`
	QueryText    string                    `json:"query"`
	Pending      bool                      `json:"pending"`
	Open         bool                      `json:"open"`
	TriggerLabel string                    `json:"trigger_label"`
	Selected     *domain.LocationCandidate `json:"selected,omitempty"`
	List         ListView                  `json:"list"`
	Results      domain.ResultSet          `json:"results"`
}

// SessionOptions - зависимости сессии
type SessionOptions struct {
	ID               string
	Geocoder         repository.GeocoderRepository
	Config           ControllerConfig
	Clock            Clock
	OnSelectLocation SelectLocationFunc
	Logger           *zap.Logger
}

// Session запускает Controller и Presenter в одной горутине.
// Нажатия, срабатывания таймера и ответы геокодера приходят событиями в events
// и применяются строго по очереди, поэтому состояние сессии не требует блокировок.
type Session struct {
	id        string
	ctrl      *Controller
	presenter *Presenter
	session   *domain.SearchSession
	clock     Clock
	logger    *zap.Logger

	events chan func()
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	// timer и selections трогаются только из горутины цикла
	timer      Timer
	selections []*domain.LocationCandidate
	onSelect   SelectLocationFunc

	closeOnce  sync.Once
	mu         sync.Mutex
	lastActive time.Time
}

func NewSession(opts SessionOptions) *Session {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	logger := opts.Logger.With(zap.String("session_id", opts.ID))
	state := domain.NewSearchSession()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:         opts.ID,
		ctrl:       NewController(state, opts.Geocoder, opts.Config, logger),
		session:    state,
		clock:      opts.Clock,
		logger:     logger,
		onSelect:   opts.OnSelectLocation,
		events:     make(chan func()),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		lastActive: time.Now(),
	}
	// колбэк хоста копится в цикле и вызывается в call уже вне цикла,
	// поэтому хост может обращаться к сессии из OnSelectLocation
	s.presenter = NewPresenter(state, func(c *domain.LocationCandidate) {
		s.selections = append(s.selections, c)
	}, logger)

	go s.loop()

	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) loop() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.events:
			fn()
		}
	}
}

// post ставит событие в очередь цикла; false, если сессия закрыта
func (s *Session) post(fn func()) bool {
	select {
	case <-s.done:
		return false
	case s.events <- fn:
		return true
	}
}

type callResult struct {
	err        error
	selections []*domain.LocationCandidate
}

// call выполняет fn в цикле, ждет завершения и затем уведомляет хоста
// о выборах, сделанных внутри fn
func (s *Session) call(fn func() error) error {
	s.touch()

	result := make(chan callResult, 1)
	posted := s.post(func() {
		err := fn()
		selections := s.selections
		s.selections = nil
		result <- callResult{err: err, selections: selections}
	})
	if !posted {
		return ErrSessionClosed
	}

	select {
	case r := <-result:
		s.notify(r.selections)
		return r.err
	case <-s.done:
		// fn мог успеть отработать до закрытия
		select {
		case r := <-result:
			s.notify(r.selections)
			return r.err
		default:
			return ErrSessionClosed
		}
	}
}

func (s *Session) notify(selections []*domain.LocationCandidate) {
	if s.onSelect == nil {
		return
	}
	for _, c := range selections {
		s.onSelect(c)
	}
}

// Input - onInputChange. Работает только при открытом списке.
func (s *Session) Input(text string) error {
	return s.call(func() error {
		if !s.presenter.IsOpen() {
			return apperrors.ErrListClosed
		}
		s.inputChanged(text)
		return nil
	})
}

func (s *Session) inputChanged(text string) {
	scheduled := s.ctrl.InputChanged(text)

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if scheduled == nil {
		return
	}

	lookup := *scheduled
	s.timer = s.clock.AfterFunc(lookup.Delay, func() {
		s.post(func() { s.fire(lookup) })
	})
}

func (s *Session) fire(scheduled ScheduledLookup) {
	lookup, ok := s.ctrl.Fire(scheduled.Token, scheduled.Query)
	if !ok {
		return
	}
	s.timer = nil

	go func() {
		result := s.ctrl.Execute(s.ctx, lookup)
		s.post(func() { s.ctrl.Apply(result) })
	}()
}

func (s *Session) Open() error {
	return s.call(func() error {
		s.presenter.Open()
		return nil
	})
}

func (s *Session) Dismiss() error {
	return s.call(func() error {
		s.presenter.Dismiss()
		return nil
	})
}

// Select выбирает кандидата по ID; колбэк хоста вызывается до возврата, вне цикла сессии
func (s *Session) Select(candidateID string) error {
	return s.call(func() error {
		return s.presenter.Select(candidateID)
	})
}

// Clear сбрасывает выбор и вызывает колбэк хоста с nil
func (s *Session) Clear() error {
	return s.call(func() error {
		s.presenter.Clear()
		return nil
	})
}

// Snapshot возвращает копию состояния, снятую внутри цикла
func (s *Session) Snapshot() (SessionState, error) {
	var state SessionState
	err := s.call(func() error {
		state = SessionState{
			ID:           s.id,
			QueryText:    s.session.QueryText,
			Pending:      s.session.Pending,
			Open:         s.session.Open,
			TriggerLabel: s.presenter.TriggerLabel(),
			Selected:     s.presenter.Selected(),
			List:         s.presenter.View(),
			Results:      s.session.ResultSet,
		}
		return nil
	})
	return state, err
}

// Close размонтирует виджет: таймер отменяется, запросы в полете отменяются,
// их поздние ответы отбрасываются
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		// последнее событие цикла
		s.post(func() {
			s.ctrl.Close()
			if s.timer != nil {
				s.timer.Stop()
				s.timer = nil
			}
		})
		close(s.done)
		s.cancel()
		s.logger.Debug("Search session closed")
	})
}

// Done закрывается после Close
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IdleSince - время последнего обращения хоста
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}
