package search

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	"github.com/address-search/internal/pkg/metrics"
	"go.uber.org/zap"
)

const (
	DefaultDebounceDelay  = 300 * time.Millisecond
	DefaultMinQueryLength = 2
)

// ControllerConfig - параметры контроллера запросов
type ControllerConfig struct {
	DebounceDelay time.Duration
	// MinQueryLength - запросы длиной <= MinQueryLength символов не уходят в сеть
	MinQueryLength int
}

// ScheduledLookup - отложенный поиск, который нужно запустить через Delay
type ScheduledLookup struct {
	Token uint64
	Query string
	Delay time.Duration
}

// Lookup - выпущенный запрос к геокодеру с порядковым номером
type Lookup struct {
	Seq   uint64
	Query string
}

// LookupResult - результат запроса; Err != nil означает сетевую ошибку или битый ответ
type LookupResult struct {
	Seq        uint64
	Query      string
	Candidates []domain.LocationCandidate
	Err        error
	Duration   time.Duration
}

// Controller владеет QueryText, Pending и ResultSet сессии.
// Методы, кроме Execute, вызываются из одного логического потока
// (цикл bubbletea или горутина Session); Execute безопасен для любой горутины.
type Controller struct {
	session  *domain.SearchSession
	geocoder repository.GeocoderRepository
	logger   *zap.Logger
	cfg      ControllerConfig

	token     uint64 // последний выданный токен дебаунса
	scheduled bool   // токен token еще не сработал и не отменен
	issued    uint64 // последний выданный порядковый номер запроса
	applied   uint64 // максимальный номер, результат которого уже применен
	closed    bool
}

func NewController(
	session *domain.SearchSession,
	geocoder repository.GeocoderRepository,
	cfg ControllerConfig,
	logger *zap.Logger,
) *Controller {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounceDelay
	}
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}

	return &Controller{
		session:  session,
		geocoder: geocoder,
		logger:   logger,
		cfg:      cfg,
	}
}

// InputChanged фиксирует текст и возвращает отложенный поиск, либо nil для короткого запроса
func (c *Controller) InputChanged(text string) *ScheduledLookup {
	if c.closed {
		return nil
	}

	c.session.QueryText = text

	// Любое изменение отменяет предыдущий несработавший таймер
	c.token++

	if utf8.RuneCountInString(text) <= c.cfg.MinQueryLength {
		c.scheduled = false
		// Запросы, уже ушедшие в сеть, больше не могут перезаписать пустой результат
		c.applied = c.issued
		c.session.ResultSet = domain.ResultSet{}
		c.session.Pending = false
		metrics.ShortQueriesTotal.Inc()
		return nil
	}

	c.scheduled = true
	c.session.Pending = true

	return &ScheduledLookup{
		Token: c.token,
		Query: text,
		Delay: c.cfg.DebounceDelay,
	}
}

// Fire вызывается по истечении таймера; false, если токен устарел или контроллер закрыт
func (c *Controller) Fire(token uint64, query string) (Lookup, bool) {
	if c.closed || !c.scheduled || token != c.token {
		return Lookup{}, false
	}

	c.scheduled = false
	c.issued++
	metrics.LookupsTotal.Inc()

	c.logger.Debug("Lookup issued",
		zap.Uint64("seq", c.issued),
		zap.String("query", query))

	return Lookup{Seq: c.issued, Query: query}, true
}

// Execute выполняет запрос к геокодеру. Состояние сессии не трогает.
func (c *Controller) Execute(ctx context.Context, lookup Lookup) LookupResult {
	start := time.Now()
	candidates, err := c.geocoder.Search(ctx, lookup.Query)
	duration := time.Since(start)

	metrics.LookupDurationMs.Observe(float64(duration.Milliseconds()))

	return LookupResult{
		Seq:        lookup.Seq,
		Query:      lookup.Query,
		Candidates: candidates,
		Err:        err,
		Duration:   duration,
	}
}

// Apply применяет результат, если он не устарел. Возвращает true, если состояние изменилось.
func (c *Controller) Apply(result LookupResult) bool {
	if c.closed {
		return false
	}

	if result.Seq <= c.applied {
		metrics.StaleResponsesTotal.Inc()
		c.logger.Debug("Stale lookup discarded",
			zap.Uint64("seq", result.Seq),
			zap.Uint64("applied", c.applied),
			zap.String("query", result.Query))
		return false
	}

	c.applied = result.Seq

	if result.Err != nil {
		metrics.LookupFailuresTotal.WithLabelValues(failureReason(result.Err)).Inc()
		c.logger.Warn("Lookup failed, showing no results",
			zap.Uint64("seq", result.Seq),
			zap.String("query", result.Query),
			zap.Error(result.Err))
		c.session.ResultSet = domain.ResultSet{}
	} else {
		c.session.ResultSet = GroupByCategory(result.Candidates)
	}

	// Pending остается, пока ждем более новый таймер или запрос
	c.session.Pending = c.scheduled || c.applied < c.issued

	c.logger.Debug("Lookup applied",
		zap.Uint64("seq", result.Seq),
		zap.String("query", result.Query),
		zap.Int("categories", c.session.ResultSet.Len()),
		zap.Int("candidates", c.session.ResultSet.Total()))

	return true
}

// Close - размонтирование виджета: таймер отменяется, поздние ответы игнорируются
func (c *Controller) Close() {
	c.closed = true
	c.scheduled = false
	c.token++
}

func (c *Controller) Closed() bool {
	return c.closed
}

func (c *Controller) Config() ControllerConfig {
	return c.cfg
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedPayload):
		return metrics.ReasonMalformed
	case errors.Is(err, domain.ErrUpstreamStatus):
		return metrics.ReasonStatus
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.ReasonTimeout
	default:
		return metrics.ReasonNetwork
	}
}
