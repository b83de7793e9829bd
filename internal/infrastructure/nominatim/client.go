package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/address-search/internal/config"
	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	"github.com/address-search/internal/pkg/validator"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limit      int
	language   string
	// timeout ограничивает весь вызов: ожидание лимитера и HTTP обмен
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewNominatimClient создает клиент для Nominatim /search
func NewNominatimClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limit:     cfg.Limit,
		language:  cfg.Language,
		timeout:   cfg.RequestTimeout,
		limiter:   limiter,
		logger:    logger,
	}
}

// Search выполняет прямое геокодирование
func (c *client) Search(ctx context.Context, query string) ([]domain.LocationCandidate, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	reqURL := c.baseURL + "/search?" + c.queryParams(query).Encode()

	c.logger.Debug("Calling geocoder search",
		zap.String("url", reqURL),
		zap.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Geocoder request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("Geocoder returned error status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		c.logger.Warn("Failed to decode geocoder response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: body is not an array", domain.ErrMalformedPayload)
	}

	candidates, err := decodeCandidates(items)
	if err != nil {
		c.logger.Warn("Geocoder response rejected by schema", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Geocoder search successful",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Duration("duration", time.Since(start)))

	return candidates, nil
}

func (c *client) queryParams(query string) url.Values {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", query)
	params.Set("addressdetails", "1")
	params.Set("layer", "address")
	params.Set("dedupe", "1")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("accept-language", c.language)
	return params
}

// decodeCandidates разбирает и валидирует все элементы; один плохой элемент отклоняет весь ответ
func decodeCandidates(items []json.RawMessage) ([]domain.LocationCandidate, error) {
	candidates := make([]domain.LocationCandidate, 0, len(items))
	for i, raw := range items {
		var p place
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: candidate %d: %v", domain.ErrMalformedPayload, i, err)
		}

		candidate := p.toCandidate(raw)
		if err := validator.Validate(schemaOf(candidate)); err != nil {
			fields := validator.FieldErrors(err)
			return nil, fmt.Errorf("%w: candidate %d: invalid fields %s",
				domain.ErrMalformedPayload, i, strings.Join(fields, ","))
		}

		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
