package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/blueprints-go/internal/adapters/metrics"
	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/domain/shared"
)

const (
	defaultBaseURL     = "https://adventofcode.com"
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second
	userAgent          = "github.com/andrescamacho/blueprints-go"
	maxErrorBody       = 200
)

// Config holds the input client settings
type Config struct {
	BaseURL         string
	Session         string
	CacheDir        string
	Timeout         time.Duration
	RequestsPerSec  float64
	Burst           int
	MaxRetries      int
	BackoffBase     time.Duration
	CircuitFailures int
	CircuitTimeout  time.Duration
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		BaseURL:         defaultBaseURL,
		Timeout:         defaultTimeout,
		RequestsPerSec:  1,
		Burst:           1,
		MaxRetries:      defaultMaxRetries,
		BackoffBase:     defaultBackoffBase,
		CircuitFailures: 5,
		CircuitTimeout:  time.Minute,
	}
}

// Client downloads puzzle inputs with rate limiting, retries and a file cache
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	cache       *Cache
	baseURL     string
	session     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewClient creates an input client. A nil clock uses the real clock.
func NewClient(cfg Config, clock shared.Clock) *Client {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = defaults.RequestsPerSec
	}
	if cfg.Burst < 1 {
		cfg.Burst = defaults.Burst
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.CircuitFailures < 1 {
		cfg.CircuitFailures = defaults.CircuitFailures
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		breaker:     NewCircuitBreaker(cfg.CircuitFailures, cfg.CircuitTimeout, clock),
		cache:       NewCache(cfg.CacheDir),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		session:     cfg.Session,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		clock:       clock,
	}
}

// Breaker exposes the circuit breaker for status reporting
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// FetchInput returns the puzzle input for one day, from the cache when present
func (c *Client) FetchInput(ctx context.Context, year, day int) (string, error) {
	logger := common.LoggerFromContext(ctx)

	if year < 2015 || day < 1 || day > 25 {
		return "", &ErrInvalidPuzzle{Year: year, Day: day}
	}

	cached, ok, err := c.cache.Get(year, day)
	if err != nil {
		return "", err
	}
	if c.cache.Enabled() {
		metrics.RecordCacheLookup(ok)
	}
	if ok {
		logger.Log("DEBUG", "[Input] Using cached input", map[string]interface{}{
			"year": year,
			"day":  day,
			"path": c.cache.Path(year, day),
		})
		return cached, nil
	}

	if c.session == "" {
		return "", ErrMissingSession
	}

	var body string
	path := fmt.Sprintf("/%d/day/%d/input", year, day)
	err = c.breaker.Call(func() error {
		var reqErr error
		body, reqErr = c.request(ctx, path)
		return reqErr
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch input for %d day %d: %w", year, day, err)
	}

	if err := c.cache.Put(year, day, body); err != nil {
		logger.Log("WARN", "[Input] Failed to cache input", map[string]interface{}{
			"year":  year,
			"day":   day,
			"error": err,
		})
	}

	logger.Log("INFO", "[Input] Fetched puzzle input", map[string]interface{}{
		"year":  year,
		"day":   day,
		"bytes": len(body),
	})
	return body, nil
}

// addJitter returns a duration between 50% and 150% of d
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

// request performs a GET with rate limiting and exponential backoff retries
func (c *Client) request(ctx context.Context, path string) (string, error) {
	logger := common.LoggerFromContext(ctx)
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}
		metrics.RecordRateLimitWait(time.Since(waitStart).Seconds())

		body, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}

		var retryable *retryableError
		if !errors.As(err, &retryable) {
			return "", err
		}
		lastErr = err

		if attempt >= c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retryable.retryAfter > 0 {
			delay = retryable.retryAfter
		}
		metrics.RecordInputRetry(retryable.reason)
		logger.Log("WARN", "[Input] Retrying request", map[string]interface{}{
			"attempt": attempt + 1,
			"reason":  retryable.message,
			"delay":   delay.String(),
		})
		c.clock.Sleep(delay)
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do performs one HTTP round trip and classifies the outcome
func (c *Client) do(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.AddCookie(&http.Cookie{Name: "session", Value: c.session})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		metrics.RecordInputRequest(0, time.Since(start).Seconds())
		return "", &retryableError{
			message: fmt.Errorf("network error: %w", err).Error(),
			reason:  "network",
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	metrics.RecordInputRequest(resp.StatusCode, time.Since(start).Seconds())
	if err != nil {
		return "", &retryableError{
			message: fmt.Errorf("failed to read response: %w", err).Error(),
			reason:  "network",
		}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return "", &retryableError{
			message:    "rate limited (429)",
			reason:     "rate_limited",
			retryAfter: retryAfter,
		}
	case resp.StatusCode >= 500:
		return "", &retryableError{
			message: fmt.Sprintf("server error (%d)", resp.StatusCode),
			reason:  "server_error",
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", &ErrRequestFailed{StatusCode: resp.StatusCode, Body: clip(string(respBody))}
	}

	return string(respBody), nil
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
