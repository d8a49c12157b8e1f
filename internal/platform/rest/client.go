// Package rest is the JSON-over-HTTP transport shared by the platform
// adapters.
package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"campaign_sync/internal/metrics"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/retry"
)

// Config holds the transport settings of one platform API.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Backoff    retry.BackoffConfig

	// Transport breaker: opens when at least BreakerMinRequests were made in
	// the current interval and the failure ratio reaches BreakerFailureRatio.
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerTimeout      time.Duration
}

func (c *Config) setDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.Backoff.BaseDelay <= 0 {
		c.Backoff = retry.DefaultBackoffConfig()
	}
	if c.BreakerMinRequests == 0 {
		c.BreakerMinRequests = 10
	}
	if c.BreakerFailureRatio <= 0 {
		c.BreakerFailureRatio = 0.6
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 2 * time.Minute
	}
}

// APIError is a non-2xx answer from the platform.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("platform api: status %d: %s", e.StatusCode, e.Message)
}

// Transient reports whether the request may succeed if repeated.
func (e *APIError) Transient() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// Is lets callers match platform.ErrNotFound for a 404 and
// platform.ErrRejected for any non-transient answer.
func (e *APIError) Is(target error) bool {
	switch target {
	case platform.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case platform.ErrRejected:
		return !e.Transient()
	}
	return false
}

// AsRejection returns the APIError when err is a definitive platform
// rejection (a non-transient 4xx).
func AsRejection(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && !apiErr.Transient() {
		return apiErr, true
	}
	return nil, false
}

var idempotencyNamespace = uuid.MustParse("6f1c3b5e-9a0d-4f52-8c43-1e7d2a9b0c11")

// IdempotencyKey derives a stable key for one mutation of one entity, so
// that a retried request is recognised by the platform.
func IdempotencyKey(platform, operation, entityID string) string {
	return uuid.NewSHA1(idempotencyNamespace, []byte(platform+":"+operation+":"+entityID)).String()
}

// ContentKey narrows scope to one request body. Two different updates of the
// same entity get different keys; a resend of the same body keeps its key.
func ContentKey(scope string, body []byte) string {
	return uuid.NewSHA1(idempotencyNamespace, append([]byte(scope+":"), body...)).String()
}

type Client struct {
	platform   string
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	backoff    *retry.Backoff
	cb         *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackoff replaces the retry delay calculator.
func WithBackoff(b *retry.Backoff) Option {
	return func(c *Client) {
		c.backoff = b
	}
}

func New(platform string, cfg Config, logger *slog.Logger, opts ...Option) *Client {
	cfg.setDefaults()

	c := &Client{
		platform: platform,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		maxRetries: cfg.MaxRetries,
		backoff:    retry.NewBackoff(cfg.Backoff),
		logger:     logger.With("component", "rest", "platform", platform),
	}

	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        platform + "-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		// Rejections are answers; only transport failures count.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			_, rejected := AsRejection(err)
			return rejected
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("transport breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			metrics.TransportBreakerTransitions.WithLabelValues(platform, from.String(), to.String()).Inc()
		},
	})

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Platform() string {
	return c.platform
}

// Do sends body as JSON and decodes the response into out (when non-nil).
// Transient failures are retried with backoff under the same idempotency
// key; a rejection is returned at once as *APIError.
func (c *Client) Do(ctx context.Context, method, path, idempotencyKey string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	start := time.Now()
	defer func() {
		metrics.PlatformRequestDuration.WithLabelValues(c.platform, method).Observe(time.Since(start).Seconds())
	}()

	var respBody []byte
	err := retry.Do(ctx, c.backoff, c.maxRetries, func(ctx context.Context) error {
		b, err := c.cb.Execute(func() ([]byte, error) {
			return c.doRequest(ctx, method, path, idempotencyKey, payload)
		})
		if err != nil {
			if _, rejected := AsRejection(err); rejected {
				return retry.Permanent(err)
			}
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return retry.Permanent(fmt.Errorf("%s api unavailable: %w", c.platform, err))
			}
			return err
		}
		respBody = b
		return nil
	}, func(err error, attempt int, wait time.Duration) {
		c.logger.Warn("request failed, retrying",
			"method", method,
			"path", path,
			"attempt", attempt,
			"backoff", wait,
			"error", err,
		)
	})
	if err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path, idempotencyKey string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CampaignSync/1.0")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	return respBody, nil
}

// errorMessage pulls a human readable message out of an error body. The
// platforms use {"message": ...}, {"error": "..."} or
// {"error": {"message": ...}}.
func errorMessage(body []byte) string {
	var envelope struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return strings.TrimSpace(string(body))
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if len(envelope.Error) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Error, &s); err == nil {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil {
			return nested.Message
		}
	}
	return ""
}
