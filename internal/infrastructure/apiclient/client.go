// Package apiclient is the JSON-over-HTTP client of the showcase backend.
//
// Every call is bounded by a fixed timeout, carries the bearer credential of the
// current session, runs through a circuit breaker and has its response checked
// against a schema before anything reaches the caller. A 401 on an authenticated
// endpoint is reported to the UnauthorizedHandler so the session can expire.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
	"github.com/startupscout/showcase/internal/pkg/metrics"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// TokenSource yields the bearer credential of the current session, or "".
type TokenSource interface {
	Token() string
}

// UnauthorizedHandler is invoked when an authenticated endpoint answers 401.
type UnauthorizedHandler func()

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// BreakerConfig holds the circuit breaker thresholds.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig trips after 80% of at least 5 requests failed and probes again after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Client talks to the showcase backend.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
	log      zerolog.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
}

// Option customises a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	breaker    BreakerConfig
	log        zerolog.Logger
	tokens     TokenSource
	onUnauth   UnauthorizedHandler
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBreaker overrides the circuit breaker thresholds.
func WithBreaker(cfg BreakerConfig) Option {
	return func(o *options) { o.breaker = cfg }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTokenSource sets where bearer credentials come from.
func WithTokenSource(ts TokenSource) Option {
	return func(o *options) { o.tokens = ts }
}

// WithUnauthorizedHandler sets the reactive expiry hook.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(o *options) { o.onUnauth = h }
}

// New creates a Client. A default timeout is applied when none is provided.
func New(cfg Config, opts ...Option) *Client {
	o := options{
		httpClient: &http.Client{},
		breaker:    DefaultBreakerConfig(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		timeout:        timeout,
		http:           o.httpClient,
		validate:       validator.New(),
		log:            o.log,
		tokens:         o.tokens,
		onUnauthorized: o.onUnauth,
	}
	c.breaker = newBreaker(o.breaker, c.log)
	return c
}

func newBreaker(cfg BreakerConfig, log zerolog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "showcase-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.Set(float64(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// SetTokenSource wires the session store in after construction.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// OnUnauthorized wires the expiry monitor in after construction.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *Client) token(ctx context.Context) string {
	if tok, ok := ports.TokenFromContext(ctx); ok {
		return tok
	}
	c.mu.RLock()
	ts := c.tokens
	c.mu.RUnlock()
	if ts == nil {
		return ""
	}
	return ts.Token()
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		h()
	}
}

// call describes one backend request.
type call struct {
	method   string
	endpoint string // route template, used for metrics and messages
	path     string
	body     any
	raw      io.Reader
	rawType  string
	// public calls (login/register) do not trigger the expiry path on 401.
	public bool
}

type response struct {
	status int
	body   []byte
}

// serverFailure marks 5xx answers so the breaker counts them.
type serverFailure struct{ resp *response }

func (e *serverFailure) Error() string { return "server failure " + strconv.Itoa(e.resp.status) }

// do runs the call and decodes a 2xx body into out. out may be nil for calls
// whose body is only a success marker.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return domain.NetworkError("could not build request: %v", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		httpResp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		resp := &response{status: httpResp.StatusCode, body: body}
		if resp.status >= http.StatusInternalServerError {
			return resp, &serverFailure{resp: resp}
		}
		return resp, nil
	})
	metrics.APIRequestDuration.WithLabelValues(cl.endpoint).Observe(time.Since(start).Seconds())

	var failure *serverFailure
	switch {
	case errors.As(err, &failure):
		result = failure.resp
	case err != nil:
		metrics.APIRequestsTotal.WithLabelValues(cl.endpoint, cl.method, "network").Inc()
		nerr := c.transportError(ctx, err)
		c.log.Debug().Err(err).Str("endpoint", cl.endpoint).Str("method", cl.method).Msg("request failed")
		return nerr
	}

	resp := result.(*response)
	metrics.APIRequestsTotal.WithLabelValues(cl.endpoint, cl.method, strconv.Itoa(resp.status)).Inc()
	c.log.Debug().
		Str("endpoint", cl.endpoint).
		Str("method", cl.method).
		Int("status", resp.status).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	if resp.status == http.StatusUnauthorized {
		// A rejected override token says nothing about the current session.
		if _, override := ports.TokenFromContext(ctx); !cl.public && !override {
			c.unauthorized()
		}
		return domain.AuthError(resp.status, "%s", errorMessage(resp, "unauthorized"))
	}
	if resp.status < 200 || resp.status > 299 {
		return domain.ServerError(resp.status, "%s", errorMessage(resp, ""))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return domain.ServerError(resp.status, "malformed response from %s", cl.endpoint)
	}
	if err := c.validate.Struct(out); err != nil {
		c.log.Warn().Err(err).Str("endpoint", cl.endpoint).Msg("response failed schema validation")
		return domain.ServerError(resp.status, "malformed response from %s", cl.endpoint)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	contentType := ""
	switch {
	case cl.raw != nil:
		body = cl.raw
		contentType = cl.rawType
	case cl.body != nil:
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return domain.NetworkError("service temporarily unavailable")
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return domain.NetworkError("request timeout")
	case errors.Is(err, context.Canceled):
		return domain.NetworkError("request cancelled")
	default:
		return domain.NetworkError("network error: %v", unwrapURLError(err))
	}
}

func unwrapURLError(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	return err
}

// errorMessage extracts a readable message from an error body: the "error"
// field of a JSON envelope, else the plain-text body.
func errorMessage(resp *response, fallback string) string {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(resp.body, &env) == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Message != "" {
			return env.Message
		}
	}
	if text := strings.TrimSpace(string(resp.body)); text != "" && !strings.HasPrefix(text, "{") && len(text) < 300 {
		return text
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("HTTP error! status: %d", resp.status)
}
