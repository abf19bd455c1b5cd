package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second
	maxLoggedBody  = 300
)

// Observer получает метрики по каждому запросу к API
type Observer interface {
	ObserveAPIRequest(endpoint, status string, seconds float64)
}

// Client REST-клиент API клиники
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	observer   Observer
	logger     *zap.Logger
}

// Option настройка клиента
type Option func(*Client)

// WithHTTPClient подменяет http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout таймаут на один запрос
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithRateLimit ограничивает исходящие запросы (rps, burst)
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			if burst < 1 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithObserver подключает метрики
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient создаёт клиент API клиники
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken возвращает копию клиента, которая отправляет Bearer-токен
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// response сырой ответ API
type response struct {
	status     int
	statusText string
	body       []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status <= 299
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body interface{}) (*response, error) {
	start := time.Now()

	resp, err := c.send(ctx, method, path, body)

	status := "transport_error"
	if err == nil {
		status = strconv.Itoa(resp.status)
	}
	if c.observer != nil {
		c.observer.ObserveAPIRequest(endpoint, status, time.Since(start).Seconds())
	}

	if err != nil {
		c.logger.Warn("Clinic API request failed",
			zap.String("endpoint", endpoint),
			zap.String("path", path),
			zap.Error(err))
		return nil, &TransportError{Op: endpoint, Err: err}
	}

	if !resp.ok() {
		msg := string(resp.body)
		if len(msg) > maxLoggedBody {
			msg = msg[:maxLoggedBody]
		}
		c.logger.Warn("Clinic API non-2xx response",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.status),
			zap.String("body", msg))
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &response{
		status:     resp.StatusCode,
		statusText: statusText(resp),
		body:       respBody,
	}, nil
}

// statusText текст статуса без кода: "404 Not Found" -> "Not Found"
func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if strings.HasPrefix(resp.Status, prefix) {
		return strings.TrimPrefix(resp.Status, prefix)
	}
	return http.StatusText(resp.StatusCode)
}

// decode разбирает тело успешного ответа
func decode(resp *response, out interface{}) error {
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
