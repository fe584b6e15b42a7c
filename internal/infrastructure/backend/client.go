// internal/infrastructure/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNotFound is returned when a service answers 404
var ErrNotFound = errors.New("resource not found")

// StatusError is a non-2xx answer from a backend service
type StatusError struct {
	Service    string
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s %s failed with status %d: %s", e.Service, e.Method, e.Path, e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Unwrap lets errors.Is(err, ErrNotFound) match a 404
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// ClientError reports whether the service rejected the request itself
func (e *StatusError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// BreakerSettings configures the circuit breaker of one client
type BreakerSettings struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// Options configures a Client
type Options struct {
	Timeout time.Duration
	Breaker BreakerSettings
	// Transport overrides the instrumented default transport
	Transport http.RoundTripper
}

// Client is a JSON client for one backend service
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     logrus.FieldLogger
}

// NewClient creates a client for the service at baseURL
func NewClient(name, baseURL string, opts Options, logger logrus.FieldLogger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	log := logger.WithField("service", name)

	threshold := opts.Breaker.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: opts.Breaker.MaxRequests,
		Interval:    opts.Breaker.Interval,
		Timeout:     opts.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"from": from.String(),
				"to":   to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		breaker: breaker,
		logger:  log,
	}
}

// isSuccessful keeps client errors and cancellations out of the failure count
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.ClientError()
	}
	return false
}

// Do sends body as JSON and decodes the answer into out. Either may be nil.
// An empty answer leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	respBody, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decode(respBody, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	respBody, err := c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to call %s: %w", c.name, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s response: %w", c.name, err)
		}
		if resp.StatusCode >= 400 {
			return nil, &StatusError{
				Service:    c.name,
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
				Body:       data,
			}
		}
		return data, nil
	})

	log := c.logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debug("backend call returned not found")
		} else {
			log.WithError(err).Warn("backend call failed")
		}
		return nil, err
	}
	log.Debug("backend call completed")
	return respBody, nil
}

func decode(data []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeList accepts a JSON array or a single object
func decodeList[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}
	if data[0] != '[' {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return []T{one}, nil
	}

	var many []T
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if many == nil {
		many = []T{}
	}
	return many, nil
}

// getList fetches a collection, treating 404 as empty
func (c *Client) getList(ctx context.Context, path string) ([]byte, error) {
	data, err := c.send(ctx, http.MethodGet, path, nil)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return data, err
}

// rejectedBody returns the body of a 4xx answer so callers can decode a
// structured rejection
func rejectedBody(err error) ([]byte, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.ClientError() && len(bytes.TrimSpace(statusErr.Body)) > 0 {
		return statusErr.Body, true
	}
	return nil, false
}
