// Package client reaches the sibling services over a generic
// request/response contract keyed by logical endpoint names.
package client

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/catalog-service/internal/config"
	"github.com/tair/catalog-service/pkg/logger"
)

const (
	breakerMaxFailures = 5
	breakerCooldown    = 30 * time.Second
	maxResponseBytes   = 1 << 20
)

// RemoteError is a non-2xx answer from a sibling service.
type RemoteError struct {
	Endpoint   string
	Method     string
	Path       string
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s %s: status %d", e.Endpoint, e.Method, e.Path, e.StatusCode)
}

// RemoteClient issues JSON calls to the configured endpoints. Each call is
// bounded by its endpoint's timeout and guarded by a per-endpoint breaker.
type RemoteClient struct {
	endpoints map[string]config.EndpointConfig
	http      *http.Client
	breakers  map[string]*CircuitBreaker
}

func NewRemoteClient(endpoints map[string]config.EndpointConfig) *RemoteClient {
	breakers := make(map[string]*CircuitBreaker, len(endpoints))
	for name, ep := range endpoints {
		label := ep.Name
		if label == "" {
			label = name
		}
		breakers[name] = NewCircuitBreaker(label, breakerMaxFailures, breakerCooldown).
			WithClassifier(classifyRemoteError)
	}
	return &RemoteClient{
		endpoints: endpoints,
		http:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		breakers:  breakers,
	}
}

// Do sends body (if non-nil) as JSON and returns the raw response body.
func (c *RemoteClient) Do(ctx context.Context, endpoint, method, path string, body interface{}) ([]byte, error) {
	ep, ok := c.endpoints[endpoint]
	if !ok {
		return nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
		}
	}

	var out []byte
	err := c.breakers[endpoint].Call(func() error {
		var callErr error
		out, callErr = c.send(ctx, endpoint, ep, method, path, payload)
		return callErr
	})
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("endpoint", endpoint).
			Str("method", method).
			Str("path", path).
			Msg("Remote call failed")
		return nil, err
	}
	return out, nil
}

func (c *RemoteClient) send(ctx context.Context, endpoint string, ep config.EndpointConfig, method, path string, payload []byte) ([]byte, error) {
	if ep.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ep.Timeout)
		defer cancel()
	}

	url := strings.TrimRight(ep.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := logger.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Endpoint: endpoint, Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	return data, nil
}

// classifyRemoteError trips the breaker on transport errors and 5xx only.
// A 4xx means the endpoint is up; a caller cancellation says nothing about it.
func classifyRemoteError(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	if errors.Is(err, context.Canceled) {
		return OutcomeIgnored
	}
	var re *RemoteError
	if errors.As(err, &re) && re.StatusCode < http.StatusInternalServerError {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// IsRemoteStatus reports whether err is a RemoteError with the given status.
func IsRemoteStatus(err error, status int) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == status
}
