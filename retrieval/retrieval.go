// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/go-a2a/ragagent/internal/pool"
	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/types"
)

// DefaultTimeout bounds one retrieval call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps the backend response bodies read into memory.
const maxBodySize = 8 << 20

// ErrMissingAPIKey is returned by backends constructed without credentials.
var ErrMissingAPIKey = errors.New("missing API key")

// APIError is returned when a retrieval backend answers with a non-2xx status.
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

// Error implements [error].
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
}

// Fetch retrieves the context for query from r.
//
// Fetch never fails. A nil retriever, a backend error or a panic inside the backend
// all yield the empty [types.RetrievedContext] and are logged.
func Fetch(ctx context.Context, r types.Retriever, query string) (rc types.RetrievedContext) {
	logger := logging.FromContext(ctx)
	if r == nil {
		logger.WarnContext(ctx, "no retriever configured, continuing without context")
		return types.RetrievedContext{}
	}

	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "retriever panicked, continuing without context",
				slog.String("retriever", r.Name()),
				slog.Any("panic", p),
			)
			rc = types.RetrievedContext{}
		}
	}()

	start := time.Now()
	var err error
	rc, err = r.Retrieve(ctx, query)
	if err != nil {
		logger.WarnContext(ctx, "retrieval failed, continuing without context",
			slog.String("retriever", r.Name()),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err),
		)
		return types.RetrievedContext{}
	}

	logger.InfoContext(ctx, "context retrieved",
		slog.String("retriever", r.Name()),
		slog.Int("passages", len(rc.Passages)),
		slog.Bool("empty", rc.IsEmpty()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return rc
}

// newBearerClient returns an HTTP client that authenticates every request with apiKey as a bearer token.
//
// base is used as the underlying transport when non-nil.
func newBearerClient(ctx context.Context, base *http.Client, apiKey string, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if base == nil {
		base = &http.Client{}
	}
	if apiKey == "" {
		c := *base
		c.Timeout = timeout
		return &c
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	c := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey}))
	c.Timeout = timeout
	return c
}

// do sends req and returns the response body, turning non-2xx statuses into an [*APIError].
func do(c *http.Client, service string, req *http.Request) ([]byte, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: send request: %w", service, err)
	}
	defer resp.Body.Close()

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodySize)); err != nil {
		return nil, fmt.Errorf("%s: read response: %w", service, err)
	}
	body := bytes.Clone(buf.Bytes())

	logging.FromContext(req.Context()).DebugContext(req.Context(), "retrieval response",
		slog.String("service", service),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
