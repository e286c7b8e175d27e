// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds one generation call when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// Config holds the transport settings shared by every model backend.
type Config struct {
	// logger is the logger used for logging.
	logger *slog.Logger

	// httpClient is the underlying HTTP client. Nil means the backend default.
	httpClient *http.Client

	// baseURL overrides the backend API endpoint.
	baseURL string

	// timeout bounds one generation call.
	timeout time.Duration

	// project and location select the Vertex AI backend for Gemini.
	project  string
	location string
}

func newConfig() Config {
	return Config{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// Option is a function that modifies the model [Config].
type Option interface {
	apply(base Config) Config
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	if o.Logger != nil {
		base.logger = o.Logger
	}
	return base
}

// WithLogger sets the logger of the model.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}

type httpClientOption struct{ *http.Client }

func (o httpClientOption) apply(base Config) Config {
	base.httpClient = o.Client
	return base
}

// WithHTTPClient sets the HTTP client used to reach the backend.
func WithHTTPClient(c *http.Client) Option {
	return httpClientOption{c}
}

type baseURLOption string

func (o baseURLOption) apply(base Config) Config {
	base.baseURL = string(o)
	return base
}

// WithBaseURL overrides the backend API endpoint.
func WithBaseURL(url string) Option {
	return baseURLOption(url)
}

type timeoutOption time.Duration

func (o timeoutOption) apply(base Config) Config {
	if o > 0 {
		base.timeout = time.Duration(o)
	}
	return base
}

// WithTimeout bounds one generation call.
func WithTimeout(d time.Duration) Option {
	return timeoutOption(d)
}

type vertexAIOption struct{ project, location string }

func (o vertexAIOption) apply(base Config) Config {
	base.project = o.project
	base.location = o.location
	return base
}

// WithVertexAI selects the Vertex AI backend in project and location, authenticated with
// the detected application default credentials. Only [Gemini] honours it.
func WithVertexAI(project, location string) Option {
	return vertexAIOption{project: project, location: location}
}
