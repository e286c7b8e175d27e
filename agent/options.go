// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-a2a/ragagent/model"
	"github.com/go-a2a/ragagent/prompt"
	"github.com/go-a2a/ragagent/types"
)

// Option configures an [Agent].
type Option func(*Agent)

// WithRetriever makes every invocation use r.
func WithRetriever(r types.Retriever) Option {
	return func(a *Agent) {
		a.newRetriever = func(context.Context) (types.Retriever, error) { return r, nil }
	}
}

// WithRetrieverFactory builds the retriever of each invocation with f.
func WithRetrieverFactory(f RetrieverFactory) Option {
	return func(a *Agent) {
		a.newRetriever = f
	}
}

// WithGenerator makes every invocation use g.
func WithGenerator(g types.Generator) Option {
	return func(a *Agent) {
		a.newGenerator = func(context.Context) (types.Generator, error) { return g, nil }
	}
}

// WithGeneratorFactory builds the generator of each invocation with f.
func WithGeneratorFactory(f GeneratorFactory) Option {
	return func(a *Agent) {
		a.newGenerator = f
	}
}

// WithModel makes every invocation generate with m and config.
func WithModel(m types.Model, config types.GenerationConfig) Option {
	return WithGenerator(model.NewGenerator(m, config))
}

// WithQueryEngine makes every invocation ask qe for an index answer first.
func WithQueryEngine(qe QueryEngine) Option {
	return func(a *Agent) {
		a.newQueryEngine = func(context.Context, types.Retriever) (QueryEngine, error) { return qe, nil }
	}
}

// WithQueryEngineFactory builds the query engine of each invocation with f.
func WithQueryEngineFactory(f QueryEngineFactory) Option {
	return func(a *Agent) {
		a.newQueryEngine = f
	}
}

// WithComposer sets the prompt composer.
func WithComposer(c *prompt.Composer) Option {
	return func(a *Agent) {
		if c != nil {
			a.composer = c
		}
	}
}

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(a *Agent) {
		a.timeout = d
	}
}

// WithLogger sets the logger. By default the logger of the invocation context is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}
