// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-a2a/ragagent/types"
)

// Provider names a model backend.
type Provider = string

const (
	// ProviderGroq selects [Groq].
	ProviderGroq Provider = "groq"
	// ProviderGemini selects [Gemini].
	ProviderGemini Provider = "gemini"
	// ProviderClaude selects [Claude].
	ProviderClaude Provider = "claude"
)

func init() {
	Register(ProviderClaude, func(ctx context.Context, apiKey, modelName string, opts ...Option) (types.Model, error) {
		return NewClaude(ctx, apiKey, modelName, opts...)
	},
		`^claude-.*`,
	)

	Register(ProviderGemini, func(ctx context.Context, apiKey, modelName string, opts ...Option) (types.Model, error) {
		return NewGemini(ctx, apiKey, modelName, opts...)
	},
		`^gemini-.*`,
		`^projects\/.*\/locations\/.*\/endpoints\/.*`,
		`^projects\/.*\/locations\/.*\/publishers\/google\/models\/gemini-.*`,
	)

	Register(ProviderGroq, func(ctx context.Context, apiKey, modelName string, opts ...Option) (types.Model, error) {
		return NewGroq(ctx, apiKey, modelName, opts...)
	},
		`^groq\/.*`,
		`^openai\/gpt-oss-.*`,
		`^llama-.*`,
		`^meta-llama\/.*`,
		`^qwen\/.*`,
		`^moonshotai\/.*`,
	)
}

// Constructor creates a model of one provider.
type Constructor func(ctx context.Context, apiKey, modelName string, opts ...Option) (types.Model, error)

type modelPattern struct {
	re       *regexp.Regexp
	provider Provider
}

// Registry maps providers to their [Constructor] and model name patterns to providers.
type Registry struct {
	mu           sync.RWMutex
	constructors map[Provider]Constructor
	patterns     []modelPattern
	cacheSize    int
	cache        map[string]Provider
}

// NewRegistry returns an empty [Registry] that caches up to cacheSize model name lookups.
func NewRegistry(cacheSize int) *Registry {
	return &Registry{
		constructors: make(map[Provider]Constructor),
		cacheSize:    cacheSize,
		cache:        make(map[string]Provider),
	}
}

var defaultRegistry = NewRegistry(32)

// DefaultRegistry returns the registry holding the built-in providers.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register sets the constructor of provider and routes model names matching patterns to it.
//
// Registering a provider again replaces its constructor. A pattern already routed to another
// provider is moved to provider.
func (r *Registry) Register(provider Provider, ctor Constructor, patterns ...string) error {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("compile model pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.constructors[provider] = ctor
	clear(r.cache)

next:
	for _, re := range compiled {
		for i, mp := range r.patterns {
			if mp.re.String() == re.String() {
				r.patterns[i].provider = provider
				continue next
			}
		}
		r.patterns = append(r.patterns, modelPattern{re: re, provider: provider})
	}

	return nil
}

// ProviderFor returns the provider whose patterns match modelName. The first registered match wins.
func (r *Registry) ProviderFor(modelName string) (Provider, error) {
	r.mu.RLock()
	if p, ok := r.cache[modelName]; ok {
		r.mu.RUnlock()
		return p, nil
	}

	var provider Provider
	for _, mp := range r.patterns {
		if mp.re.MatchString(modelName) {
			provider = mp.provider
			break
		}
	}
	r.mu.RUnlock()

	if provider == "" {
		return "", fmt.Errorf("no provider serves model %q", modelName)
	}

	r.mu.Lock()
	if len(r.cache) >= r.cacheSize {
		clear(r.cache)
	}
	r.cache[modelName] = provider
	r.mu.Unlock()

	return provider, nil
}

// New creates the model modelName served by provider.
//
// An empty provider is resolved from modelName with [Registry.ProviderFor].
func (r *Registry) New(ctx context.Context, provider Provider, apiKey, modelName string, opts ...Option) (types.Model, error) {
	if provider == "" {
		p, err := r.ProviderFor(modelName)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	r.mu.RLock()
	ctor, ok := r.constructors[provider]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported model provider: %s", provider)
	}

	return ctor(ctx, apiKey, modelName, opts...)
}

// Register registers provider in the default registry. It panics if a pattern does not compile.
func Register(provider Provider, ctor Constructor, patterns ...string) {
	if err := defaultRegistry.Register(provider, ctor, patterns...); err != nil {
		panic(err)
	}
}

// NewModel creates the model modelName served by provider from the default registry.
//
// An empty provider is resolved from modelName.
func NewModel(ctx context.Context, provider Provider, apiKey, modelName string, opts ...Option) (types.Model, error) {
	return defaultRegistry.New(ctx, provider, apiKey, modelName, opts...)
}
