// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"slices"
	"strings"
)

// GenerationConfig holds the fixed generation parameters of a request.
type GenerationConfig struct {
	// Temperature is the sampling temperature. Nil leaves the backend default.
	Temperature *float32 `json:"temperature,omitempty"`

	// MaxOutputTokens caps the length of the generated text. Zero leaves the backend default.
	MaxOutputTokens int32 `json:"max_output_tokens,omitempty"`

	// WebSearch enables the backend's live web search capability, if it has one.
	WebSearch bool `json:"web_search,omitempty"`
}

// LLMRequest represents a request to a [Model].
type LLMRequest struct {
	// The model name. Empty means the model's own default.
	Model string `json:"model,omitempty"`

	// The ordered messages to send to the model.
	Messages []Message `json:"messages"`

	// Additional config for the request.
	Config *GenerationConfig `json:"config,omitempty"`
}

// LLMRequestOption configures a [LLMRequest].
type LLMRequestOption func(*LLMRequest)

// WithModelName sets the model name.
func WithModelName(name string) LLMRequestOption {
	return func(r *LLMRequest) {
		r.Model = name
	}
}

// WithGenerationConfig sets the [*GenerationConfig] for the [LLMRequest].
func WithGenerationConfig(config *GenerationConfig) LLMRequestOption {
	return func(r *LLMRequest) {
		r.Config = config
	}
}

// NewLLMRequest creates a new [LLMRequest] from a copy of messages.
func NewLLMRequest(messages []Message, opts ...LLMRequestOption) *LLMRequest {
	r := &LLMRequest{
		Messages: slices.Clone(messages),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SystemInstruction returns the content of all system messages joined by blank lines.
func (r *LLMRequest) SystemInstruction() string {
	var parts []string
	for _, msg := range r.Messages {
		if msg.Role == RoleSystem && msg.Content != "" {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Conversation returns the non-system messages in order.
func (r *LLMRequest) Conversation() []Message {
	msgs := make([]Message, 0, len(r.Messages))
	for _, msg := range r.Messages {
		if msg.Role != RoleSystem {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// GenerationConfig returns the request config, never nil.
func (r *LLMRequest) GenerationConfig() GenerationConfig {
	if r.Config == nil {
		return GenerationConfig{}
	}
	return *r.Config
}
