// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// LLMResponse represents a response from a language model.
// It provides structured access to content, errors, and metadata
// from the model's response.
type LLMResponse struct {
	// Text is the generated text.
	Text string

	// FinishReason is the backend reason the generation stopped.
	FinishReason string

	// ErrorCode is the error code if the response is an error. Code varies by model.
	ErrorCode string

	// ErrorMessage is the error message if the response is an error.
	ErrorMessage string

	// Grounded reports whether the backend used live search to produce Text.
	Grounded bool
}

// IsError returns true if the response contains an error.
func (r *LLMResponse) IsError() bool {
	return r.ErrorCode != "" || r.ErrorMessage != ""
}

// GetText returns the text content of the response if available.
// Returns empty string if r is nil.
func (r *LLMResponse) GetText() string {
	if r == nil {
		return ""
	}
	return r.Text
}
