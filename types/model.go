// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
)

// Retriever fetches context relevant to a query from an external passage or document store.
type Retriever interface {
	// Name returns the name of the retrieval backend.
	Name() string

	// Retrieve returns at most top-K passages for query.
	//
	// Implementations report every transport, authentication and backend failure as an error;
	// callers decide how to degrade.
	Retrieve(ctx context.Context, query string) (RetrievedContext, error)
}

// Model represents a hosted generative AI model.
type Model interface {
	// Name returns the name of the LLM model.
	//
	// e.g. gemini-1.5-flash or groq/compound.
	Name() string

	// GenerateContent generates one response from the request messages.
	GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error)
}

// Generator turns a composed prompt into an answer.
//
// Generate never fails: backend failures are reported inside the returned [Answer].
type Generator interface {
	Generate(ctx context.Context, prompt *Prompt) Answer
}
