// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/prompt"
	"github.com/go-a2a/ragagent/types"
)

// DefaultQueryEngineMaxTokens caps the answer of a [QueryEngine] when no config is given.
const DefaultQueryEngineMaxTokens = 512

// textQATemplate frames the retrieved passages for the query engine model.
var textQATemplate = heredoc.Doc(`
	Context information is below.
	---------------------
	%s
	---------------------
	Given the context information and not prior knowledge, answer the query.
	Query: %s
	Answer: `)

// QueryAnswer is the output of a [QueryEngine].
type QueryAnswer struct {
	// Answer is the synthesized answer text.
	Answer string

	// Context holds the passages the answer was synthesized from.
	Context types.RetrievedContext
}

// QueryEngine answers a query directly from an index by retrieving passages and
// synthesizing an answer with a model.
type QueryEngine struct {
	retriever types.Retriever
	model     types.Model
	composer  *prompt.Composer
	config    types.GenerationConfig
}

// QueryEngineOption is a functional option for configuring [QueryEngine].
type QueryEngineOption func(*QueryEngine)

// WithQueryEngineComposer sets the composer providing the system instructions.
func WithQueryEngineComposer(c *prompt.Composer) QueryEngineOption {
	return func(q *QueryEngine) {
		q.composer = c
	}
}

// WithQueryEngineConfig sets the generation parameters of the synthesis step.
func WithQueryEngineConfig(config types.GenerationConfig) QueryEngineOption {
	return func(q *QueryEngine) {
		q.config = config
	}
}

// NewQueryEngine creates a new [QueryEngine] over r that synthesizes with model.
func NewQueryEngine(r types.Retriever, model types.Model, opts ...QueryEngineOption) *QueryEngine {
	q := &QueryEngine{
		retriever: r,
		model:     model,
		composer:  prompt.NewComposer(prompt.DefaultOrganization),
		config: types.GenerationConfig{
			MaxOutputTokens: DefaultQueryEngineMaxTokens,
		},
	}
	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Query retrieves passages for query and synthesizes an answer that takes history into account.
func (q *QueryEngine) Query(ctx context.Context, query string, history types.History) (*QueryAnswer, error) {
	if q.retriever == nil || q.model == nil {
		return nil, errors.New("query engine: retriever and model are required")
	}

	rc, err := q.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query engine: retrieve: %w", err)
	}

	contextText := rc.Text()
	if strings.TrimSpace(contextText) == "" {
		contextText = "(no context found)"
	}

	req := types.NewLLMRequest(
		[]types.Message{
			types.SystemMessage(q.composer.IndexInstructions(history)),
			types.UserMessage(fmt.Sprintf(textQATemplate, contextText, query)),
		},
		types.WithGenerationConfig(&q.config),
	)

	resp, err := q.model.GenerateContent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query engine: generate with %s: %w", q.model.Name(), err)
	}
	if resp == nil {
		return nil, fmt.Errorf("query engine: %w", types.ErrEmptyResponse)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("query engine: %s: %s", resp.ErrorCode, resp.ErrorMessage)
	}
	answer := resp.GetText()
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("query engine: %w", types.ErrEmptyResponse)
	}

	logging.FromContext(ctx).DebugContext(ctx, "query engine answer",
		slog.String("model", q.model.Name()),
		slog.Int("passages", len(rc.Passages)),
		slog.Int("answer_len", len(answer)),
	)

	return &QueryAnswer{Answer: answer, Context: rc}, nil
}
