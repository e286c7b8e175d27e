// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/go-a2a/ragagent/model"
	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/prompt"
	"github.com/go-a2a/ragagent/retrieval"
	"github.com/go-a2a/ragagent/types"
)

// Apology is the answer of an invocation that failed outside of the retrieval and generation stages.
const Apology = "An unexpected error occurred. please try again later ☹️!"

var (
	// ErrNoGenerator is returned when an agent has no way to build a generator.
	ErrNoGenerator = errors.New("no generator configured")
)

// Response is the outcome of one [Agent.Run] invocation.
type Response struct {
	// InvocationID identifies the invocation in logs.
	InvocationID string

	// Answer is the text returned to the user. It is never empty.
	Answer types.Answer

	// IndexAnswer is the answer of the index query engine, when the agent has one.
	IndexAnswer string

	// Context is the retrieved context the answer was grounded on.
	Context types.RetrievedContext

	// State is the terminal state of the invocation.
	State State
}

// RetrieverFactory builds the retriever of one invocation.
type RetrieverFactory func(ctx context.Context) (types.Retriever, error)

// GeneratorFactory builds the generator of one invocation.
type GeneratorFactory func(ctx context.Context) (types.Generator, error)

// QueryEngine answers a query directly from an index.
type QueryEngine interface {
	Query(ctx context.Context, query string, history types.History) (*retrieval.QueryAnswer, error)
}

// QueryEngineFactory builds the query engine of one invocation over its retriever.
type QueryEngineFactory func(ctx context.Context, r types.Retriever) (QueryEngine, error)

// Agent answers queries with retrieval augmented generation.
//
// An Agent only holds configuration. Backend clients are built per invocation, so one Agent
// may serve concurrent [Agent.Run] calls.
type Agent struct {
	name           string
	newRetriever   RetrieverFactory
	newGenerator   GeneratorFactory
	newQueryEngine QueryEngineFactory
	composer       *prompt.Composer
	timeout        time.Duration
	logger         *slog.Logger
}

// NewAgent returns a new [Agent] named name.
//
// Without options the agent has no retriever and no generator, so every invocation fails with [Apology].
func NewAgent(name string, opts ...Option) *Agent {
	a := &Agent{
		name:     name,
		composer: prompt.NewComposer(prompt.DefaultOrganization),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Name returns the name of the agent.
func (a *Agent) Name() string {
	return a.name
}

// Answer runs one invocation and returns only the answer text.
func (a *Agent) Answer(ctx context.Context, query string, history types.History) types.Answer {
	return a.Run(ctx, query, history).Answer
}

// Run answers query in the light of history.
//
// Run never panics and never returns nil. history is not modified; nil means no prior turns.
func (a *Agent) Run(ctx context.Context, query string, history types.History) (resp *Response) {
	resp = &Response{
		InvocationID: uuid.NewString(),
		State:        StateInit,
	}

	logger := logging.FromContext(ctx)
	if a != nil && a.logger != nil {
		logger = a.logger
	}
	name := ""
	if a != nil {
		name = a.name
	}
	logger = logger.With(slog.String("agent", name), slog.String("invocation_id", resp.InvocationID))
	ctx = logging.NewContext(ctx, logger)

	defer func() {
		if p := recover(); p != nil {
			fail(ctx, resp, fmt.Errorf("panic: %v", p))
		}
	}()

	if a == nil {
		fail(ctx, resp, errors.New("nil agent"))
		return resp
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := a.run(ctx, resp, query, history); err != nil {
		fail(ctx, resp, err)
		return resp
	}

	logger.InfoContext(ctx, "invocation completed",
		slog.String("state", resp.State.String()),
		slog.Bool("generation_failed", model.IsFailure(resp.Answer)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp
}

func (a *Agent) run(ctx context.Context, resp *Response, query string, history types.History) error {
	logger := logging.FromContext(ctx)

	hist, err := history.Clone()
	if err != nil {
		return fmt.Errorf("clone history: %w", err)
	}
	if err := hist.Validate(); err != nil {
		return fmt.Errorf("invalid history: %w", err)
	}

	var retriever types.Retriever
	if a.newRetriever != nil {
		if retriever, err = a.newRetriever(ctx); err != nil {
			return fmt.Errorf("build retriever: %w", err)
		}
		if c, ok := retriever.(io.Closer); ok {
			defer c.Close()
		}
	}

	if a.newGenerator == nil {
		return ErrNoGenerator
	}
	generator, err := a.newGenerator(ctx)
	if err != nil {
		return fmt.Errorf("build generator: %w", err)
	}
	if generator == nil {
		return ErrNoGenerator
	}

	if a.newQueryEngine != nil {
		qe, err := a.newQueryEngine(ctx, retriever)
		if err != nil {
			return fmt.Errorf("build query engine: %w", err)
		}
		resp.IndexAnswer = indexAnswer(ctx, qe, query, hist)
	}

	resp.State = StateRetrieving
	logger.DebugContext(ctx, "state changed", slog.String("state", resp.State.String()))
	resp.Context = retrieval.Fetch(ctx, retriever, query)

	resp.State = StateComposing
	logger.DebugContext(ctx, "state changed", slog.String("state", resp.State.String()))
	p := a.composer.Compose(query, resp.Context, hist)

	resp.State = StateGenerating
	logger.DebugContext(ctx, "state changed", slog.String("state", resp.State.String()))
	answer := generator.Generate(ctx, p)
	if strings.TrimSpace(answer) == "" {
		answer = model.FormatFailure(types.ErrEmptyResponse)
	}
	resp.Answer = answer

	resp.State = StateDone
	return nil
}

// indexAnswer runs the query engine. Its failure is reported in the returned text only.
func indexAnswer(ctx context.Context, qe QueryEngine, query string, history types.History) string {
	if qe == nil {
		return ""
	}
	qa, err := qe.Query(ctx, query, history)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "index query failed", slog.Any("error", err))
		return model.FormatFailure(err)
	}
	if qa == nil {
		return model.FormatFailure(types.ErrEmptyResponse)
	}
	return qa.Answer
}

// fail moves resp to [StateFailed] with the [Apology] answer.
func fail(ctx context.Context, resp *Response, err error) {
	logging.FromContext(ctx).ErrorContext(ctx, "invocation failed",
		slog.String("state", resp.State.String()),
		slog.String("kind", errorKind(err)),
		slog.Any("error", err),
	)
	resp.State = StateFailed
	resp.Answer = Apology
}

// errorKind tells vendor API errors apart from other failures for logging.
func errorKind(err error) string {
	var (
		retrievalErr *retrieval.APIError
		openaiErr    *openai.APIError
		anthropicErr *anthropic.Error
		genaiErr     genai.APIError
	)
	switch {
	case errors.As(err, &retrievalErr),
		errors.As(err, &openaiErr),
		errors.As(err, &anthropicErr),
		errors.As(err, &genaiErr):
		return "api"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "internal"
	}
}
