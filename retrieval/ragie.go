// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/types"
)

// Ragie defaults.
const (
	DefaultRagieBaseURL = "https://api.ragie.ai"
	DefaultRagieTopK    = 1
)

// Ragie retrieves passages from the Ragie retrieval API.
type Ragie struct {
	baseURL    string
	apiKey     string
	topK       int
	timeout    time.Duration
	httpClient *http.Client
	client     *http.Client
}

var _ types.Retriever = (*Ragie)(nil)

// RagieOption is a functional option for configuring [Ragie].
type RagieOption func(*Ragie)

// WithRagieBaseURL sets the API base URL of the [Ragie] retriever.
func WithRagieBaseURL(baseURL string) RagieOption {
	return func(r *Ragie) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRagieTopK sets the number of passages requested per query.
func WithRagieTopK(topK int) RagieOption {
	return func(r *Ragie) {
		if topK > 0 {
			r.topK = topK
		}
	}
}

// WithRagieTimeout sets the per-request timeout.
func WithRagieTimeout(timeout time.Duration) RagieOption {
	return func(r *Ragie) {
		r.timeout = timeout
	}
}

// WithRagieHTTPClient sets the underlying HTTP client.
func WithRagieHTTPClient(c *http.Client) RagieOption {
	return func(r *Ragie) {
		r.httpClient = c
	}
}

// NewRagie creates a new [Ragie] retriever authenticated with apiKey.
func NewRagie(ctx context.Context, apiKey string, opts ...RagieOption) *Ragie {
	r := &Ragie{
		baseURL: DefaultRagieBaseURL,
		apiKey:  apiKey,
		topK:    DefaultRagieTopK,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.client = newBearerClient(ctx, r.httpClient, r.apiKey, r.timeout)

	return r
}

// Name implements [types.Retriever].
func (r *Ragie) Name() string { return "ragie" }

// TopK returns the number of passages requested per query.
func (r *Ragie) TopK() int { return r.topK }

type ragieRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type ragieChunk struct {
	ID           string         `json:"id"`
	Text         string         `json:"text"`
	Score        float64        `json:"score"`
	DocumentID   string         `json:"document_id"`
	DocumentName string         `json:"document_name"`
	Metadata     map[string]any `json:"metadata"`
}

type ragieResponse struct {
	ScoredChunks []ragieChunk `json:"scored_chunks"`
}

// Retrieve implements [types.Retriever].
//
// The response body is kept in [types.RetrievedContext.Raw], so a body without scored chunks is
// still handed to the generator as is.
func (r *Ragie) Retrieve(ctx context.Context, query string) (types.RetrievedContext, error) {
	if r.apiKey == "" {
		return types.RetrievedContext{}, fmt.Errorf("ragie: %w", ErrMissingAPIKey)
	}

	payload, err := sonic.Marshal(ragieRequest{Query: query, TopK: r.topK})
	if err != nil {
		return types.RetrievedContext{}, fmt.Errorf("ragie: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/retrievals", bytes.NewReader(payload))
	if err != nil {
		return types.RetrievedContext{}, fmt.Errorf("ragie: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := do(r.client, r.Name(), req)
	if err != nil {
		return types.RetrievedContext{}, err
	}

	var resp ragieResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return types.RetrievedContext{}, fmt.Errorf("ragie: decode response: %w", err)
	}

	chunks := resp.ScoredChunks
	if len(chunks) > r.topK {
		chunks = chunks[:r.topK]
	}
	passages := make([]types.Passage, 0, len(chunks))
	for _, c := range chunks {
		source := c.DocumentName
		if source == "" {
			source = c.DocumentID
		}
		passages = append(passages, types.Passage{
			ID:       c.ID,
			Text:     c.Text,
			Score:    c.Score,
			Source:   source,
			Metadata: c.Metadata,
		})
	}

	logging.FromContext(ctx).DebugContext(ctx, "ragie passages",
		slog.String("query", query),
		slog.Int("top_k", r.topK),
		slog.Int("passages", len(passages)),
	)

	return types.RetrievedContext{Passages: passages, Raw: string(body)}, nil
}
