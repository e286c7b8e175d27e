// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/types"
)

// LlamaCloud defaults.
const (
	DefaultLlamaCloudBaseURL = "https://api.cloud.llamaindex.ai"
	DefaultLlamaCloudProject = "Default"
)

// ErrIndexNotFound is returned when no managed index matches the configured name.
var ErrIndexNotFound = errors.New("llamacloud: index not found")

// LlamaCloudParams are the hybrid retrieval parameters sent to the managed index.
type LlamaCloudParams struct {
	DenseTopK       int     `json:"dense_similarity_top_k"`
	SparseTopK      int     `json:"sparse_similarity_top_k"`
	Alpha           float64 `json:"alpha"`
	EnableReranking bool    `json:"enable_reranking"`
	RerankTopN      int     `json:"rerank_top_n"`
}

// DefaultLlamaCloudParams returns hybrid retrieval with 3 dense and 3 sparse candidates,
// an even blend and reranking down to 3 passages.
func DefaultLlamaCloudParams() LlamaCloudParams {
	return LlamaCloudParams{
		DenseTopK:       3,
		SparseTopK:      3,
		Alpha:           0.5,
		EnableReranking: true,
		RerankTopN:      3,
	}
}

// limit returns the maximum number of passages a retrieval may yield.
func (p LlamaCloudParams) limit() int {
	if p.EnableReranking && p.RerankTopN > 0 {
		return p.RerankTopN
	}
	return max(p.DenseTopK, p.SparseTopK)
}

// LlamaCloud retrieves passages from a LlamaCloud managed index.
type LlamaCloud struct {
	baseURL        string
	apiKey         string
	indexName      string
	projectName    string
	organizationID string
	params         LlamaCloudParams
	timeout        time.Duration
	httpClient     *http.Client
	client         *http.Client

	lookup     singleflight.Group
	mu         sync.RWMutex
	pipelineID string
}

var _ types.Retriever = (*LlamaCloud)(nil)

// LlamaCloudOption is a functional option for configuring [LlamaCloud].
type LlamaCloudOption func(*LlamaCloud)

// WithLlamaCloudBaseURL sets the API base URL.
func WithLlamaCloudBaseURL(baseURL string) LlamaCloudOption {
	return func(l *LlamaCloud) {
		l.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLlamaCloudProject sets the project the index belongs to.
func WithLlamaCloudProject(project string) LlamaCloudOption {
	return func(l *LlamaCloud) {
		l.projectName = project
	}
}

// WithLlamaCloudOrganization sets the organization the project belongs to.
func WithLlamaCloudOrganization(orgID string) LlamaCloudOption {
	return func(l *LlamaCloud) {
		l.organizationID = orgID
	}
}

// WithLlamaCloudParams sets the hybrid retrieval parameters.
func WithLlamaCloudParams(params LlamaCloudParams) LlamaCloudOption {
	return func(l *LlamaCloud) {
		l.params = params
	}
}

// WithLlamaCloudTimeout sets the per-request timeout.
func WithLlamaCloudTimeout(timeout time.Duration) LlamaCloudOption {
	return func(l *LlamaCloud) {
		l.timeout = timeout
	}
}

// WithLlamaCloudHTTPClient sets the underlying HTTP client.
func WithLlamaCloudHTTPClient(c *http.Client) LlamaCloudOption {
	return func(l *LlamaCloud) {
		l.httpClient = c
	}
}

// WithLlamaCloudPipelineID skips the index lookup and uses id directly.
func WithLlamaCloudPipelineID(id string) LlamaCloudOption {
	return func(l *LlamaCloud) {
		l.pipelineID = id
	}
}

// NewLlamaCloud creates a new [LlamaCloud] retriever for the index named indexName.
func NewLlamaCloud(ctx context.Context, apiKey, indexName string, opts ...LlamaCloudOption) *LlamaCloud {
	l := &LlamaCloud{
		baseURL:     DefaultLlamaCloudBaseURL,
		apiKey:      apiKey,
		indexName:   indexName,
		projectName: DefaultLlamaCloudProject,
		params:      DefaultLlamaCloudParams(),
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.client = newBearerClient(ctx, l.httpClient, l.apiKey, l.timeout)

	return l
}

// Name implements [types.Retriever].
func (l *LlamaCloud) Name() string { return "llamacloud" }

// Params returns the hybrid retrieval parameters.
func (l *LlamaCloud) Params() LlamaCloudParams { return l.params }

type llamaPipeline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PipelineID resolves the managed index name to its pipeline id.
//
// The id is looked up once and cached for the lifetime of l. Concurrent callers share one lookup.
func (l *LlamaCloud) PipelineID(ctx context.Context) (string, error) {
	l.mu.RLock()
	id := l.pipelineID
	l.mu.RUnlock()
	if id != "" {
		return id, nil
	}

	v, err, _ := l.lookup.Do(l.indexName, func() (any, error) {
		id, err := l.lookupPipelineID(ctx)
		if err != nil {
			return "", err
		}
		l.mu.Lock()
		l.pipelineID = id
		l.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (l *LlamaCloud) lookupPipelineID(ctx context.Context) (string, error) {
	if l.apiKey == "" {
		return "", fmt.Errorf("llamacloud: %w", ErrMissingAPIKey)
	}

	q := url.Values{}
	q.Set("pipeline_name", l.indexName)
	if l.projectName != "" {
		q.Set("project_name", l.projectName)
	}
	if l.organizationID != "" {
		q.Set("organization_id", l.organizationID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/api/v1/pipelines?"+q.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("llamacloud: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := do(l.client, l.Name(), req)
	if err != nil {
		return "", err
	}

	var pipelines []llamaPipeline
	if err := sonic.Unmarshal(body, &pipelines); err != nil {
		return "", fmt.Errorf("llamacloud: decode pipelines: %w", err)
	}
	for _, p := range pipelines {
		if p.ID != "" && (p.Name == "" || p.Name == l.indexName) {
			return p.ID, nil
		}
	}

	return "", fmt.Errorf("%w: %q in project %q", ErrIndexNotFound, l.indexName, l.projectName)
}

type llamaRetrieveRequest struct {
	Query string `json:"query"`
	LlamaCloudParams
	RetrievalMode string `json:"retrieval_mode"`
}

type llamaNode struct {
	ID       string         `json:"id_"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

type llamaScoredNode struct {
	Node  llamaNode `json:"node"`
	Score float64   `json:"score"`
}

type llamaRetrieveResponse struct {
	RetrievalNodes []llamaScoredNode `json:"retrieval_nodes"`
}

// Retrieve implements [types.Retriever].
func (l *LlamaCloud) Retrieve(ctx context.Context, query string) (types.RetrievedContext, error) {
	id, err := l.PipelineID(ctx)
	if err != nil {
		return types.RetrievedContext{}, err
	}

	payload, err := sonic.Marshal(llamaRetrieveRequest{
		Query:            query,
		LlamaCloudParams: l.params,
		RetrievalMode:    "chunks",
	})
	if err != nil {
		return types.RetrievedContext{}, fmt.Errorf("llamacloud: marshal request: %w", err)
	}

	endpoint := l.baseURL + "/api/v1/pipelines/" + url.PathEscape(id) + "/retrieve"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return types.RetrievedContext{}, fmt.Errorf("llamacloud: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := do(l.client, l.Name(), req)
	if err != nil {
		return types.RetrievedContext{}, err
	}

	var resp llamaRetrieveResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return types.RetrievedContext{}, fmt.Errorf("llamacloud: decode response: %w", err)
	}

	nodes := resp.RetrievalNodes
	if n := l.params.limit(); n > 0 && len(nodes) > n {
		nodes = nodes[:n]
	}
	passages := make([]types.Passage, 0, len(nodes))
	for _, n := range nodes {
		passages = append(passages, types.Passage{
			ID:       n.Node.ID,
			Text:     n.Node.Text,
			Score:    n.Score,
			Source:   sourceFromMetadata(n.Node.Metadata),
			Metadata: n.Node.Metadata,
		})
	}

	logging.FromContext(ctx).DebugContext(ctx, "llamacloud passages",
		slog.String("query", query),
		slog.String("pipeline_id", id),
		slog.Int("passages", len(passages)),
	)

	return types.RetrievedContext{Passages: passages}, nil
}

func sourceFromMetadata(md map[string]any) string {
	for _, key := range []string{"file_name", "document_name", "source"} {
		if v, ok := md[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
