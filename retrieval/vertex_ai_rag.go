// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"

	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/types"
)

// cloudPlatformScope is the OAuth2 scope required by the Vertex AI RAG Engine.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// VertexAIRag retrieves passages from a Vertex AI RAG Engine corpus.
type VertexAIRag struct {
	client                  *aiplatform.VertexRagClient
	project                 string
	location                string
	ragCorpus               string
	similarityTopK          int
	vectorDistanceThreshold float64
	clientOpts              []option.ClientOption
}

var _ types.Retriever = (*VertexAIRag)(nil)

// VertexAIRagOption is a functional option for configuring [VertexAIRag].
type VertexAIRagOption func(*VertexAIRag)

// WithSimilarityTopK sets the number of top passages to return. Values below 1 are raised to 1.
func WithSimilarityTopK(topK int) VertexAIRagOption {
	return func(v *VertexAIRag) {
		v.similarityTopK = max(topK, 1)
	}
}

// WithVectorDistanceThreshold sets the maximum vector distance of a returned passage.
func WithVectorDistanceThreshold(threshold float64) VertexAIRagOption {
	return func(v *VertexAIRag) {
		v.vectorDistanceThreshold = threshold
	}
}

// WithVertexAIRagClientOptions appends client options, replacing credential detection when any is given.
func WithVertexAIRagClientOptions(opts ...option.ClientOption) VertexAIRagOption {
	return func(v *VertexAIRag) {
		v.clientOpts = append(v.clientOpts, opts...)
	}
}

// NewVertexAIRag creates a new [VertexAIRag] retriever over ragCorpus.
//
// ragCorpus is either a corpus id or a full "projects/.../ragCorpora/..." resource name.
func NewVertexAIRag(ctx context.Context, project, location, ragCorpus string, opts ...VertexAIRagOption) (*VertexAIRag, error) {
	if project == "" || location == "" || ragCorpus == "" {
		return nil, errors.New("vertex ai rag: project, location and corpus are required")
	}

	v := &VertexAIRag{
		project:                 project,
		location:                location,
		ragCorpus:               ragCorpus,
		similarityTopK:          3,
		vectorDistanceThreshold: 0.7,
	}
	for _, opt := range opts {
		opt(v)
	}

	clientOpts := v.clientOpts
	if len(clientOpts) == 0 {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{cloudPlatformScope},
		})
		if err != nil {
			return nil, fmt.Errorf("vertex ai rag: detect credentials: %w", err)
		}
		clientOpts = []option.ClientOption{
			option.WithAuthCredentials(creds),
			option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)),
		}
	}

	client, err := aiplatform.NewVertexRagClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("vertex ai rag: create client: %w", err)
	}
	v.client = client

	return v, nil
}

// Name implements [types.Retriever].
func (v *VertexAIRag) Name() string { return "vertexrag" }

// CorpusName returns the full resource name of the corpus.
func (v *VertexAIRag) CorpusName() string {
	return corpusResourceName(v.project, v.location, v.ragCorpus)
}

func corpusResourceName(project, location, corpus string) string {
	if strings.HasPrefix(corpus, "projects/") {
		return corpus
	}
	return fmt.Sprintf("projects/%s/locations/%s/ragCorpora/%s", project, location, corpus)
}

// Retrieve implements [types.Retriever].
func (v *VertexAIRag) Retrieve(ctx context.Context, query string) (types.RetrievedContext, error) {
	threshold := v.vectorDistanceThreshold
	req := &aiplatformpb.RetrieveContextsRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s", v.project, v.location),
		Query: &aiplatformpb.RagQuery{
			Query: &aiplatformpb.RagQuery_Text{
				Text: query,
			},
			SimilarityTopK: int32(v.similarityTopK),
		},
		DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
			VertexRagStore: &aiplatformpb.RetrieveContextsRequest_VertexRagStore{
				RagResources: []*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
					{RagCorpus: v.CorpusName()},
				},
				VectorDistanceThreshold: &threshold,
			},
		},
	}

	resp, err := v.client.RetrieveContexts(ctx, req)
	if err != nil {
		return types.RetrievedContext{}, fmt.Errorf("vertex ai rag: retrieve contexts: %w", err)
	}

	contexts := resp.GetContexts().GetContexts()
	if len(contexts) > v.similarityTopK {
		contexts = contexts[:v.similarityTopK]
	}
	passages := make([]types.Passage, 0, len(contexts))
	for _, c := range contexts {
		source := c.GetSourceDisplayName()
		if source == "" {
			source = c.GetSourceUri()
		}
		p := types.Passage{
			Text:   c.GetText(),
			Score:  c.GetDistance(),
			Source: source,
		}
		if uri := c.GetSourceUri(); uri != "" {
			p.Metadata = map[string]any{"source_uri": uri}
		}
		passages = append(passages, p)
	}

	logging.FromContext(ctx).DebugContext(ctx, "vertex ai rag passages",
		slog.String("query", query),
		slog.String("rag_corpus", v.CorpusName()),
		slog.Int("passages", len(passages)),
	)

	return types.RetrievedContext{Passages: passages}, nil
}

// Close closes the underlying client.
func (v *VertexAIRag) Close() error {
	if v.client == nil {
		return nil
	}
	return v.client.Close()
}
