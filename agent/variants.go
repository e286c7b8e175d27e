// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"

	"github.com/go-a2a/ragagent/config"
	"github.com/go-a2a/ragagent/model"
	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/prompt"
	"github.com/go-a2a/ragagent/retrieval"
	"github.com/go-a2a/ragagent/types"
)

// New returns the agent variant selected by cfg.Variant.
//
// opts are applied after the configured backends, so they can replace any of them.
func New(cfg *config.Config, opts ...Option) (*Agent, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	switch cfg.Variant {
	case config.VariantGroq:
		return NewGroq(cfg, opts...)
	case config.VariantLlamaCloud:
		return NewLlamaCloud(cfg, opts...)
	default:
		return nil, fmt.Errorf("unknown variant %q", cfg.Variant)
	}
}

// NewGroq returns the agent that retrieves passages from Ragie and generates with Groq,
// unless cfg overrides the retriever or the generator.
func NewGroq(cfg *config.Config, opts ...Option) (*Agent, error) {
	c, err := variantConfig(cfg, config.VariantGroq)
	if err != nil {
		return nil, err
	}

	base := baseOptions(c)
	return NewAgent("groq_agent", append(base, opts...)...), nil
}

// NewLlamaCloud returns the agent that retrieves from a LlamaCloud managed index and generates
// with Gemini, unless cfg overrides the retriever or the generator.
//
// Each invocation first asks the index query engine for an answer, reported in
// [Response.IndexAnswer].
func NewLlamaCloud(cfg *config.Config, opts ...Option) (*Agent, error) {
	c, err := variantConfig(cfg, config.VariantLlamaCloud)
	if err != nil {
		return nil, err
	}

	base := append(baseOptions(c), WithQueryEngineFactory(queryEngineFactory(c)))
	return NewAgent("llamacloud_agent", append(base, opts...)...), nil
}

// variantConfig returns a validated copy of cfg set to variant.
func variantConfig(cfg *config.Config, variant string) (*config.Config, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := *cfg
	c.Variant = variant
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

func baseOptions(c *config.Config) []Option {
	return []Option{
		WithComposer(newComposer(c)),
		WithTimeout(c.Timeout),
		WithRetrieverFactory(retrieverFactory(c)),
		WithGeneratorFactory(generatorFactory(c)),
	}
}

func newComposer(c *config.Config) *prompt.Composer {
	return prompt.NewComposer(prompt.Organization{
		Name:      c.Organization.Name,
		ShortName: c.Organization.ShortName,
		Domain:    c.Organization.Domain,
	})
}

func retrieverFactory(c *config.Config) RetrieverFactory {
	return func(ctx context.Context) (types.Retriever, error) {
		switch name := c.RetrieverName(); name {
		case config.RetrieverRagie:
			return retrieval.NewRagie(ctx, c.Ragie.APIKey,
				retrieval.WithRagieBaseURL(c.Ragie.BaseURL),
				retrieval.WithRagieTopK(c.Ragie.TopK),
				retrieval.WithRagieTimeout(c.Ragie.Timeout),
			), nil

		case config.RetrieverLlamaCloud:
			return retrieval.NewLlamaCloud(ctx, c.LlamaCloud.APIKey, c.LlamaCloud.IndexName,
				retrieval.WithLlamaCloudBaseURL(c.LlamaCloud.BaseURL),
				retrieval.WithLlamaCloudProject(c.LlamaCloud.ProjectName),
				retrieval.WithLlamaCloudOrganization(c.LlamaCloud.OrganizationID),
				retrieval.WithLlamaCloudTimeout(c.LlamaCloud.Timeout),
				retrieval.WithLlamaCloudParams(retrieval.LlamaCloudParams{
					DenseTopK:       c.LlamaCloud.DenseTopK,
					SparseTopK:      c.LlamaCloud.SparseTopK,
					Alpha:           c.LlamaCloud.Alpha,
					EnableReranking: c.LlamaCloud.EnableRerank,
					RerankTopN:      c.LlamaCloud.RerankTopN,
				}),
			), nil

		case config.RetrieverVertexRAG:
			return retrieval.NewVertexAIRag(ctx, c.VertexRAG.Project, c.VertexRAG.Location, c.VertexRAG.Corpus,
				retrieval.WithSimilarityTopK(c.VertexRAG.TopK),
				retrieval.WithVectorDistanceThreshold(c.VertexRAG.VectorDistanceThreshold),
			)

		case config.RetrieverInMemory:
			return retrieval.NewInMemory(c.Memory.TopK, c.Memory.Passages...), nil

		default:
			return nil, fmt.Errorf("unknown retriever %q", name)
		}
	}
}

func generatorFactory(c *config.Config) GeneratorFactory {
	return func(ctx context.Context) (types.Generator, error) {
		m, gc, err := newModel(ctx, c, c.GeneratorName())
		if err != nil {
			return nil, err
		}
		return model.NewGenerator(m, gc), nil
	}
}

// newModel builds the model of provider and its generation config from c.
func newModel(ctx context.Context, c *config.Config, provider string) (types.Model, types.GenerationConfig, error) {
	var (
		apiKey, modelName string
		gc                types.GenerationConfig
	)
	opts := []model.Option{model.WithLogger(logging.FromContext(ctx))}
	switch provider {
	case config.ProviderGroq:
		apiKey, modelName = c.Groq.APIKey, c.Groq.Model
		gc = types.GenerationConfig{Temperature: &c.Groq.Temperature, MaxOutputTokens: c.Groq.MaxTokens, WebSearch: c.Groq.WebSearch}
		opts = append(opts, model.WithBaseURL(c.Groq.BaseURL), model.WithTimeout(c.Groq.Timeout))

	case config.ProviderGemini:
		apiKey, modelName = c.Gemini.APIKey, c.Gemini.Model
		gc = types.GenerationConfig{Temperature: &c.Gemini.Temperature, MaxOutputTokens: c.Gemini.MaxTokens, WebSearch: c.Gemini.WebSearch}
		opts = append(opts, geminiOptions(c)...)

	case config.ProviderClaude:
		apiKey, modelName = c.Claude.APIKey, c.Claude.Model
		gc = types.GenerationConfig{Temperature: &c.Claude.Temperature, MaxOutputTokens: c.Claude.MaxTokens}
		opts = append(opts, model.WithTimeout(c.Claude.Timeout))

	default:
		return nil, types.GenerationConfig{}, fmt.Errorf("unknown generator %q", provider)
	}

	m, err := model.NewModel(ctx, provider, apiKey, modelName, opts...)
	if err != nil {
		return nil, types.GenerationConfig{}, err
	}
	return m, gc, nil
}

func geminiOptions(c *config.Config) []model.Option {
	opts := []model.Option{model.WithTimeout(c.Gemini.Timeout)}
	if c.Gemini.Vertex {
		opts = append(opts, model.WithVertexAI(c.Gemini.Project, c.Gemini.Location))
	}
	return opts
}

// queryEngineFactory builds the index query engine over the invocation retriever with the Gemini query engine model.
func queryEngineFactory(c *config.Config) QueryEngineFactory {
	return func(ctx context.Context, r types.Retriever) (QueryEngine, error) {
		opts := append(geminiOptions(c), model.WithLogger(logging.FromContext(ctx)))
		m, err := model.NewModel(ctx, model.ProviderGemini, c.Gemini.APIKey, c.LlamaCloud.QueryEngineModel, opts...)
		if err != nil {
			return nil, fmt.Errorf("query engine model: %w", err)
		}
		return retrieval.NewQueryEngine(r, m,
			retrieval.WithQueryEngineComposer(newComposer(c)),
			retrieval.WithQueryEngineConfig(types.GenerationConfig{MaxOutputTokens: c.LlamaCloud.QueryEngineMaxTokens}),
		), nil
	}
}
