// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the agent configuration from a YAML file, a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-a2a/ragagent/types"
)

// Variant names.
const (
	VariantGroq       = "groq"
	VariantLlamaCloud = "llamacloud"
)

// Retriever names.
const (
	RetrieverRagie      = "ragie"
	RetrieverLlamaCloud = "llamacloud"
	RetrieverVertexRAG  = "vertexrag"
	RetrieverInMemory   = "memory"
)

// Generator provider names.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// Config is the root agent configuration.
type Config struct {
	// Variant selects the backend preset: "groq" or "llamacloud".
	Variant string `yaml:"variant"`

	// Retriever overrides the retriever of the variant when set.
	Retriever string `yaml:"retriever,omitempty"`

	// Generator overrides the generator provider of the variant when set.
	Generator string `yaml:"generator,omitempty"`

	// Timeout bounds one whole invocation. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`

	Organization OrganizationConfig `yaml:"organization"`
	Ragie        RagieConfig        `yaml:"ragie"`
	LlamaCloud   LlamaCloudConfig   `yaml:"llamacloud"`
	VertexRAG    VertexRAGConfig    `yaml:"vertex_rag"`
	Memory       MemoryConfig       `yaml:"memory"`
	Groq         GroqConfig         `yaml:"groq"`
	Gemini       GeminiConfig       `yaml:"gemini"`
	Claude       ClaudeConfig       `yaml:"claude"`
	Log          LogConfig          `yaml:"log"`
}

// OrganizationConfig names the organisation the assistant speaks for.
type OrganizationConfig struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	Domain    string `yaml:"domain"`
}

// RagieConfig configures the passage retrieval service.
type RagieConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"-"`
	TopK    int           `yaml:"top_k"`
	Timeout time.Duration `yaml:"timeout"`
}

// LlamaCloudConfig configures the managed vector index.
type LlamaCloudConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"-"`
	OrganizationID string        `yaml:"organization_id"`
	IndexName      string        `yaml:"index_name"`
	ProjectName    string        `yaml:"project_name"`
	DenseTopK      int           `yaml:"dense_similarity_top_k"`
	SparseTopK     int           `yaml:"sparse_similarity_top_k"`
	Alpha          float64       `yaml:"alpha"`
	EnableRerank   bool          `yaml:"enable_reranking"`
	RerankTopN     int           `yaml:"rerank_top_n"`
	Timeout        time.Duration `yaml:"timeout"`

	// QueryEngineMaxTokens caps the index query engine answer.
	QueryEngineMaxTokens int32 `yaml:"query_engine_max_tokens"`

	// QueryEngineModel is the Gemini model used by the index query engine.
	QueryEngineModel string `yaml:"query_engine_model"`
}

// VertexRAGConfig configures the Vertex AI RAG Engine retriever.
type VertexRAGConfig struct {
	Project                 string  `yaml:"project"`
	Location                string  `yaml:"location"`
	Corpus                  string  `yaml:"corpus"`
	TopK                    int     `yaml:"top_k"`
	VectorDistanceThreshold float64 `yaml:"vector_distance_threshold"`
}

// MemoryConfig configures the in-memory keyword retriever.
type MemoryConfig struct {
	TopK     int             `yaml:"top_k"`
	Passages []types.Passage `yaml:"passages"`
}

// GroqConfig configures the OpenAI compatible chat completion generator.
type GroqConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"-"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int32         `yaml:"max_tokens"`
	WebSearch   bool          `yaml:"web_search"`
	Timeout     time.Duration `yaml:"timeout"`
}

// GeminiConfig configures the Gemini generator.
type GeminiConfig struct {
	APIKey      string        `yaml:"-"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int32         `yaml:"max_tokens"`
	WebSearch   bool          `yaml:"web_search"`
	Timeout     time.Duration `yaml:"timeout"`

	// Vertex selects the Vertex AI backend with detected credentials instead of an API key.
	Vertex   bool   `yaml:"vertex"`
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

// ClaudeConfig configures the Anthropic generator.
type ClaudeConfig struct {
	APIKey      string        `yaml:"-"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int32         `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Variant: VariantGroq,
		Timeout: 2 * time.Minute,
		Organization: OrganizationConfig{
			Name:      "Petroleum Training Institute",
			ShortName: "PTI",
			Domain:    "pti.edu.ng",
		},
		Ragie: RagieConfig{
			BaseURL: "https://api.ragie.ai",
			TopK:    1,
			Timeout: 30 * time.Second,
		},
		LlamaCloud: LlamaCloudConfig{
			BaseURL:              "https://api.cloud.llamaindex.ai",
			IndexName:            "pti_data",
			ProjectName:          "Default",
			DenseTopK:            3,
			SparseTopK:           3,
			Alpha:                0.5,
			EnableRerank:         true,
			RerankTopN:           3,
			Timeout:              30 * time.Second,
			QueryEngineMaxTokens: 512,
			QueryEngineModel:     "gemini-2.0-flash",
		},
		VertexRAG: VertexRAGConfig{
			Location:                "us-central1",
			TopK:                    3,
			VectorDistanceThreshold: 0.7,
		},
		Memory: MemoryConfig{
			TopK: 3,
		},
		Groq: GroqConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "groq/compound",
			Temperature: 0.2,
			MaxTokens:   1024,
			WebSearch:   true,
			Timeout:     60 * time.Second,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-1.5-flash",
			Temperature: 0.1,
			MaxTokens:   500,
			WebSearch:   false,
			Timeout:     60 * time.Second,
			Location:    "us-central1",
		},
		Claude: ClaudeConfig{
			Model:       "claude-3-5-haiku-latest",
			Temperature: 0.2,
			MaxTokens:   1024,
			Timeout:     60 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a config from path on top of [Default].
//
// If the file does not exist, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// RetrieverName returns the effective retriever name.
func (c *Config) RetrieverName() string {
	if c.Retriever != "" {
		return c.Retriever
	}
	if c.Variant == VariantLlamaCloud {
		return RetrieverLlamaCloud
	}
	return RetrieverRagie
}

// GeneratorName returns the effective generator provider name.
func (c *Config) GeneratorName() string {
	if c.Generator != "" {
		return c.Generator
	}
	if c.Variant == VariantLlamaCloud {
		return ProviderGemini
	}
	return ProviderGroq
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Variant {
	case VariantGroq, VariantLlamaCloud:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	switch r := c.RetrieverName(); r {
	case RetrieverRagie, RetrieverLlamaCloud, RetrieverVertexRAG, RetrieverInMemory:
	default:
		return fmt.Errorf("unknown retriever %q", r)
	}
	switch g := c.GeneratorName(); g {
	case ProviderGroq, ProviderGemini, ProviderClaude:
	default:
		return fmt.Errorf("unknown generator %q", g)
	}

	if c.Ragie.TopK < 1 {
		return fmt.Errorf("ragie.top_k must be positive, got %d", c.Ragie.TopK)
	}
	if c.LlamaCloud.DenseTopK < 1 || c.LlamaCloud.SparseTopK < 1 || c.LlamaCloud.RerankTopN < 1 {
		return errors.New("llamacloud top-k settings must be positive")
	}
	if c.LlamaCloud.Alpha < 0 || c.LlamaCloud.Alpha > 1 {
		return fmt.Errorf("llamacloud.alpha must be within [0, 1], got %v", c.LlamaCloud.Alpha)
	}
	if c.VertexRAG.TopK < 1 {
		return fmt.Errorf("vertex_rag.top_k must be positive, got %d", c.VertexRAG.TopK)
	}
	if c.Memory.TopK < 1 {
		return fmt.Errorf("memory.top_k must be positive, got %d", c.Memory.TopK)
	}

	for name, temp := range map[string]float32{
		"groq":   c.Groq.Temperature,
		"gemini": c.Gemini.Temperature,
		"claude": c.Claude.Temperature,
	} {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("%s.temperature must be within [0, 2], got %v", name, temp)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}

	return nil
}
