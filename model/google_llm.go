// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/go-a2a/ragagent/types"
)

const (
	// GeminiLLMDefaultModel is the default model name for [Gemini].
	GeminiLLMDefaultModel = "gemini-1.5-flash"

	// EnvGoogleAPIKey is the environment variable name for the Google AI API key.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
)

// Gemini represents a Google Gemini Large Language Model.
type Gemini struct {
	*BaseLLM

	genAIClient *genai.Client
}

var _ types.Model = (*Gemini)(nil)

// NewGemini creates a new [Gemini] instance.
//
// Without [WithVertexAI], apiKey authenticates against the Gemini API and falls back to the
// [EnvGoogleAPIKey] environment variable.
func NewGemini(ctx context.Context, apiKey, modelName string, opts ...Option) (*Gemini, error) {
	if modelName == "" {
		modelName = GeminiLLMDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)

	cc := &genai.ClientConfig{
		HTTPClient: base.httpClient,
	}
	if base.baseURL != "" {
		cc.HTTPOptions.BaseURL = base.baseURL
	}

	if base.project != "" {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		if err != nil {
			return nil, fmt.Errorf("detect credentials for Vertex AI: %w", err)
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = base.project
		cc.Location = base.location
		cc.Credentials = creds
	} else {
		if apiKey == "" {
			apiKey = os.Getenv(EnvGoogleAPIKey)
		}
		if apiKey == "" {
			return nil, fmt.Errorf("either apiKey arg or %q environment variable must be set", EnvGoogleAPIKey)
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = apiKey
	}

	genAIClient, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{
		BaseLLM:     base,
		genAIClient: genAIClient,
	}, nil
}

// SupportedModels returns a list of supported Gemini models.
//
// See https://ai.google.dev/gemini-api/docs/models.
func (m *Gemini) SupportedModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-flash",
		"gemini-1.5-flash-8b",
		"gemini-1.5-pro",
	}
}

// GenerateContent implements [types.Model].
func (m *Gemini) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	modelName := m.requestModel(request)
	config := m.generateContentConfig(modelName, request)
	contents := toGenAIContents(conversationTurns(request))

	resp, err := m.genAIClient.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	llmResp := CreateLLMResponse(resp)
	m.logger.DebugContext(ctx, "gemini response",
		slog.String("model", modelName),
		slog.String("finish_reason", llmResp.FinishReason),
		slog.Bool("grounded", llmResp.Grounded),
		slog.String("text", llmResp.Text),
	)

	return llmResp, nil
}

func (m *Gemini) generateContentConfig(modelName string, request *types.LLMRequest) *genai.GenerateContentConfig {
	gc := request.GenerationConfig()
	config := &genai.GenerateContentConfig{
		Temperature:     gc.Temperature,
		MaxOutputTokens: gc.MaxOutputTokens,
	}
	if sys := request.SystemInstruction(); sys != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(sys)},
		}
	}
	if gc.WebSearch {
		config.Tools = append(config.Tools, googleSearchTool(modelName))
	}

	return config
}

// googleSearchTool returns the Google Search grounding tool supported by modelName.
//
// Gemini 1.x models only support search retrieval. Later models use the built-in search tool.
func googleSearchTool(modelName string) *genai.Tool {
	name := modelName
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if strings.HasPrefix(name, "gemini-1") {
		return &genai.Tool{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}}
	}
	return &genai.Tool{GoogleSearch: &genai.GoogleSearch{}}
}

// toGenAIContents converts conversation turns to genai contents, mapping the assistant role to "model".
func toGenAIContents(turns []turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.RoleUser
		if t.role == types.RoleAssistant {
			role = genai.RoleModel
		}
		parts := make([]*genai.Part, 0, len(t.texts))
		for _, text := range t.texts {
			parts = append(parts, genai.NewPartFromText(text))
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents
}
