// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/go-a2a/ragagent/types"
)

const (
	// GroqDefaultModel is the default model name for [Groq].
	//
	// Compound models search the web by themselves when the question needs fresh information.
	GroqDefaultModel = "groq/compound"

	// GroqDefaultBaseURL is the OpenAI compatible endpoint of Groq.
	GroqDefaultBaseURL = "https://api.groq.com/openai/v1"

	// EnvGroqAPIKey is the environment variable name for the Groq API key.
	EnvGroqAPIKey = "GROQ_API_KEY"
)

// browserSearchTool is the Groq built-in web search tool of the GPT-OSS models.
const browserSearchTool openai.ToolType = "browser_search"

// Groq represents a model served by the Groq chat completion API.
type Groq struct {
	*BaseLLM

	client *openai.Client
}

var _ types.Model = (*Groq)(nil)

// NewGroq creates a new [Groq] instance.
//
// apiKey falls back to the [EnvGroqAPIKey] environment variable. A missing key does not fail
// construction; the API rejects the calls instead.
func NewGroq(ctx context.Context, apiKey, modelName string, opts ...Option) (*Groq, error) {
	if modelName == "" {
		modelName = GroqDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)

	if apiKey == "" {
		apiKey = os.Getenv(EnvGroqAPIKey)
	}
	if apiKey == "" {
		base.logger.WarnContext(ctx, "groq API key is not set", slog.String("env", EnvGroqAPIKey))
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = GroqDefaultBaseURL
	if base.baseURL != "" {
		cfg.BaseURL = strings.TrimRight(base.baseURL, "/")
	}
	cfg.HTTPClient = base.client()

	return &Groq{
		BaseLLM: base,
		client:  openai.NewClientWithConfig(cfg),
	}, nil
}

// SearchCapable reports whether modelName can search the web, either by itself or
// through the browser search tool.
func (m *Groq) SearchCapable(modelName string) bool {
	return strings.HasPrefix(modelName, "groq/compound") || strings.HasPrefix(modelName, "openai/gpt-oss")
}

// GenerateContent implements [types.Model].
func (m *Groq) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	modelName := m.requestModel(request)
	gc := request.GenerationConfig()

	req := openai.ChatCompletionRequest{
		Model:               modelName,
		Messages:            toOpenAIMessages(request.Messages),
		MaxCompletionTokens: int(gc.MaxOutputTokens),
	}
	if gc.Temperature != nil {
		req.Temperature = *gc.Temperature
	}
	if gc.WebSearch {
		switch {
		case strings.HasPrefix(modelName, "openai/gpt-oss"):
			req.Tools = append(req.Tools, openai.Tool{Type: browserSearchTool})
		case !m.SearchCapable(modelName):
			m.logger.DebugContext(ctx, "web search requested but not supported by model", slog.String("model", modelName))
		}
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("groq API error: %w", err)
	}

	llmResp := &types.LLMResponse{}
	if len(resp.Choices) == 0 {
		llmResp.ErrorCode = "NO_CHOICES"
		llmResp.ErrorMessage = "Chat completion response has no choices."
		return llmResp, nil
	}
	choice := resp.Choices[0]
	llmResp.Text = choice.Message.Content
	llmResp.FinishReason = string(choice.FinishReason)
	if choice.FinishReason == openai.FinishReasonContentFilter && llmResp.Text == "" {
		llmResp.ErrorCode = string(choice.FinishReason)
		llmResp.ErrorMessage = "Content was blocked by the content filter."
	}

	m.logger.DebugContext(ctx, "groq response",
		slog.String("model", resp.Model),
		slog.String("finish_reason", llmResp.FinishReason),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
		slog.String("text", llmResp.Text),
	)

	return llmResp, nil
}

// toOpenAIMessages keeps the prompt entries as they are, one chat message per entry.
func toOpenAIMessages(msgs []types.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, msg := range msgs {
		role := openai.ChatMessageRoleUser
		switch strings.ToLower(msg.Role) {
		case types.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case types.RoleAssistant, types.RoleModel:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return out
}
