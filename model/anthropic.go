// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/go-a2a/ragagent/types"
)

const (
	// ClaudeDefaultModel is the default model name for [Claude].
	ClaudeDefaultModel = anthropic.ModelClaude3_5HaikuLatest

	// ClaudeDefaultMaxTokens is used when the request does not cap the output.
	ClaudeDefaultMaxTokens = 1024

	// EnvAnthropicAPIKey is the environment variable name for the Anthropic API key.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Claude represents a Claude Large Language Model.
type Claude struct {
	*BaseLLM

	anthropicClient anthropic.Client
}

var _ types.Model = (*Claude)(nil)

// NewClaude creates a new Claude LLM instance.
//
// apiKey falls back to the [EnvAnthropicAPIKey] environment variable.
func NewClaude(_ context.Context, apiKey, modelName string, opts ...Option) (*Claude, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAnthropicAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("either apiKey arg or %q environment variable must be set", EnvAnthropicAPIKey)
	}
	if modelName == "" {
		modelName = string(ClaudeDefaultModel)
	}
	base := NewBaseLLM(modelName, opts...)

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(base.client()),
	}
	if base.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(base.baseURL))
	}

	return &Claude{
		BaseLLM:         base,
		anthropicClient: anthropic.NewClient(clientOpts...),
	}, nil
}

// SupportedModels returns a list of supported Claude models.
func (m *Claude) SupportedModels() []string {
	return []string{
		anthropic.ModelClaude3_7SonnetLatest,
		anthropic.ModelClaude3_5HaikuLatest,
		anthropic.ModelClaude3_5SonnetLatest,
		anthropic.ModelClaude3OpusLatest,
	}
}

// GenerateContent implements [types.Model].
//
// Web search is not requested from Claude; the system instruction still tells the model
// where to direct the user for real-time information.
func (m *Claude) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	modelName := m.requestModel(request)
	gc := request.GenerationConfig()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		Messages:  toClaudeMessages(conversationTurns(request)),
		MaxTokens: ClaudeDefaultMaxTokens,
	}
	if gc.MaxOutputTokens > 0 {
		params.MaxTokens = int64(gc.MaxOutputTokens)
	}
	if gc.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*gc.Temperature))
	}
	if sys := request.SystemInstruction(); sys != "" {
		params.System = []anthropic.TextBlockParam{{Text: sys}}
	}

	message, err := m.anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	llmResp := claudeMessageToLLMResponse(message)
	m.logger.DebugContext(ctx, "claude response",
		slog.String("model", modelName),
		slog.String("stop_reason", llmResp.FinishReason),
		slog.Int64("input_tokens", message.Usage.InputTokens),
		slog.Int64("output_tokens", message.Usage.OutputTokens),
		slog.String("text", llmResp.Text),
	)

	return llmResp, nil
}

// toClaudeMessages converts conversation turns to Anthropic messages.
//
// Claude requires the conversation to start with a user turn.
func toClaudeMessages(turns []turn) []anthropic.MessageParam {
	if len(turns) > 0 && turns[0].role != types.RoleUser {
		turns = append([]turn{{role: types.RoleUser, texts: []string{emptyConversationText}}}, turns...)
	}

	msgs := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(t.texts))
		for _, text := range t.texts {
			if strings.TrimSpace(text) == "" {
				continue
			}
			blocks = append(blocks, anthropic.NewTextBlock(text))
		}
		if len(blocks) == 0 {
			blocks = append(blocks, anthropic.NewTextBlock(continuationText))
		}
		if t.role == types.RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(blocks...))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(blocks...))
		}
	}
	return msgs
}

func claudeMessageToLLMResponse(message *anthropic.Message) *types.LLMResponse {
	resp := &types.LLMResponse{}
	if message == nil {
		resp.ErrorCode = "UNKNOWN_ERROR"
		resp.ErrorMessage = "Message response is nil."
		return resp
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	resp.Text = sb.String()
	resp.FinishReason = string(message.StopReason)
	if message.StopReason == "refusal" && resp.Text == "" {
		resp.ErrorCode = string(message.StopReason)
		resp.ErrorMessage = "The model refused to answer."
	}

	return resp
}
