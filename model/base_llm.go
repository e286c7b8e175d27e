// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-a2a/ragagent/types"
)

// BaseLLM holds the model name and transport settings shared by the model backends.
type BaseLLM struct {
	Config

	// modelName represents the specific LLM model name.
	modelName string
}

// NewBaseLLM returns the new [BaseLLM] with the specified model name.
func NewBaseLLM(modelName string, opts ...Option) *BaseLLM {
	llm := &BaseLLM{
		Config:    newConfig(),
		modelName: modelName,
	}
	for _, opt := range opts {
		llm.Config = opt.apply(llm.Config)
	}

	return llm
}

// Name returns the model name.
func (m *BaseLLM) Name() string {
	return m.modelName
}

// requestModel returns the model name to use for req.
func (m *BaseLLM) requestModel(req *types.LLMRequest) string {
	if req != nil && req.Model != "" {
		return req.Model
	}
	return m.modelName
}

// withTimeout derives a context bounded by the configured timeout.
func (m *BaseLLM) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}

// client returns the configured HTTP client or [http.DefaultClient].
func (m *BaseLLM) client() *http.Client {
	if m.httpClient != nil {
		return m.httpClient
	}
	return http.DefaultClient
}

// turn is a run of consecutive conversation messages sharing one role.
type turn struct {
	role  types.Role
	texts []string
}

// Continuation texts appended when a conversation does not end with a user turn.
const (
	emptyConversationText = `Handle the requests as specified in the System Instruction.`
	continuationText      = `Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.`
)

// conversationTurns merges the non-system messages of req into alternating turns that
// always end with a user turn. Assistant and model roles are normalized to [types.RoleAssistant].
func conversationTurns(req *types.LLMRequest) []turn {
	var turns []turn
	for _, msg := range req.Conversation() {
		role := types.RoleUser
		if r := strings.ToLower(msg.Role); r == types.RoleAssistant || r == types.RoleModel {
			role = types.RoleAssistant
		}
		if n := len(turns); n > 0 && turns[n-1].role == role {
			turns[n-1].texts = append(turns[n-1].texts, msg.Content)
			continue
		}
		turns = append(turns, turn{role: role, texts: []string{msg.Content}})
	}

	switch {
	case len(turns) == 0:
		turns = append(turns, turn{role: types.RoleUser, texts: []string{emptyConversationText}})
	case turns[len(turns)-1].role != types.RoleUser:
		turns = append(turns, turn{role: types.RoleUser, texts: []string{continuationText}})
	}

	return turns
}
