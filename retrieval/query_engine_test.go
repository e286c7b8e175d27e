// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-a2a/ragagent/retrieval"
	"github.com/go-a2a/ragagent/types"
)

type stubModel struct {
	resp *types.LLMResponse
	err  error
	got  *types.LLMRequest
}

func (m *stubModel) Name() string { return "stub" }

func (m *stubModel) GenerateContent(_ context.Context, req *types.LLMRequest) (*types.LLMResponse, error) {
	m.got = req
	return m.resp, m.err
}

func TestQueryEngine_Query(t *testing.T) {
	mem := retrieval.NewInMemory(3, types.Passage{Text: "School fees are paid online via the portal."})
	model := &stubModel{resp: &types.LLMResponse{Text: "Pay on the portal."}}
	qe := retrieval.NewQueryEngine(mem, model)

	history := types.History{
		types.UserMessage("hi"),
		types.AssistantMessage("Hello!"),
	}
	ans, err := qe.Query(t.Context(), "How are school fees paid?", history)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if ans.Answer != "Pay on the portal." {
		t.Errorf("Answer = %q", ans.Answer)
	}
	if got := len(ans.Context.Passages); got != 1 {
		t.Errorf("len(Context.Passages) = %d, want 1", got)
	}

	req := model.got
	if req == nil {
		t.Fatal("model was not called")
	}
	if got := len(req.Messages); got != 2 {
		t.Fatalf("len(Messages) = %d, want 2", got)
	}
	if sys := req.SystemInstruction(); !strings.Contains(sys, `"content":"Hello!"`) {
		t.Errorf("system instruction should embed the history, got:\n%s", sys)
	}
	user := req.Messages[1]
	if user.Role != types.RoleUser {
		t.Errorf("Role = %q, want user", user.Role)
	}
	for _, want := range []string{"School fees are paid online via the portal.", "Query: How are school fees paid?"} {
		if !strings.Contains(user.Content, want) {
			t.Errorf("user message missing %q:\n%s", want, user.Content)
		}
	}
	if got := req.GenerationConfig().MaxOutputTokens; got != retrieval.DefaultQueryEngineMaxTokens {
		t.Errorf("MaxOutputTokens = %d, want %d", got, retrieval.DefaultQueryEngineMaxTokens)
	}
}

func TestQueryEngine_Errors(t *testing.T) {
	mem := retrieval.NewInMemory(1, types.Passage{Text: "fees"})
	failing := funcRetriever(func(context.Context, string) (types.RetrievedContext, error) {
		return types.RetrievedContext{}, errors.New("index offline")
	})

	tests := map[string]struct {
		retriever types.Retriever
		model     types.Model
		wantErr   error
	}{
		"retriever error": {
			retriever: failing,
			model:     &stubModel{resp: &types.LLMResponse{Text: "x"}},
		},
		"model error": {
			retriever: mem,
			model:     &stubModel{err: errors.New("quota exceeded")},
		},
		"error response": {
			retriever: mem,
			model:     &stubModel{resp: &types.LLMResponse{ErrorCode: "SAFETY", ErrorMessage: "blocked"}},
		},
		"empty answer": {
			retriever: mem,
			model:     &stubModel{resp: &types.LLMResponse{Text: "  "}},
			wantErr:   types.ErrEmptyResponse,
		},
		"nil response": {
			retriever: mem,
			model:     &stubModel{},
			wantErr:   types.ErrEmptyResponse,
		},
		"missing model": {
			retriever: mem,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			qe := retrieval.NewQueryEngine(tt.retriever, tt.model)
			ans, err := qe.Query(t.Context(), "fees", nil)
			if err == nil {
				t.Fatalf("expected error, got answer %+v", ans)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
