// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/ragagent/model"
	"github.com/go-a2a/ragagent/types"
)

type stubModel struct {
	generate func(ctx context.Context, req *types.LLMRequest) (*types.LLMResponse, error)
	got      *types.LLMRequest
}

func (m *stubModel) Name() string { return "stub" }

func (m *stubModel) GenerateContent(ctx context.Context, req *types.LLMRequest) (*types.LLMResponse, error) {
	m.got = req
	return m.generate(ctx, req)
}

func TestGenerator_Generate(t *testing.T) {
	temp := float32(0.2)
	config := types.GenerationConfig{Temperature: &temp, MaxOutputTokens: 1024, WebSearch: true}
	m := &stubModel{
		generate: func(context.Context, *types.LLMRequest) (*types.LLMResponse, error) {
			return &types.LLMResponse{Text: "Hello! How can I help you today?"}, nil
		},
	}
	g := model.NewGenerator(m, config)

	p := types.NewPrompt(types.SystemMessage("policy"), types.UserMessage("hi"))
	answer := g.Generate(t.Context(), p)
	if answer != "Hello! How can I help you today?" {
		t.Errorf("Generate() = %q", answer)
	}
	if model.IsFailure(answer) {
		t.Error("successful answer reported as failure")
	}

	if diff := cmp.Diff(p.Messages(), m.got.Messages); diff != "" {
		t.Errorf("request messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(config, m.got.GenerationConfig()); diff != "" {
		t.Errorf("generation config mismatch (-want +got):\n%s", diff)
	}
	if g.Model() != m {
		t.Error("Model() should return the wrapped model")
	}
}

func TestGenerator_Failures(t *testing.T) {
	tests := map[string]struct {
		model      types.Model
		wantDetail string
	}{
		"model error": {
			model: &stubModel{generate: func(context.Context, *types.LLMRequest) (*types.LLMResponse, error) {
				return nil, errors.New("401 invalid api key")
			}},
			wantDetail: "401 invalid api key",
		},
		"error response": {
			model: &stubModel{generate: func(context.Context, *types.LLMRequest) (*types.LLMResponse, error) {
				return &types.LLMResponse{ErrorCode: "SAFETY", ErrorMessage: "blocked"}, nil
			}},
			wantDetail: "SAFETY: blocked",
		},
		"empty text": {
			model: &stubModel{generate: func(context.Context, *types.LLMRequest) (*types.LLMResponse, error) {
				return &types.LLMResponse{Text: " \n"}, nil
			}},
			wantDetail: types.ErrEmptyResponse.Error(),
		},
		"nil response": {
			model: &stubModel{generate: func(context.Context, *types.LLMRequest) (*types.LLMResponse, error) {
				return nil, nil
			}},
			wantDetail: types.ErrEmptyResponse.Error(),
		},
		"panic": {
			model: &stubModel{generate: func(context.Context, *types.LLMRequest) (*types.LLMResponse, error) {
				panic("boom")
			}},
			wantDetail: "panic: boom",
		},
		"no model": {
			wantDetail: model.ErrNoModel.Error(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := model.NewGenerator(tt.model, types.GenerationConfig{})
			answer := g.Generate(t.Context(), types.NewPrompt(types.UserMessage("q")))
			if !model.IsFailure(answer) {
				t.Fatalf("Generate() = %q, want failure answer", answer)
			}
			if !strings.HasSuffix(answer, tt.wantDetail) {
				t.Errorf("Generate() = %q, want detail %q", answer, tt.wantDetail)
			}
		})
	}
}

func TestFormatFailure(t *testing.T) {
	if got, want := model.FormatFailure(errors.New("timeout")), "Sorry — I couldn't complete that request. Error: timeout"; got != want {
		t.Errorf("FormatFailure() = %q, want %q", got, want)
	}
	if got := model.FormatFailure(nil); !model.IsFailure(got) {
		t.Errorf("FormatFailure(nil) = %q", got)
	}
}
