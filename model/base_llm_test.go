// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/ragagent/types"
)

func TestConversationTurns(t *testing.T) {
	tests := map[string]struct {
		msgs []types.Message
		want []turn
	}{
		"empty": {
			want: []turn{{role: types.RoleUser, texts: []string{emptyConversationText}}},
		},
		"system only": {
			msgs: []types.Message{types.SystemMessage("policy")},
			want: []turn{{role: types.RoleUser, texts: []string{emptyConversationText}}},
		},
		"merges consecutive roles": {
			msgs: []types.Message{
				types.SystemMessage("policy"),
				types.AssistantMessage("context"),
				{Role: types.RoleModel, Content: "history"},
				types.UserMessage("q"),
			},
			want: []turn{
				{role: types.RoleAssistant, texts: []string{"context", "history"}},
				{role: types.RoleUser, texts: []string{"q"}},
			},
		},
		"ends with assistant": {
			msgs: []types.Message{types.UserMessage("q"), types.AssistantMessage("a")},
			want: []turn{
				{role: types.RoleUser, texts: []string{"q"}},
				{role: types.RoleAssistant, texts: []string{"a"}},
				{role: types.RoleUser, texts: []string{continuationText}},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := conversationTurns(types.NewLLMRequest(tt.msgs))
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(turn{})); diff != "" {
				t.Errorf("conversationTurns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoogleSearchTool(t *testing.T) {
	tests := map[string]struct {
		model         string
		wantRetrieval bool
	}{
		"gemini 1.5":      {model: "gemini-1.5-flash", wantRetrieval: true},
		"gemini 2.0":      {model: "gemini-2.0-flash"},
		"vertex 1.5 path": {model: "projects/p/locations/l/publishers/google/models/gemini-1.5-pro", wantRetrieval: true},
		"vertex 2.5 path": {model: "projects/p/locations/l/publishers/google/models/gemini-2.5-pro"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tool := googleSearchTool(tt.model)
			if got := tool.GoogleSearchRetrieval != nil; got != tt.wantRetrieval {
				t.Errorf("GoogleSearchRetrieval set = %v, want %v", got, tt.wantRetrieval)
			}
			if got := tool.GoogleSearch != nil; got == tt.wantRetrieval {
				t.Errorf("GoogleSearch set = %v, want %v", got, !tt.wantRetrieval)
			}
		})
	}
}

func TestCreateLLMResponse(t *testing.T) {
	tests := map[string]struct {
		resp *genai.GenerateContentResponse
		want *types.LLMResponse
	}{
		"nil": {
			want: &types.LLMResponse{ErrorCode: "UNKNOWN_ERROR", ErrorMessage: "Generate content response is nil."},
		},
		"text": {
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content:      genai.NewContentFromText("hello", genai.RoleModel),
					FinishReason: genai.FinishReasonStop,
				}},
			},
			want: &types.LLMResponse{Text: "hello", FinishReason: "STOP"},
		},
		"no content": {
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					FinishReason:  genai.FinishReasonSafety,
					FinishMessage: "unsafe",
				}},
			},
			want: &types.LLMResponse{FinishReason: "SAFETY", ErrorCode: "SAFETY", ErrorMessage: "unsafe"},
		},
		"blocked prompt": {
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			want: &types.LLMResponse{ErrorCode: "SAFETY", ErrorMessage: "Content was blocked. Check prompt feedback for details."},
		},
		"empty": {
			resp: &genai.GenerateContentResponse{},
			want: &types.LLMResponse{ErrorCode: "UNKNOWN_ERROR", ErrorMessage: "Unknown error in generate content response."},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CreateLLMResponse(tt.resp)); diff != "" {
				t.Errorf("CreateLLMResponse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
