// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/ragagent/model"
	"github.com/go-a2a/ragagent/types"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature         float32 `json:"temperature"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	Tools               []struct {
		Type string `json:"type"`
	} `json:"tools"`
}

func newGroqServer(t *testing.T, status int, reply string, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got, want := r.Header.Get("Authorization"), "Bearer gsk-test"; got != want {
			t.Errorf("Authorization = %q, want %q", got, want)
		}
		if got != nil {
			data, _ := io.ReadAll(r.Body)
			if err := sonic.Unmarshal(data, got); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const groqReply = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"model": "groq/compound",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello! How can I help?"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 12, "completion_tokens": 6, "total_tokens": 18}
}`

func TestGroq_GenerateContent(t *testing.T) {
	var got chatRequest
	srv := newGroqServer(t, http.StatusOK, groqReply, &got)

	m, err := model.NewGroq(t.Context(), "gsk-test", "", model.WithBaseURL(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewGroq: %v", err)
	}
	if m.Name() != model.GroqDefaultModel {
		t.Errorf("Name() = %q", m.Name())
	}

	temp := float32(0.2)
	req := types.NewLLMRequest(
		[]types.Message{
			types.SystemMessage("policy"),
			types.AssistantMessage("Here is the relevant context I found:\n\n"),
			types.AssistantMessage("**Conversation History:** []"),
			types.UserMessage("hi"),
		},
		types.WithGenerationConfig(&types.GenerationConfig{Temperature: &temp, MaxOutputTokens: 1024, WebSearch: true}),
	)
	resp, err := m.GenerateContent(t.Context(), req)
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if resp.IsError() {
		t.Fatalf("unexpected error response: %+v", resp)
	}
	if resp.GetText() != "Hello! How can I help?" || resp.FinishReason != "stop" {
		t.Errorf("response = %+v", resp)
	}

	var roles []string
	for _, msg := range got.Messages {
		roles = append(roles, msg.Role)
	}
	if diff := cmp.Diff([]string{"system", "assistant", "assistant", "user"}, roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	if got.Model != "groq/compound" || got.Temperature != 0.2 || got.MaxCompletionTokens != 1024 {
		t.Errorf("request = %+v", got)
	}
	if len(got.Tools) != 0 {
		t.Errorf("compound models search by themselves, got tools %+v", got.Tools)
	}
}

func TestGroq_BrowserSearchTool(t *testing.T) {
	var got chatRequest
	srv := newGroqServer(t, http.StatusOK, groqReply, &got)

	m, err := model.NewGroq(t.Context(), "gsk-test", "openai/gpt-oss-20b", model.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewGroq: %v", err)
	}
	req := types.NewLLMRequest(
		[]types.Message{types.UserMessage("latest news?")},
		types.WithGenerationConfig(&types.GenerationConfig{WebSearch: true}),
	)
	if _, err := m.GenerateContent(t.Context(), req); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if len(got.Tools) != 1 || got.Tools[0].Type != "browser_search" {
		t.Errorf("Tools = %+v, want browser_search", got.Tools)
	}
}

func TestGroq_Errors(t *testing.T) {
	tests := map[string]struct {
		status    int
		reply     string
		wantErr   bool
		wantError bool
	}{
		"rate limited": {
			status:  http.StatusTooManyRequests,
			reply:   `{"error":{"message":"rate limit","type":"rate_limit"}}`,
			wantErr: true,
		},
		"no choices": {
			status:    http.StatusOK,
			reply:     `{"id":"x","choices":[]}`,
			wantError: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := newGroqServer(t, tt.status, tt.reply, nil)
			m, err := model.NewGroq(t.Context(), "gsk-test", "", model.WithBaseURL(srv.URL))
			if err != nil {
				t.Fatalf("NewGroq: %v", err)
			}
			resp, err := m.GenerateContent(t.Context(), types.NewLLMRequest([]types.Message{types.UserMessage("q")}))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantError && (resp == nil || !resp.IsError()) {
				t.Errorf("expected error response, got %+v", resp)
			}
		})
	}
}

func TestNewGroq_MissingKey(t *testing.T) {
	t.Setenv(model.EnvGroqAPIKey, "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}))
	t.Cleanup(srv.Close)

	m, err := model.NewGroq(t.Context(), "", "", model.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewGroq without key should not fail: %v", err)
	}
	answer := model.NewGenerator(m, types.GenerationConfig{}).Generate(t.Context(), types.NewPrompt(types.UserMessage("hi")))
	if !model.IsFailure(answer) || !strings.Contains(answer, "Invalid API Key") {
		t.Errorf("Generate() = %q, want failure mentioning the API error", answer)
	}
}
