// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"context"
	"testing"

	"github.com/go-a2a/ragagent/model"
	"github.com/go-a2a/ragagent/types"
)

func TestRegistry_New(t *testing.T) {
	r := model.NewRegistry(2)

	var created string
	ctor := func(name string) model.Constructor {
		return func(_ context.Context, _, modelName string, _ ...model.Option) (types.Model, error) {
			created = name + ":" + modelName
			return nil, nil
		}
	}
	if err := r.Register("gemini", ctor("gemini"), `^gemini-.*`); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("groq", ctor("groq"), `^groq\/.*`, `^llama-.*`); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("broken", ctor("broken"), `(`); err == nil {
		t.Error("expected error for invalid pattern")
	}

	tests := map[string]struct {
		provider  model.Provider
		modelName string
		want      string
		wantErr   bool
	}{
		"pattern gemini":   {modelName: "gemini-2.0-flash", want: "gemini:gemini-2.0-flash"},
		"pattern groq":     {modelName: "groq/compound", want: "groq:groq/compound"},
		"pattern llama":    {modelName: "llama-3.3-70b-versatile", want: "groq:llama-3.3-70b-versatile"},
		"explicit":         {provider: "groq", modelName: "gemma2-9b-it", want: "groq:gemma2-9b-it"},
		"unknown model":    {modelName: "gpt-4o", wantErr: true},
		"unknown provider": {provider: "openai", modelName: "gpt-4o", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			created = ""
			_, err := r.New(t.Context(), tt.provider, "key", tt.modelName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New error = %v, wantErr %v", err, tt.wantErr)
			}
			if created != tt.want {
				t.Errorf("created = %q, want %q", created, tt.want)
			}
		})
	}

	// re-registration moves the pattern and drops cached lookups
	if err := r.Register("vertex", ctor("vertex"), `^gemini-.*`); err != nil {
		t.Fatal(err)
	}
	if p, err := r.ProviderFor("gemini-2.0-flash"); err != nil || p != "vertex" {
		t.Errorf("ProviderFor() = %q, %v, want vertex", p, err)
	}
	if _, err := r.New(t.Context(), "", "key", "gemini-2.0-flash"); err != nil {
		t.Fatal(err)
	}
	if created != "vertex:gemini-2.0-flash" {
		t.Errorf("created = %q after re-registration", created)
	}
}

func TestNewModel(t *testing.T) {
	tests := map[string]struct {
		provider  model.Provider
		modelName string
		wantName  string
		wantErr   bool
	}{
		"groq":             {provider: model.ProviderGroq, wantName: model.GroqDefaultModel},
		"claude":           {provider: model.ProviderClaude, modelName: "claude-3-5-haiku-latest", wantName: "claude-3-5-haiku-latest"},
		"gemini":           {provider: model.ProviderGemini, modelName: "gemini-2.0-flash", wantName: "gemini-2.0-flash"},
		"registry":         {modelName: "claude-3-7-sonnet-latest", wantName: "claude-3-7-sonnet-latest"},
		"unknown provider": {provider: "openai", wantErr: true},
		"unknown model":    {modelName: "gpt-4o", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := model.NewModel(t.Context(), tt.provider, "key", tt.modelName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewModel error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && m.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", m.Name(), tt.wantName)
			}
		})
	}
}
