// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"testing"

	"google.golang.org/api/option"
)

func TestCorpusResourceName(t *testing.T) {
	tests := map[string]struct {
		corpus string
		want   string
	}{
		"id":            {corpus: "123", want: "projects/p/locations/us-central1/ragCorpora/123"},
		"resource name": {corpus: "projects/other/locations/europe-west4/ragCorpora/9", want: "projects/other/locations/europe-west4/ragCorpora/9"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := corpusResourceName("p", "us-central1", tt.corpus); got != tt.want {
				t.Errorf("corpusResourceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewVertexAIRag(t *testing.T) {
	if _, err := NewVertexAIRag(t.Context(), "", "us-central1", "123"); err == nil {
		t.Error("expected error without project")
	}

	v, err := NewVertexAIRag(t.Context(), "p", "us-central1", "123",
		WithSimilarityTopK(5),
		WithVectorDistanceThreshold(0.3),
		WithVertexAIRagClientOptions(option.WithoutAuthentication(), option.WithEndpoint("localhost:0")),
	)
	if err != nil {
		t.Fatalf("NewVertexAIRag: %v", err)
	}
	defer v.Close()

	if v.similarityTopK != 5 || v.vectorDistanceThreshold != 0.3 {
		t.Errorf("options not applied: topK=%d threshold=%v", v.similarityTopK, v.vectorDistanceThreshold)
	}
	if got, want := v.CorpusName(), "projects/p/locations/us-central1/ragCorpora/123"; got != want {
		t.Errorf("CorpusName() = %q, want %q", got, want)
	}
}

func TestWithSimilarityTopK(t *testing.T) {
	tests := map[string]struct {
		topK int
		want int
	}{
		"positive": {topK: 4, want: 4},
		"zero":     {topK: 0, want: 1},
		"negative": {topK: -2, want: 1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v := &VertexAIRag{}
			WithSimilarityTopK(tt.topK)(v)
			if v.similarityTopK != tt.want {
				t.Errorf("similarityTopK = %d, want %d", v.similarityTopK, tt.want)
			}
		})
	}
}
