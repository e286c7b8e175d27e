// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/types"
)

// FailurePrefix starts every answer that reports a generation failure.
const FailurePrefix = "Sorry — I couldn't complete that request. Error: "

// ErrNoModel is reported when a [Generator] has no model to call.
var ErrNoModel = errors.New("no model configured")

// FormatFailure returns the user facing answer for a generation failure.
func FormatFailure(err error) types.Answer {
	if err == nil {
		err = errors.New("unknown error")
	}
	return FailurePrefix + err.Error()
}

// IsFailure reports whether answer reports a generation failure.
func IsFailure(answer types.Answer) bool {
	return strings.HasPrefix(answer, FailurePrefix)
}

// Generator generates answers from prompts with a fixed model and generation config.
type Generator struct {
	model  types.Model
	config types.GenerationConfig
}

var _ types.Generator = (*Generator)(nil)

// NewGenerator returns a new [Generator] calling m with config.
func NewGenerator(m types.Model, config types.GenerationConfig) *Generator {
	return &Generator{
		model:  m,
		config: config,
	}
}

// Model returns the underlying model.
func (g *Generator) Model() types.Model {
	return g.model
}

// Config returns a copy of the generation config.
func (g *Generator) Config() types.GenerationConfig {
	return g.config
}

// Generate implements [types.Generator].
//
// Errors, empty responses and panics of the model are returned as an answer built
// with [FormatFailure].
func (g *Generator) Generate(ctx context.Context, prompt *types.Prompt) (answer types.Answer) {
	logger := logging.FromContext(ctx)

	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "model panicked", slog.Any("panic", p))
			answer = FormatFailure(fmt.Errorf("panic: %v", p))
		}
	}()

	text, err := g.generate(ctx, prompt)
	if err != nil {
		logger.WarnContext(ctx, "generation failed", slog.Any("error", err))
		return FormatFailure(err)
	}

	return text
}

func (g *Generator) generate(ctx context.Context, prompt *types.Prompt) (string, error) {
	if g == nil || g.model == nil {
		return "", ErrNoModel
	}

	config := g.config
	req := types.NewLLMRequest(prompt.Messages(), types.WithGenerationConfig(&config))

	resp, err := g.model.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", types.ErrEmptyResponse
	}
	if resp.IsError() {
		return "", fmt.Errorf("%s: %s", resp.ErrorCode, resp.ErrorMessage)
	}

	text := resp.GetText()
	if strings.TrimSpace(text) == "" {
		return "", types.ErrEmptyResponse
	}

	logging.FromContext(ctx).DebugContext(ctx, "answer generated",
		slog.String("model", g.model.Name()),
		slog.String("finish_reason", resp.FinishReason),
		slog.Int("len", len(text)),
	)
	return text, nil
}
