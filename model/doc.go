// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model provides the hosted language model backends and the [Generator] that turns
// a composed prompt into an answer.
//
// Three backends implement [types.Model]:
//
//   - [Groq] talks to the Groq OpenAI compatible chat completion API.
//   - [Gemini] talks to the Gemini API or to Vertex AI through the genai SDK.
//   - [Claude] talks to the Anthropic Messages API.
//
// Models can be created directly, by provider name with [NewModel], or by model name
// through the [Registry].
//
// A [Generator] wraps a model with fixed generation parameters and never fails: any backend
// error is reported inside the answer text, prefixed with [FailurePrefix].
package model
