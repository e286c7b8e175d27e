// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package retrieval provides the context retrieval backends of the agent.
//
// Every backend implements [types.Retriever] and reports its failures as errors.
// [Fetch] is the boundary that turns those failures into an empty context so that
// the agent can keep answering without grounding.
package retrieval
