// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types provides the data model and capability interfaces shared by every component of the agent.
//
// The types package defines the values that flow through a single question/answer invocation
// and the contracts that the hosted-service backends implement. Nothing in this package performs
// I/O; it only describes how the retriever, the prompt composer, the generator and the
// orchestrator exchange data.
//
// # Data Model
//
//   - Message / History: role-tagged conversation turns supplied by the caller, in chronological order
//   - Passage / RetrievedContext: text returned by a retrieval backend for one query
//   - Prompt: the ordered, immutable message sequence handed to a generator
//   - Answer: the final string returned to the caller
//
// All of them are created and discarded within one invocation. The agent keeps no state
// across invocations.
//
// # Capability Interfaces
//
// Backends are substituted through three small interfaces:
//
//	type Retriever interface {
//		Name() string
//		Retrieve(ctx context.Context, query string) (RetrievedContext, error)
//	}
//
//	type Model interface {
//		Name() string
//		GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error)
//	}
//
//	type Generator interface {
//		Generate(ctx context.Context, prompt *Prompt) Answer
//	}
//
// Retriever and Model report failures as explicit errors. The retrieval boundary collapses a
// retrieval error into an empty context, and a Generator never fails: it degrades into a
// human readable message instead.
//
// # Empty Context
//
// The zero [RetrievedContext] means that nothing was found or that retrieval failed. Consumers
// treat both cases the same way:
//
//	rc := retrieval.Fetch(ctx, retriever, query)
//	if rc.IsEmpty() {
//		// the prompt still carries an (empty) context entry
//	}
package types
