// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent provides the retrieval augmented chat agent.
//
// An [Agent] answers one query per [Agent.Run] call by sequencing three stages:
//
//	RETRIEVING  fetch context for the query from a retrieval backend
//	COMPOSING   build the prompt from instructions, context, history and query
//	GENERATING  ask a hosted model for the answer
//
// Failures degrade instead of propagating. A failed retrieval yields an empty context,
// a failed generation yields an answer describing the error, and anything else that goes
// wrong, including panics and client construction errors, yields [Apology].
//
// # Basic Usage
//
// Creating the Groq and Ragie agent from the environment:
//
//	cfg := config.Default()
//	cfg.LoadEnv()
//	a, err := agent.New(cfg)
//	if err != nil {
//		return err
//	}
//	answer := a.Answer(ctx, "When is the admission deadline?", nil)
//
// Substituting backends, for example in tests:
//
//	a := agent.NewAgent("test",
//		agent.WithRetriever(retrieval.NewInMemory(3, passages...)),
//		agent.WithGenerator(myGenerator),
//	)
package agent
