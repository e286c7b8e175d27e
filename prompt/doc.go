// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt builds the message sequence sent to the answer generator.
//
// [Compose] merges the fixed behavioural policy, the retrieved context, the conversation history
// and the user query into a [types.Prompt] with four entries in a fixed order:
//
//	0 system     policy instructions
//	1 assistant  "Here is the relevant context I found:" + context text
//	2 assistant  "**Conversation History:** " + history as JSON
//	3 user       the raw query
//
// The order sets instruction priority for the generator and never changes. The behavioural
// rules are not branched in code: they are stated in the system entry and the model applies
// them. Any generator swapped in must honour the same rules:
//
//   - greetings and social closers get a brief natural reply with no lookup or redirection
//   - real-time questions prefer live search, document questions prefer the provided context
//   - the answer never says where it came from, or that a source was missing
//   - when nothing is found the answer names a specific office or department and says why
//
// Composition is pure and cannot fail.
package prompt
