// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package ragagent is a retrieval augmented chat agent that answers questions on behalf of one
// organisation from its indexed documents.
//
// The agent itself lives in package agent; the retrievers in package retrieval; the generators
// in package model; and the prompt policy in package prompt.
package ragagent

// Version is the version of the retrieval augmented chat agent.
var Version = "v0.0.0"
