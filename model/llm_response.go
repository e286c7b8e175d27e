// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/ragagent/types"
)

// CreateLLMResponse creates a [types.LLMResponse] from a [*genai.GenerateContentResponse].
//
// Blocked prompts and candidates without content are reported through the error fields.
func CreateLLMResponse(resp *genai.GenerateContentResponse) *types.LLMResponse {
	response := &types.LLMResponse{}

	if resp == nil {
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Generate content response is nil."
		return response
	}

	switch {
	case len(resp.Candidates) > 0:
		candidate := resp.Candidates[0]
		response.FinishReason = string(candidate.FinishReason)
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			var sb strings.Builder
			for _, part := range candidate.Content.Parts {
				if part != nil && !part.Thought {
					sb.WriteString(part.Text)
				}
			}
			response.Text = sb.String()
			response.Grounded = candidate.GroundingMetadata != nil && len(candidate.GroundingMetadata.GroundingChunks) > 0
		} else {
			response.ErrorCode = string(candidate.FinishReason)
			response.ErrorMessage = candidate.FinishMessage
		}

	case resp.PromptFeedback != nil:
		blockReason := "UNKNOWN_BLOCK"
		blockMessage := "Content was blocked. Check prompt feedback for details."
		if reason := resp.PromptFeedback.BlockReason; reason != "" {
			blockReason = string(reason)
		}
		if msg := resp.PromptFeedback.BlockReasonMessage; msg != "" {
			blockMessage = msg
		}
		for _, rating := range resp.PromptFeedback.SafetyRatings {
			if rating.Blocked {
				blockReason = string(rating.Category)
				blockMessage = "Content was blocked due to safety concerns."
				break
			}
		}

		response.ErrorCode = blockReason
		response.ErrorMessage = blockMessage

	default:
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Unknown error in generate content response."
	}

	return response
}
