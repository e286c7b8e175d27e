// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvGroqAPIKey         = "GROQ_API_KEY"
	EnvRagieAPIKey        = "RAGIE_API_KEY"
	EnvGoogleAPIKey       = "GOOGLE_API_KEY"
	EnvLlamaIndexAPIKey   = "LLMA_INDEX_API_KEY"
	EnvLlamaIndexOrgID    = "LLMA_INDEX_ORG_ID"
	EnvAnthropicAPIKey    = "ANTHROPIC_API_KEY"
	EnvGoogleCloudProject = "GOOGLE_CLOUD_PROJECT"
	EnvGoogleCloudRegion  = "GOOGLE_CLOUD_LOCATION"

	EnvVariant  = "RAGAGENT_VARIANT"
	EnvTimeout  = "RAGAGENT_TIMEOUT"
	EnvLogLevel = "RAGAGENT_LOG_LEVEL"
)

// LoadEnv loads the given .env files (".env" when none) if they exist, then overlays the
// credentials and overrides found in the process environment onto c.
//
// Missing credentials are left empty; each backend decides whether it can run without one.
func (c *Config) LoadEnv(files ...string) {
	// Load .env file if it exists
	_ = godotenv.Load(files...)

	c.Groq.APIKey = getEnvOrDefault(EnvGroqAPIKey, c.Groq.APIKey)
	c.Ragie.APIKey = getEnvOrDefault(EnvRagieAPIKey, c.Ragie.APIKey)
	c.Gemini.APIKey = getEnvOrDefault(EnvGoogleAPIKey, c.Gemini.APIKey)
	c.LlamaCloud.APIKey = getEnvOrDefault(EnvLlamaIndexAPIKey, c.LlamaCloud.APIKey)
	c.LlamaCloud.OrganizationID = getEnvOrDefault(EnvLlamaIndexOrgID, c.LlamaCloud.OrganizationID)
	c.Claude.APIKey = getEnvOrDefault(EnvAnthropicAPIKey, c.Claude.APIKey)

	c.VertexRAG.Project = getEnvOrDefault(EnvGoogleCloudProject, c.VertexRAG.Project)
	c.VertexRAG.Location = getEnvOrDefault(EnvGoogleCloudRegion, c.VertexRAG.Location)
	c.Gemini.Project = getEnvOrDefault(EnvGoogleCloudProject, c.Gemini.Project)
	c.Gemini.Location = getEnvOrDefault(EnvGoogleCloudRegion, c.Gemini.Location)

	c.Variant = getEnvOrDefault(EnvVariant, c.Variant)
	c.Timeout = getEnvAsDurationOrDefault(EnvTimeout, c.Timeout)
	c.Log.Level = getEnvOrDefault(EnvLogLevel, c.Log.Level)
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs := getEnvAsIntOrDefault(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
