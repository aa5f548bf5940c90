package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default returns the configuration used when no smith.toml exists.
func Default() ProjectConfig {
	return ProjectConfig{
		Provider:        "anthropic",
		Model:           "",
		MaxContext:      100000,
		MaxOutputTokens: 8096,
	}
}

// GenerateConfigTemplate returns the commented smith.toml written by
// `smith init`.
func GenerateConfigTemplate() string {
	return `# smith project configuration
# This file uses TOML format: https://toml.io

# LLM backend: "anthropic", "openai", "deepseek", "openrouter" or "ollama".
# Any other value is treated as a generic OpenAI-compatible endpoint
# reachable at base_url.
provider = "anthropic"

# Model name. Leave empty for the backend's default.
model = ""

# Upper bound on estimated tokens kept in the conversation history.
max_context = 100000

# Upper bound on tokens the model may generate per reply.
max_output_tokens = 8096

# API key. Prefer the SMITH_API_KEY environment variable over committing
# a key to this file.
api_key = ""

# Endpoint override; leave empty for the provider's default.
base_url = ""
`
}

// WriteTemplate writes the config template into dir. An existing file is
// only replaced when force is set.
func WriteTemplate(dir string, force bool) error {
	path := filepath.Join(dir, ConfigFileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	return os.WriteFile(path, []byte(GenerateConfigTemplate()), 0600)
}
