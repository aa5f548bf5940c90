// Package provider implements the LLM backends smith can talk to.
//
// Each vendor gets one implementation of the Provider interface. All of
// them translate the vendor-neutral model types into the vendor's wire
// format, attach the tool catalog so the model can plan invocations, and
// map the vendor's response back into a model.ModelResponse. The backend
// is chosen once at startup from configuration and never switched at
// runtime.
package provider

import (
	"context"

	"smith/model"
)

// Provider is the contract every backend satisfies. QueryModel performs one
// blocking request/response round trip: it sends the full conversation plus
// an optional system message and returns the normalized reply.
//
// Errors are typed: *MissingAPIKeyError, *NetworkError, *APIError,
// *InvalidResponseError or *SerializationError. Failures are always
// propagated to the caller and never retried here; retry policy belongs to
// the caller, which is safe because a failed send rolls the session back.
type Provider interface {
	QueryModel(ctx context.Context, messages []model.Message, systemMessage string) (*model.ModelResponse, error)
}

// Type identifies the backend implementation.
type Type string

const (
	TypeAnthropic  Type = "anthropic"
	TypeOpenAI     Type = "openai"
	TypeDeepSeek   Type = "deepseek"
	TypeOpenRouter Type = "openrouter"
	TypeOllama     Type = "ollama"
)

// Config holds what a backend needs at construction time.
type Config struct {
	Type            Type
	BaseURL         string
	APIKey          string
	Model           string
	MaxOutputTokens int64
}
