package provider

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// MissingAPIKeyError is returned at construction time when a backend that
// requires credentials is configured without them.
type MissingAPIKeyError struct {
	Provider string
}

func (e *MissingAPIKeyError) Error() string {
	return fmt.Sprintf("%s API key not found", e.Provider)
}

// NetworkError wraps a transport-level failure (DNS, TLS, timeout,
// connection reset) on the way to or from the vendor endpoint.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the vendor. Body carries the raw
// error payload for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// InvalidResponseError is a 2xx response whose body did not contain what
// the backend expected (missing choices, unparseable structure).
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: %s", e.Reason)
}

// SerializationError means a request could not be encoded or a tool-call
// argument payload could not be decoded.
type SerializationError struct {
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("serialization error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("serialization error: %s", e.Reason)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// classifyAnthropicErr maps an anthropic-sdk-go error to the taxonomy:
// a vendor status error becomes *APIError, anything else is transport.
func classifyAnthropicErr(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return &APIError{StatusCode: apierr.StatusCode, Body: apierr.RawJSON()}
	}
	return &NetworkError{Err: err}
}

// classifyOpenAIErr does the same for openai-go errors. It covers every
// backend built on the OpenAI-compatible wire shape (OpenAI, DeepSeek,
// OpenRouter, unrecognized fallbacks).
func classifyOpenAIErr(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &APIError{StatusCode: apierr.StatusCode, Body: apierr.RawJSON()}
	}
	return &NetworkError{Err: err}
}

// classifyOllamaErr maps ollama client errors; the ollama api package
// reports non-2xx responses as api.StatusError.
func classifyOllamaErr(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return &APIError{StatusCode: statusErr.StatusCode, Body: statusErr.ErrorMessage}
	}
	return &NetworkError{Err: err}
}
