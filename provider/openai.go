package provider

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"smith/model"
	"smith/tools"
)

// OpenAIProvider talks to the OpenAI chat completions API through the
// official SDK, with structured tool calls in both directions. It doubles
// as the generic backend for any OpenAI-compatible gateway: unrecognized
// provider names land here with whatever base URL is configured.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAIProvider creates an OpenAI (or OpenAI-compatible) backend.
func NewOpenAIProvider(baseURL, apiKey, modelName string, maxOutputTokens int64) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, &MissingAPIKeyError{Provider: "OpenAI"}
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &OpenAIProvider{
		client:    client,
		model:     modelName,
		maxTokens: maxOutputTokens,
	}, nil
}

// QueryModel implements Provider.
func (p *OpenAIProvider) QueryModel(ctx context.Context, messages []model.Message, systemMessage string) (*model.ModelResponse, error) {
	converted, err := convertToOpenAIMessages(messages, systemMessage)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: converted,
		Tools:    tools.OpenAISpecs(),
	}
	if p.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(p.maxTokens)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIErr(err)
	}

	return fromChatCompletion(resp)
}
