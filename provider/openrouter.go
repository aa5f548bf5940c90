package provider

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"smith/model"
	"smith/tools"
)

// OpenRouterProvider talks to OpenRouter, which is OpenAI-compatible, with
// structured tool calls. Only the default base URL differs from the OpenAI
// backend; OpenRouter routes the request to whatever upstream the model
// name selects.
type OpenRouterProvider struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenRouterProvider creates an OpenRouter backend.
func NewOpenRouterProvider(baseURL, apiKey, modelName string, maxOutputTokens int64) (*OpenRouterProvider, error) {
	if apiKey == "" {
		return nil, &MissingAPIKeyError{Provider: "OpenRouter"}
	}
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if modelName == "" {
		modelName = "meta-llama/llama-3.2-90b-instruct"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &OpenRouterProvider{
		client:    client,
		model:     modelName,
		maxTokens: maxOutputTokens,
	}, nil
}

// QueryModel implements Provider.
func (p *OpenRouterProvider) QueryModel(ctx context.Context, messages []model.Message, systemMessage string) (*model.ModelResponse, error) {
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
