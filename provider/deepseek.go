package provider

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"smith/model"
	"smith/tools"
)

// DeepSeekProvider talks to DeepSeek's OpenAI-compatible endpoint. Unlike
// the OpenAI backend it sends each message as one flat string: tool_use and
// tool_result items are rendered as descriptive text rather than structured
// wire fields, so structured tool-call context degrades on re-submission
// (see model.FlattenContent). The tool catalog is still attached and
// tool_calls in the response are parsed back into tool_use items.
type DeepSeekProvider struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewDeepSeekProvider creates a DeepSeek backend.
func NewDeepSeekProvider(baseURL, apiKey, modelName string, maxOutputTokens int64) (*DeepSeekProvider, error) {
	if apiKey == "" {
		return nil, &MissingAPIKeyError{Provider: "DeepSeek"}
	}
	if baseURL == "" {
		baseURL = "https://api.deepseek.com"
	}
	if modelName == "" {
		modelName = "deepseek-chat"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &DeepSeekProvider{
		client:    client,
		model:     modelName,
		maxTokens: maxOutputTokens,
	}, nil
}

// QueryModel implements Provider.
func (p *DeepSeekProvider) QueryModel(ctx context.Context, messages []model.Message, systemMessage string) (*model.ModelResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: flattenToOpenAIMessages(messages, systemMessage),
		Tools:    tools.OpenAISpecs(),
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(p.maxTokens)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIErr(err)
	}

	return fromChatCompletion(resp)
}
