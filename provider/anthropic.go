package provider

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"smith/model"
	"smith/tools"
)

const defaultAnthropicMaxTokens = 8096

// AnthropicProvider talks to the Anthropic Messages API through the
// official SDK. It is the only backend with a native tool_use/tool_result
// content model, so conversion is lossless in both directions.
type AnthropicProvider struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicProvider creates an Anthropic backend. The API key is
// required; base URL and model fall back to sensible defaults. Retries are
// disabled so every failure propagates exactly once.
func NewAnthropicProvider(baseURL, apiKey, modelName string, maxOutputTokens int64) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, &MissingAPIKeyError{Provider: "Anthropic"}
	}
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	anthropicModel := anthropic.ModelClaudeSonnet4_5_20250929
	if modelName != "" {
		anthropicModel = anthropic.Model(modelName)
	}
	if maxOutputTokens <= 0 {
		maxOutputTokens = defaultAnthropicMaxTokens
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &AnthropicProvider{
		client:    &client,
		model:     anthropicModel,
		maxTokens: maxOutputTokens,
	}, nil
}

// QueryModel implements Provider.
func (p *AnthropicProvider) QueryModel(ctx context.Context, messages []model.Message, systemMessage string) (*model.ModelResponse, error) {
	params := anthropic.MessageNewParams{
		Model:     p.model,
		Messages:  convertToAnthropicMessages(messages),
		MaxTokens: p.maxTokens,
		Tools:     tools.AnthropicSpecs(),
	}
	if systemMessage != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemMessage}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyAnthropicErr(err)
	}

	return fromAnthropicMessage(resp)
}

// convertToAnthropicMessages maps the neutral messages onto Anthropic
// message params. Text, tool_use and tool_result items all have native
// block equivalents. Any non-assistant role lands as a user message; the
// session keeps system text out of the history and passes it separately.
func convertToAnthropicMessages(messages []model.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Content))
		for _, item := range msg.Content {
			switch item.Type {
			case model.ContentText:
				blocks = append(blocks, anthropic.NewTextBlock(item.Text))
			case model.ContentToolUse:
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    item.ID,
						Name:  item.Name,
						Input: item.Input,
					},
				})
			case model.ContentToolResult:
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolResult: &anthropic.ToolResultBlockParam{
						ToolUseID: item.ToolUseID,
						Content: []anthropic.ToolResultBlockParamContentUnion{
							{OfText: &anthropic.TextBlockParam{Text: item.Content}},
						},
					},
				})
			}
		}

		if msg.Role == model.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		} else {
			out = append(out, anthropic.NewUserMessage(blocks...))
		}
	}

	return out
}

// fromAnthropicMessage normalizes an Anthropic response. Tool-use inputs
// arrive as raw JSON; a decode failure is a *SerializationError.
func fromAnthropicMessage(resp *anthropic.Message) (*model.ModelResponse, error) {
	var items []model.ContentItem

	for _, block := range resp.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			items = append(items, model.TextContent(b.Text))
		case anthropic.ToolUseBlock:
			var input map[string]any
			if err := json.Unmarshal(b.Input, &input); err != nil {
				return nil, &SerializationError{Reason: "failed to parse tool arguments", Err: err}
			}
			items = append(items, model.ToolUseContent(b.ID, b.Name, input))
		}
	}

	return &model.ModelResponse{
		Content:      items,
		ID:           resp.ID,
		Model:        string(resp.Model),
		Role:         model.RoleAssistant,
		StopReason:   string(resp.StopReason),
		StopSequence: resp.StopSequence,
	}, nil
}
