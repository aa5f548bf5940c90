package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/ollama/ollama/api"

	"smith/model"
	"smith/tools"
)

// OllamaProvider talks to a local Ollama server. No API key is involved.
// Like DeepSeek it is a flat-text backend: message bodies collapse to one
// string, but tool results travel as role "tool" messages and tool calls
// come back as structured fields. Ollama tool calls carry no ID, so one is
// generated to keep the tool_use/tool_result pairing intact.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates an Ollama backend.
func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if modelName == "" {
		modelName = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaProvider{
		client: api.NewClient(parsedURL, http.DefaultClient),
		model:  modelName,
	}, nil
}

// QueryModel implements Provider.
func (p *OllamaProvider) QueryModel(ctx context.Context, messages []model.Message, systemMessage string) (*model.ModelResponse, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: convertToOllamaMessages(messages, systemMessage),
		Tools:    tools.OllamaSpecs(),
		Stream:   &stream,
	}

	var last api.ChatResponse
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		last = resp
		return nil
	})
	if err != nil {
		return nil, classifyOllamaErr(err)
	}

	var items []model.ContentItem
	if last.Message.Content != "" {
		items = append(items, model.TextContent(last.Message.Content))
	}
	for _, call := range last.Message.ToolCalls {
		items = append(items, model.ToolUseContent(
			uuid.NewString(),
			call.Function.Name,
			map[string]any(call.Function.Arguments),
		))
	}

	return &model.ModelResponse{
		Content:    items,
		ID:         uuid.NewString(),
		Model:      last.Model,
		Role:       model.RoleAssistant,
		StopReason: last.DoneReason,
	}, nil
}

// convertToOllamaMessages flattens each message body to a string; tool
// results become role "tool" entries so tool-capable local models see them
// in the position they expect.
func convertToOllamaMessages(messages []model.Message, systemMessage string) []api.Message {
	out := make([]api.Message, 0, len(messages)+1)

	if systemMessage != "" {
		out = append(out, api.Message{Role: "system", Content: systemMessage})
	}

	for _, msg := range messages {
		var rest []model.ContentItem
		for _, item := range msg.Content {
			if item.Type == model.ContentToolResult {
				out = append(out, api.Message{Role: "tool", Content: item.Content})
				continue
			}
			rest = append(rest, item)
		}
		if len(rest) > 0 {
			out = append(out, api.Message{
				Role:    string(msg.Role),
				Content: model.FlattenContent(rest),
			})
		}
	}

	return out
}
