package tools

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// AnthropicSpecs encodes the catalog in Anthropic's tool shape
// (name + description + input_schema).
func AnthropicSpecs() []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, len(catalog))

	for i, tool := range catalog {
		inputSchema := anthropic.ToolInputSchemaParam{
			// Type defaults to "object" when omitted
			Properties: tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			inputSchema.Required = tool.InputSchema.Required
		}

		result[i] = anthropic.ToolUnionParamOfTool(inputSchema, tool.Name)
		if tool.Description != "" {
			result[i].OfTool.Description = anthropic.String(tool.Description)
		}
	}

	return result
}

// OpenAISpecs encodes the catalog in the OpenAI function-tool shape. The
// same encoding serves every OpenAI-compatible backend (OpenAI, DeepSeek,
// OpenRouter).
func OpenAISpecs() []openai.ChatCompletionToolUnionParam {
	result := make([]openai.ChatCompletionToolUnionParam, len(catalog))

	for i, tool := range catalog {
		params := shared.FunctionParameters{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}

		result[i] = openai.ChatCompletionToolUnionParam{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: shared.FunctionDefinitionParam{
					Name:        tool.Name,
					Description: openai.String(tool.Description),
					Parameters:  params,
				},
			},
		}
	}

	return result
}

// OllamaSpecs encodes the catalog in the Ollama API tool shape.
func OllamaSpecs() []api.Tool {
	result := make([]api.Tool, len(catalog))

	for i, tool := range catalog {
		params := api.ToolFunctionParameters{
			Type:       tool.InputSchema.Type,
			Required:   tool.InputSchema.Required,
			Properties: make(map[string]api.ToolProperty),
		}
		for name, value := range tool.InputSchema.Properties {
			params.Properties[name] = toOllamaProperty(value)
		}

		result[i] = api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  params,
			},
		}
	}

	return result
}

// toOllamaProperty converts one JSON-schema property (a map produced by the
// mcp tool builder) into Ollama's typed property struct. The catalog only
// uses flat string properties, so type and description are all that matter.
func toOllamaProperty(value any) api.ToolProperty {
	prop := api.ToolProperty{}

	propMap, ok := value.(map[string]any)
	if !ok {
		return prop
	}
	if t, ok := propMap["type"].(string); ok {
		prop.Type = api.PropertyType{t}
	}
	if desc, ok := propMap["description"].(string); ok {
		prop.Description = desc
	}

	return prop
}
