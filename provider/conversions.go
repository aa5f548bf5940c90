package provider

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"

	"smith/model"
)

// parseToolArguments decodes a model-emitted tool argument payload. The
// payload is untrusted free-form JSON; a decode failure is a
// *SerializationError rather than a silent empty map so the caller can see
// malformed model output.
func parseToolArguments(argsJSON string) (map[string]any, error) {
	if argsJSON == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return nil, &SerializationError{Reason: "failed to parse tool arguments", Err: err}
	}
	return args, nil
}

// convertToOpenAIMessages converts vendor-neutral messages to the chat
// completions wire shape, preserving structured tool calls and tool
// results. Tool results travel as role "tool" messages referencing the
// originating call ID; assistant tool invocations are re-encoded as
// function tool calls.
func convertToOpenAIMessages(messages []model.Message, systemMessage string) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)

	if systemMessage != "" {
		out = append(out, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(systemMessage),
				},
			},
		})
	}

	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			asst := &openai.ChatCompletionAssistantMessageParam{}
			var texts []string
			for _, item := range msg.Content {
				switch item.Type {
				case model.ContentText:
					texts = append(texts, item.Text)
				case model.ContentToolUse:
					args, err := json.Marshal(item.Input)
					if err != nil {
						return nil, &SerializationError{Reason: "failed to encode tool arguments", Err: err}
					}
					asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
						OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
							ID: item.ID,
							Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
								Name:      item.Name,
								Arguments: string(args),
							},
						},
					})
				}
			}
			if len(texts) > 0 {
				asst.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(strings.Join(texts, "\n")),
				}
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: asst})

		case model.RoleSystem, model.RoleDeveloper:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(model.FlattenContent(msg.Content)),
					},
				},
			})

		default: // user
			var texts []string
			for _, item := range msg.Content {
				switch item.Type {
				case model.ContentText:
					texts = append(texts, item.Text)
				case model.ContentToolResult:
					out = append(out, openai.ChatCompletionMessageParamUnion{
						OfTool: &openai.ChatCompletionToolMessageParam{
							ToolCallID: item.ToolUseID,
							Content: openai.ChatCompletionToolMessageParamContentUnion{
								OfString: openai.String(item.Content),
							},
						},
					})
				}
			}
			if len(texts) > 0 {
				out = append(out, openai.ChatCompletionMessageParamUnion{
					OfUser: &openai.ChatCompletionUserMessageParam{
						Content: openai.ChatCompletionUserMessageParamContentUnion{
							OfString: openai.String(strings.Join(texts, "\n")),
						},
					},
				})
			}
		}
	}

	return out, nil
}

// flattenToOpenAIMessages converts messages for flat-text backends: each
// message collapses to a single string via model.FlattenContent, with no
// structured tool calls or results on the wire.
func flattenToOpenAIMessages(messages []model.Message, systemMessage string) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)

	if systemMessage != "" {
		out = append(out, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(systemMessage),
				},
			},
		})
	}

	for _, msg := range messages {
		content := model.FlattenContent(msg.Content)
		switch msg.Role {
		case model.RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(content),
					},
				},
			})
		case model.RoleSystem:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(content),
					},
				},
			})
		case model.RoleDeveloper:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfDeveloper: &openai.ChatCompletionDeveloperMessageParam{
					Content: openai.ChatCompletionDeveloperMessageParamContentUnion{
						OfString: openai.String(content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(content),
					},
				},
			})
		}
	}

	return out
}

// fromChatCompletion normalizes a chat completions response. Text content
// and function tool calls from the first choice become content items; an
// empty choice list is an invalid response.
func fromChatCompletion(resp *openai.ChatCompletion) (*model.ModelResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, &InvalidResponseError{Reason: "no choices in response"}
	}

	choice := resp.Choices[0]
	var items []model.ContentItem

	if choice.Message.Content != "" {
		items = append(items, model.TextContent(choice.Message.Content))
	}
	for _, tc := range choice.Message.ToolCalls {
		if tc.Type != "function" {
			continue
		}
		fn := tc.AsFunction()
		input, err := parseToolArguments(fn.Function.Arguments)
		if err != nil {
			return nil, err
		}
		items = append(items, model.ToolUseContent(fn.ID, fn.Function.Name, input))
	}

	id := resp.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &model.ModelResponse{
		Content:    items,
		ID:         id,
		Model:      resp.Model,
		Role:       model.RoleAssistant,
		StopReason: string(choice.FinishReason),
	}, nil
}
