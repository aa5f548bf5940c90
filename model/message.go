// Package model defines the vendor-neutral conversation types shared by the
// chat session, the provider backends, and the tool dispatcher.
//
// Every provider backend converts between these types and its own wire
// format, so the rest of the application never sees vendor-specific shapes.
package model

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleDeveloper Role = "developer"
)

// ContentType discriminates the variants of a ContentItem.
type ContentType string

const (
	ContentText       ContentType = "text"
	ContentToolUse    ContentType = "tool_use"
	ContentToolResult ContentType = "tool_result"
)

// ContentItem is one block of a message body. Type selects the variant;
// only the fields belonging to that variant are set.
//
// A ToolResult must reference the ID of a ToolUse that appeared in an
// earlier assistant message. That pairing is a caller contract, not
// something this package validates.
type ContentItem struct {
	Type ContentType `json:"type"`

	// Text, for ContentText.
	Text string `json:"text,omitempty"`

	// ID, Name and Input, for ContentToolUse. Input is the model-emitted
	// argument payload; it is untrusted free-form JSON, so it stays loosely
	// typed and is validated at dispatch time.
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`

	// ToolUseID and Content, for ContentToolResult.
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// TextContent builds a text content item.
func TextContent(text string) ContentItem {
	return ContentItem{Type: ContentText, Text: text}
}

// ToolUseContent builds a tool invocation content item.
func ToolUseContent(id, name string, input map[string]any) ContentItem {
	return ContentItem{Type: ContentToolUse, ID: id, Name: name, Input: input}
}

// ToolResultContent builds a tool result content item referencing a prior
// tool invocation.
func ToolResultContent(toolUseID, content string) ContentItem {
	return ContentItem{Type: ContentToolResult, ToolUseID: toolUseID, Content: content}
}

// Message is a single conversation entry. Messages are immutable once
// appended to a session's history; the session only ever appends, drops
// the oldest entry when trimming, or pops the newest on rollback.
type Message struct {
	Role    Role          `json:"role"`
	Content []ContentItem `json:"content"`
}

// UserText builds a user message holding a single text item.
func UserText(text string) Message {
	return Message{Role: RoleUser, Content: []ContentItem{TextContent(text)}}
}

// ToolUses returns the tool invocations contained in the message, in order.
func (m Message) ToolUses() []ContentItem {
	var uses []ContentItem
	for _, item := range m.Content {
		if item.Type == ContentToolUse {
			uses = append(uses, item)
		}
	}
	return uses
}
