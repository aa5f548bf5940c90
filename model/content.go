package model

import (
	"fmt"
	"strings"
)

// FlattenContent renders content items as a single plain-text string.
//
// It is used in two places: the session's token estimate (role label plus
// flattened content per message) and backends whose wire format only takes
// one string per turn (DeepSeek, Ollama). Tool invocations and results are
// rendered as short descriptions; the structured payload is not recoverable
// from the flattened form, which is a known fidelity gap for flat-text
// backends on multi-turn tool conversations.
func FlattenContent(items []ContentItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch item.Type {
		case ContentText:
			parts = append(parts, item.Text)
		case ContentToolUse:
			parts = append(parts, fmt.Sprintf("tool %s with input: %v", item.Name, item.Input))
		case ContentToolResult:
			parts = append(parts, fmt.Sprintf("tool result: %s", item.Content))
		}
	}
	return strings.Join(parts, " ")
}
