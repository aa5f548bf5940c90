package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"smith/model"
	"smith/provider"
)

// The Ollama client parses responses line by line, so the canned reply must
// stay on a single line.
const ollamaReply = `{"model":"llama3.1:latest","created_at":"2025-01-01T00:00:00Z","message":{"role":"assistant","content":"checking the file","tool_calls":[{"function":{"name":"read_file","arguments":{"path":"a.txt"}}}]},"done":true,"done_reason":"stop"}`

func TestOllamaQueryModel(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("request path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ollamaReply))
	}))
	defer srv.Close()

	p, err := provider.NewOllamaProvider(srv.URL, "llama3.1:latest")
	if err != nil {
		t.Fatalf("NewOllamaProvider() error = %v", err)
	}

	history := []model.Message{
		model.UserText("read a.txt"),
		{
			Role:    model.RoleUser,
			Content: []model.ContentItem{model.ToolResultContent("t0", "old result")},
		},
	}
	resp, err := p.QueryModel(context.Background(), history, "system prompt")
	if err != nil {
		t.Fatalf("QueryModel() error = %v", err)
	}

	if len(resp.Content) != 2 {
		t.Fatalf("len(Content) = %d, want text + tool_use", len(resp.Content))
	}
	use := resp.Content[1]
	if use.Type != model.ContentToolUse || use.Name != "read_file" {
		t.Errorf("Content[1] = %+v, want tool_use read_file", use)
	}
	// Ollama tool calls carry no ID; the provider must fabricate one so the
	// result can still be paired with the call.
	if use.ID == "" {
		t.Error("tool_use ID is empty, want a generated one")
	}
	if resp.StopReason != "stop" {
		t.Errorf("StopReason = %q, want stop", resp.StopReason)
	}

	// Wire shape: system first, user flattened, tool result as role "tool".
	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 3 {
		t.Fatalf("request carried %d messages, want 3", len(messages))
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" {
		t.Errorf("messages[0] role = %v, want system", first["role"])
	}
	last, _ := messages[2].(map[string]any)
	if last["role"] != "tool" {
		t.Errorf("messages[2] role = %v, want tool", last["role"])
	}
	if last["content"] != "old result" {
		t.Errorf("messages[2] content = %v, want raw tool result text", last["content"])
	}
}

func TestOllamaAPIError(t *testing.T) {
	srv := serveJSON(t, http.StatusNotFound, `{"error": "model \"missing\" not found"}`)

	p, err := provider.NewOllamaProvider(srv.URL, "missing")
	if err != nil {
		t.Fatalf("NewOllamaProvider() error = %v", err)
	}

	_, err = p.QueryModel(context.Background(), []model.Message{model.UserText("hi")}, "")
	var apiErr *provider.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("QueryModel() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}
