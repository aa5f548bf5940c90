package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"smith/model"
	"smith/provider"
)

// anthropicReply is a minimal valid Messages API response body.
const anthropicReply = `{
	"id": "msg_01",
	"type": "message",
	"role": "assistant",
	"model": "claude-test",
	"content": [
		{"type": "text", "text": "reading the file now"},
		{"type": "tool_use", "id": "t1", "name": "read_file", "input": {"path": "a.txt"}}
	],
	"stop_reason": "tool_use",
	"stop_sequence": null,
	"usage": {"input_tokens": 10, "output_tokens": 5}
}`

func newAnthropic(t *testing.T, baseURL string) provider.Provider {
	t.Helper()
	p, err := provider.NewAnthropicProvider(baseURL, "test-key", "claude-test", 64)
	if err != nil {
		t.Fatalf("NewAnthropicProvider() error = %v", err)
	}
	return p
}

func TestAnthropicMissingAPIKey(t *testing.T) {
	_, err := provider.NewAnthropicProvider("", "", "", 0)
	var missing *provider.MissingAPIKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("NewAnthropicProvider() error = %v, want *MissingAPIKeyError", err)
	}
}

func TestAnthropicQueryModel(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicReply))
	}))
	defer srv.Close()

	p := newAnthropic(t, srv.URL)
	resp, err := p.QueryModel(context.Background(), []model.Message{model.UserText("hello")}, "system prompt")
	if err != nil {
		t.Fatalf("QueryModel() error = %v", err)
	}

	if resp.ID != "msg_01" {
		t.Errorf("ID = %q, want msg_01", resp.ID)
	}
	if resp.StopReason != "tool_use" {
		t.Errorf("StopReason = %q, want tool_use", resp.StopReason)
	}
	if len(resp.Content) != 2 {
		t.Fatalf("len(Content) = %d, want 2", len(resp.Content))
	}
	if resp.Content[0].Type != model.ContentText || resp.Content[0].Text != "reading the file now" {
		t.Errorf("Content[0] = %+v, want text item", resp.Content[0])
	}
	use := resp.Content[1]
	if use.Type != model.ContentToolUse || use.ID != "t1" || use.Name != "read_file" {
		t.Errorf("Content[1] = %+v, want tool_use t1 read_file", use)
	}
	if got, _ := use.Input["path"].(string); got != "a.txt" {
		t.Errorf("Input[path] = %v, want a.txt", use.Input["path"])
	}

	// The request must carry the system prompt and the full tool catalog.
	if gotBody["system"] == nil {
		t.Error("request body missing system prompt")
	}
	reqTools, _ := gotBody["tools"].([]any)
	if len(reqTools) != 4 {
		t.Errorf("request carried %d tools, want 4", len(reqTools))
	}
}

func TestAnthropicAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "boom"}}`))
	}))
	defer srv.Close()

	p := newAnthropic(t, srv.URL)
	_, err := p.QueryModel(context.Background(), []model.Message{model.UserText("hi")}, "")

	var apiErr *provider.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("QueryModel() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestAnthropicNetworkError(t *testing.T) {
	// Grab a port that is guaranteed to refuse connections.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	p := newAnthropic(t, "http://"+addr)
	_, err = p.QueryModel(context.Background(), []model.Message{model.UserText("hi")}, "")

	var netErr *provider.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("QueryModel() error = %v, want *NetworkError", err)
	}
}
