package provider_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"smith/model"
	"smith/provider"
)

// chatCompletionReply builds a minimal chat completions response with the
// given tool-call arguments payload (empty means no tool call).
func chatCompletionReply(arguments string) string {
	toolCalls := ""
	if arguments != "" {
		toolCalls = fmt.Sprintf(`,
			"tool_calls": [{
				"id": "call_1",
				"type": "function",
				"function": {"name": "read_file", "arguments": %q}
			}]`, arguments)
	}
	return fmt.Sprintf(`{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-test",
		"choices": [{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": "hi"%s}
		}],
		"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
	}`, toolCalls)
}

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newOpenAI(t *testing.T, baseURL string) provider.Provider {
	t.Helper()
	p, err := provider.NewOpenAIProvider(baseURL, "test-key", "gpt-test", 64)
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}
	return p
}

func TestOpenAIMissingAPIKey(t *testing.T) {
	_, err := provider.NewOpenAIProvider("", "", "", 0)
	var missing *provider.MissingAPIKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("NewOpenAIProvider() error = %v, want *MissingAPIKeyError", err)
	}
}

func TestOpenAIQueryModel(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, chatCompletionReply(`{"path":"a.txt"}`))

	p := newOpenAI(t, srv.URL)
	resp, err := p.QueryModel(context.Background(), []model.Message{model.UserText("hello")}, "system prompt")
	if err != nil {
		t.Fatalf("QueryModel() error = %v", err)
	}

	if resp.ID != "chatcmpl-1" {
		t.Errorf("ID = %q, want chatcmpl-1", resp.ID)
	}
	if len(resp.Content) != 2 {
		t.Fatalf("len(Content) = %d, want 2 (text + tool_use)", len(resp.Content))
	}
	use := resp.Content[1]
	if use.Type != model.ContentToolUse || use.ID != "call_1" || use.Name != "read_file" {
		t.Errorf("Content[1] = %+v, want tool_use call_1 read_file", use)
	}
	if got, _ := use.Input["path"].(string); got != "a.txt" {
		t.Errorf("Input[path] = %v, want a.txt", use.Input["path"])
	}
}

func TestOpenAIAPIError(t *testing.T) {
	srv := serveJSON(t, http.StatusInternalServerError, `{"error": {"message": "boom", "type": "server_error"}}`)

	p := newOpenAI(t, srv.URL)
	_, err := p.QueryModel(context.Background(), []model.Message{model.UserText("hi")}, "")

	var apiErr *provider.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("QueryModel() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestOpenAIBadToolArguments(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, chatCompletionReply(`{not json`))

	p := newOpenAI(t, srv.URL)
	_, err := p.QueryModel(context.Background(), []model.Message{model.UserText("hi")}, "")

	var serErr *provider.SerializationError
	if !errors.As(err, &serErr) {
		t.Fatalf("QueryModel() error = %v, want *SerializationError", err)
	}
}

func TestOpenAINoChoices(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"id": "chatcmpl-2", "object": "chat.completion", "model": "gpt-test", "choices": []}`)

	p := newOpenAI(t, srv.URL)
	_, err := p.QueryModel(context.Background(), []model.Message{model.UserText("hi")}, "")

	var invErr *provider.InvalidResponseError
	if !errors.As(err, &invErr) {
		t.Fatalf("QueryModel() error = %v, want *InvalidResponseError", err)
	}
}
