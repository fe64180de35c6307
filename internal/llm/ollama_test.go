package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var apiReq ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&apiReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if apiReq.Stream {
			t.Error("expected non-streaming request")
		}
		if apiReq.System != "You extract structure." {
			t.Errorf("system prompt %q", apiReq.System)
		}

		resp := ollamaResponse{
			Model:           "llama3.1",
			Response:        `{"ok": true}`,
			Done:            true,
			PromptEvalCount: 10,
			EvalCount:       20,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL: server.URL,
		Model:   "llama3.1",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Complete(context.Background(), Request{
		System: "You extract structure.",
		User:   "Extract this.",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Text != `{"ok": true}` {
		t.Errorf("Unexpected text: %s", resp.Text)
	}
	if resp.TokensUsed != 30 {
		t.Errorf("Unexpected token usage: %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_Complete_SchemaForcesJSONMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var apiReq ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&apiReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if apiReq.Format != "json" {
			t.Errorf("format %q, want json", apiReq.Format)
		}
		if !strings.Contains(apiReq.Prompt, `"type": "object"`) {
			t.Error("schema not appended to the prompt")
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "{}", Done: true})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), Request{
		User: "Extract this.",
		Schema: &OutputSchema{
			Name:   "authority_map",
			Schema: json.RawMessage(`{"type": "object"}`),
		},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestOllamaProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), Request{User: "hi"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !IsTransport(err) {
		t.Errorf("Expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("Expected error message to contain 'model not found', got %v", err)
	}
}

func TestOllamaProvider_Complete_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), Request{User: "hi"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	// A garbled body is not a transport failure; retrying won't help
	if IsTransport(err) {
		t.Errorf("Expected non-transport parse error, got %v", err)
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected provider to be available")
	}
}
