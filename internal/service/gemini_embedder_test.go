package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiEmbedder_Embed(t *testing.T) {
	var capturedPath, capturedKey string
	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.Header.Get("x-goog-api-key")
		capturedBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float32{0.25, -0.5, 0.75}},
		})
	}))
	defer server.Close()

	embedder := NewGeminiEmbedder("test-key", "text-embedding-004", server.URL)
	vec, err := embedder.Embed(context.Background(), "thermodynamics professor")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(vec) != 3 || vec[0] != 0.25 || vec[2] != 0.75 {
		t.Errorf("unexpected vector %v", vec)
	}
	if capturedPath != "/models/text-embedding-004:embedContent" {
		t.Errorf("unexpected path %q", capturedPath)
	}
	if capturedKey != "test-key" {
		t.Errorf("expected api key header, got %q", capturedKey)
	}
	if !strings.Contains(string(capturedBody), "thermodynamics professor") {
		t.Errorf("request body missing query text: %s", capturedBody)
	}
}

func TestGeminiEmbedder_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected outbound call for empty text")
	}))
	defer server.Close()

	embedder := NewGeminiEmbedder("key", "text-embedding-004", server.URL)
	if _, err := embedder.Embed(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestGeminiEmbedder_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	embedder := NewGeminiEmbedder("bad-key", "text-embedding-004", server.URL)
	_, err := embedder.Embed(context.Background(), "query")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestGeminiEmbedder_EmptyEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": map[string]any{"values": []float32{}}})
	}))
	defer server.Close()

	embedder := NewGeminiEmbedder("key", "text-embedding-004", server.URL)
	if _, err := embedder.Embed(context.Background(), "query"); err == nil {
		t.Fatal("expected error for empty embedding")
	}
}
