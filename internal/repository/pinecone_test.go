package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func pineconeFixture() map[string]any {
	return map[string]any{
		"matches": []map[string]any{
			{
				"id":    "Dr. A",
				"score": 0.91,
				"metadata": map[string]any{
					"id":      "Dr. A",
					"review":  "Engaging lectures.",
					"subject": "Physics",
					"stars":   4.6,
				},
			},
			{
				"id":    "Dr. B",
				"score": 0.84,
				"metadata": map[string]any{
					"id":      "Dr. B",
					"review":  "Tough grader.",
					"subject": "Physics",
					"stars":   4.2,
				},
			},
		},
	}
}

func TestPinecone_Search(t *testing.T) {
	var capturedPath, capturedKey string
	var capturedBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.Header.Get("Api-Key")
		json.NewDecoder(r.Body).Decode(&capturedBody)
		json.NewEncoder(w).Encode(pineconeFixture())
	}))
	defer server.Close()

	pc := NewPinecone("test-key", server.URL, "ns1")
	matches, err := pc.Search(context.Background(), []float32{0.1, 0.2}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Professor != "Dr. A" || matches[1].Professor != "Dr. B" {
		t.Errorf("result order not preserved: %+v", matches)
	}
	if matches[0].Stars != 4.6 || matches[0].Subject != "Physics" {
		t.Errorf("metadata not decoded: %+v", matches[0])
	}
	if matches[0].Score != 0.91 {
		t.Errorf("expected score 0.91, got %v", matches[0].Score)
	}

	if capturedPath != "/query" {
		t.Errorf("unexpected path %q", capturedPath)
	}
	if capturedKey != "test-key" {
		t.Errorf("expected Api-Key header, got %q", capturedKey)
	}
	if capturedBody["namespace"] != "ns1" {
		t.Errorf("expected namespace ns1, got %v", capturedBody["namespace"])
	}
	if capturedBody["topK"] != float64(3) {
		t.Errorf("expected topK 3, got %v", capturedBody["topK"])
	}
	if capturedBody["includeMetadata"] != true {
		t.Error("expected includeMetadata true")
	}
}

func TestPinecone_EmptyNamespace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"matches": []any{}})
	}))
	defer server.Close()

	pc := NewPinecone("key", server.URL, "ns1")
	matches, err := pc.Search(context.Background(), []float32{0.1}, 3)
	if err != nil {
		t.Fatalf("expected empty result, not error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected 0 matches, got %d", len(matches))
	}
}

func TestPinecone_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"vector dimension mismatch"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	pc := NewPinecone("key", server.URL, "ns1")
	_, err := pc.Search(context.Background(), []float32{0.1}, 3)
	if err == nil || !strings.Contains(err.Error(), "dimension mismatch") {
		t.Fatalf("expected dimension mismatch error, got %v", err)
	}
}

func TestPinecone_FallsBackToMatchID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{"id": "Dr. Legacy", "score": 0.5, "metadata": map[string]any{
					"review": "Old record.", "subject": "History", "stars": 3.8,
				}},
			},
		})
	}))
	defer server.Close()

	pc := NewPinecone("key", server.URL, "ns1")
	matches, err := pc.Search(context.Background(), []float32{0.1}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if matches[0].Professor != "Dr. Legacy" {
		t.Errorf("expected fallback to match id, got %q", matches[0].Professor)
	}
}

func TestNewPinecone_NormalizesHost(t *testing.T) {
	pc := NewPinecone("key", "rag-abc123.svc.pinecone.io", "ns1")
	if pc.baseURL != "https://rag-abc123.svc.pinecone.io" {
		t.Errorf("expected https scheme added, got %q", pc.baseURL)
	}
}
