package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/starprofs/server/internal/models"
)

// Pinecone queries a Pinecone index over its REST API. The index and its
// contents are managed out-of-band; this client only reads.
type Pinecone struct {
	apiKey    string
	baseURL   string
	namespace string
	http      *http.Client
}

// NewPinecone creates a read-only client for the given index host (the
// per-index hostname Pinecone assigns, with or without scheme) scoped to one
// namespace.
func NewPinecone(apiKey, indexHost, namespace string) *Pinecone {
	if !strings.HasPrefix(indexHost, "http://") && !strings.HasPrefix(indexHost, "https://") {
		indexHost = "https://" + indexHost
	}
	return &Pinecone{
		apiKey:    apiKey,
		baseURL:   strings.TrimSuffix(indexHost, "/"),
		namespace: namespace,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Search returns the topK nearest reviews to vector, ordered by descending
// similarity. No matches is an empty slice, not an error.
func (p *Pinecone) Search(ctx context.Context, vector []float32, topK int) ([]models.ReviewMatch, error) {
	body := map[string]any{
		"namespace":       p.namespace,
		"topK":            topK,
		"vector":          vector,
		"includeMetadata": true,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/query", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pinecone query: %s: %s", resp.Status, respBody)
	}

	var result struct {
		Matches []struct {
			ID       string  `json:"id"`
			Score    float64 `json:"score"`
			Metadata struct {
				ID      string  `json:"id"`
				Review  string  `json:"review"`
				Subject string  `json:"subject"`
				Stars   float64 `json:"stars"`
			} `json:"metadata"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("pinecone query: decode response: %w", err)
	}

	matches := make([]models.ReviewMatch, len(result.Matches))
	for i, m := range result.Matches {
		// The professor name lives in metadata; older records used the
		// point id itself.
		professor := m.Metadata.ID
		if professor == "" {
			professor = m.ID
		}
		matches[i] = models.ReviewMatch{
			Professor: professor,
			Review:    m.Metadata.Review,
			Subject:   m.Metadata.Subject,
			Stars:     m.Metadata.Stars,
			Score:     m.Score,
		}
	}
	return matches, nil
}
