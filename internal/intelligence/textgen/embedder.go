package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/swarakshak/vidhaan/pkg/errors"
)

// EmbedClient calls Ollama's embedding endpoint.  It satisfies the vectorizer
// interfaces of the retrieval and analysis packages.
type EmbedClient struct {
	cfg       Config
	dimension int
	http      *http.Client
}

// NewEmbedClient builds an EmbedClient.  dimension is the expected vector
// width; zero disables the check.
func NewEmbedClient(cfg Config, dimension int) *EmbedClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &EmbedClient{cfg: cfg, dimension: dimension, http: &http.Client{Timeout: cfg.Timeout}}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Vectorize embeds a single text.
func (c *EmbedClient) Vectorize(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Model: c.cfg.Model, Prompt: text})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "encoding embedding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "building embedding request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "calling embedding endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrCodeEmbeddingFailed,
			"embedding endpoint returned %d", resp.StatusCode).
			WithDetail("model=" + c.cfg.Model)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "decoding embedding response")
	}
	if c.dimension > 0 && len(out.Embedding) != c.dimension {
		return nil, errors.Newf(errors.ErrCodeEmbeddingDimension,
			"embedding has dimension %d, expected %d", len(out.Embedding), c.dimension)
	}

	vec := make([]float32, len(out.Embedding))
	for i, x := range out.Embedding {
		vec[i] = float32(x)
	}
	return vec, nil
}
