// Package textgen wraps the local Ollama inference server behind small
// interfaces: free-text generation for query rewriting and clause drafting,
// and embeddings for semantic similarity.  Every verdict-bearing decision in
// the engine stays rule-based; generation only rephrases text around it.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/swarakshak/vidhaan/pkg/errors"
)

// Generator produces text from a system and user prompt pair.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Config holds the connection settings for one Ollama model.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is the HTTP client for Ollama's chat endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a Client.  A zero timeout disables the per-request bound.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Generate sends a non-streaming chat request and returns the trimmed reply.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeGenerationFailed, "encoding chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeGenerationFailed, "building chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Wrap(err, errors.ErrCodeGenerationTimeout, "chat request timed out")
		}
		return "", errors.Wrap(err, errors.ErrCodeGenerationFailed, "calling chat endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.Newf(errors.ErrCodeGenerationFailed,
			"chat endpoint returned %d", resp.StatusCode).
			WithDetail(fmt.Sprintf("model=%s body=%s", c.cfg.Model, payload))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeGenerationFailed, "decoding chat response")
	}
	return strings.TrimSpace(out.Message.Content), nil
}
