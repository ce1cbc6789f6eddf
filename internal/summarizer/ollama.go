package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
)

// implOllama talks to a local Ollama instance over its HTTP generate API.
type implOllama struct {
	host   string
	model  string
	client *http.Client
	logger logger.Logger
}

func newOllama(cfg Config, log logger.Logger) Summarizer {
	host := cfg.Host
	if host == "" {
		host = "http://localhost:11434"
	}
	model := cfg.Model
	if model == "" {
		model = "llama3"
	}
	return &implOllama{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: &http.Client{Timeout: 120 * time.Second},
		logger: log,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (o *implOllama) SummarizeAndSegment(ctx context.Context, transcript string) (Segmentation, error) {
	paragraphs, err := segmentTranscript(ctx, transcript, func(ctx context.Context, prompt string) (string, error) {
		return o.generate(ctx, prompt, 0.2, len(prompt)+500)
	})
	if err != nil {
		return Segmentation{}, fmt.Errorf("segment transcript: %w", err)
	}

	summary, err := summarizeTranscript(ctx, transcript, func(ctx context.Context, prompt string) (string, error) {
		return o.generate(ctx, prompt, 0.3, 200)
	})
	if err != nil {
		return Segmentation{}, fmt.Errorf("generate summary: %w", err)
	}

	return Segmentation{Summary: summary, Paragraphs: paragraphs}, nil
}

func (o *implOllama) generate(ctx context.Context, prompt string, temperature float64, numPredict int) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperature,
			NumPredict:  numPredict,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ollama returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}
	return out.Response, nil
}
