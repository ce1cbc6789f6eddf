package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
)

// implGemini calls the Gemini API, rotating through the supplied API keys
// when one hits its quota. The key index is shared across goroutines when
// one summarizer serves concurrent conversions, so access goes through mu.
type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

func newGemini(cfg Config, log logger.Logger) Summarizer {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGemini{
		apiKeys: cfg.APIKeys,
		model:   model,
		logger:  log,
	}
}

func (g *implGemini) SummarizeAndSegment(ctx context.Context, transcript string) (Segmentation, error) {
	paragraphs, err := segmentTranscript(ctx, transcript, g.generate)
	if err != nil {
		return Segmentation{}, fmt.Errorf("segment transcript: %w", err)
	}

	summary, err := summarizeTranscript(ctx, transcript, g.generate)
	if err != nil {
		return Segmentation{}, fmt.Errorf("generate summary: %w", err)
	}

	return Segmentation{Summary: summary, Paragraphs: paragraphs}, nil
}

// generate sends one prompt to Gemini. Rotates API keys on 429 / quota errors.
func (g *implGemini) generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIdx := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// activeKey returns the key to try next and its index.
func (g *implGemini) activeKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
