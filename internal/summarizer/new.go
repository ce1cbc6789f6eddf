package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Config selects and parameterizes the text-generation backend.
type Config struct {
	Provider string
	Model    string
	Host     string   // ollama only; e.g. http://localhost:11434
	APIKeys  []string // gemini only; rotated on quota errors
}

// New creates a Summarizer for the configured provider.
func New(cfg Config, log logger.Logger) (Summarizer, error) {
	switch cfg.Provider {
	case "", ProviderOllama:
		return newOllama(cfg, log), nil
	case ProviderGemini:
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini provider requires at least one API key")
		}
		return newGemini(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}
}
