package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Downloader DownloaderConfig `yaml:"downloader"`
	Transcript TranscriptConfig `yaml:"transcript"`
	AI         AIConfig         `yaml:"ai"`
	Output     OutputConfig     `yaml:"output"`
	Watch      WatchConfig      `yaml:"watch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type DownloaderConfig struct {
	Binary   string `yaml:"binary"`
	Language string `yaml:"language"`
}

type TranscriptConfig struct {
	GapThresholdMs       int  `yaml:"gap_threshold_ms"`
	TargetParagraphChars int  `yaml:"target_paragraph_chars"`
	MaxParagraphChars    int  `yaml:"max_paragraph_chars"`
	OverlapWindowWords   int  `yaml:"overlap_window_words"`
	KeepLabels           bool `yaml:"keep_labels"`
}

type AIConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	Host     string   `yaml:"host"`
	APIKeys  []string `yaml:"api_keys"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
	Quiet  bool   `yaml:"quiet"`
}

type WatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file, validates it and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	// Validate only fails on invalid enum values, which defaults never are.
	_ = cfg.Validate()
	return cfg
}

// Validate checks enum fields and fills in defaults for everything left
// unset, mirroring how the zero config should behave.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "", "md", "docx":
	default:
		return fmt.Errorf("output.format must be md or docx, got %q", c.Output.Format)
	}
	switch c.AI.Provider {
	case "", "ollama", "gemini":
	default:
		return fmt.Errorf("ai.provider must be ollama or gemini, got %q", c.AI.Provider)
	}
	if c.AI.Provider == "gemini" && c.AI.Enabled && len(c.AI.APIKeys) == 0 {
		return fmt.Errorf("ai.api_keys is required for the gemini provider")
	}

	if c.Downloader.Binary == "" {
		c.Downloader.Binary = "yt-dlp"
	}
	if c.Downloader.Language == "" {
		c.Downloader.Language = "en"
	}
	if c.Transcript.GapThresholdMs == 0 {
		c.Transcript.GapThresholdMs = 3000
	}
	if c.Transcript.TargetParagraphChars == 0 {
		c.Transcript.TargetParagraphChars = 500
	}
	if c.Transcript.MaxParagraphChars == 0 {
		c.Transcript.MaxParagraphChars = 1200
	}
	if c.Transcript.OverlapWindowWords == 0 {
		c.Transcript.OverlapWindowWords = 30
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "ollama"
	}
	if c.AI.Model == "" {
		c.AI.Model = defaultModel(c.AI.Provider)
	}
	if c.AI.Host == "" {
		c.AI.Host = "http://localhost:11434"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "transcriptions"
	}
	if c.Output.Format == "" {
		c.Output.Format = "md"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// GapThreshold returns the paragraph gap threshold as a duration.
func (c *Config) GapThreshold() time.Duration {
	return time.Duration(c.Transcript.GapThresholdMs) * time.Millisecond
}

func defaultModel(provider string) string {
	if provider == "gemini" {
		return "gemini-2.5-flash"
	}
	return "llama3"
}
