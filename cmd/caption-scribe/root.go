package main

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-scribe/internal/config"
	"github.com/nguyentantai21042004/caption-scribe/internal/downloader"
	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
	"github.com/nguyentantai21042004/caption-scribe/internal/pipeline"
	"github.com/nguyentantai21042004/caption-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/caption-scribe/pkg/executor"
)

type cliFlags struct {
	configPath  string
	output      string
	language    string
	keepLabels  bool
	ai          bool
	aiModel     string
	aiProvider  string
	format      string
	toClipboard bool
	quiet       bool
}

func newRootCommand() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "caption-scribe <url|video-id>",
		Short: "Convert YouTube captions into a clean Markdown transcript",
		Long: `caption-scribe downloads the caption track of a YouTube video and turns
it into a clean, deduplicated, paragraph-structured transcript document.`,
		Example: `  caption-scribe dQw4w9WgXcQ
  caption-scribe https://youtu.be/dQw4w9WgXcQ -o transcript.md
  caption-scribe VIDEO_ID --language es --ai --ai-model llama3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd.Context(), args[0], &flags)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: derived from video title)")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "caption language code (default: en)")
	cmd.Flags().BoolVar(&flags.toClipboard, "clipboard", false, "also copy the document to the clipboard")

	cmd.AddCommand(newWatchCommand())

	return cmd
}

func addCommonFlags(cmd *cobra.Command, flags *cliFlags) {
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().BoolVar(&flags.keepLabels, "keep-labels", false, "keep speaker labels like [Music] or [Applause]")
	cmd.Flags().BoolVar(&flags.ai, "ai", false, "enable AI summarization and paragraph formatting")
	cmd.Flags().StringVar(&flags.aiModel, "ai-model", "", "model identifier for the AI provider")
	cmd.Flags().StringVar(&flags.aiProvider, "ai-provider", "", "AI provider: ollama or gemini")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: md or docx")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress progress output")
}

func runTranscribe(ctx context.Context, url string, flags *cliFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level)

	p := buildPipeline(ctx, cfg, log)
	res, err := p.Run(ctx, url, flags.output)
	if err != nil {
		return err
	}

	if flags.toClipboard {
		if err := clipboard.WriteAll(res.Document); err != nil {
			log.Warn(ctx, "Failed to copy document to clipboard: %v", err)
		}
	}

	if !cfg.Output.Quiet {
		fmt.Printf("Transcript saved to: %s\n", res.Path)
	}
	return nil
}

// loadConfig layers CLI flags over the config file (or defaults when no
// file was given).
func loadConfig(flags *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		cfg, err = config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
	}

	if flags.language != "" {
		cfg.Downloader.Language = flags.language
	}
	if flags.keepLabels {
		cfg.Transcript.KeepLabels = true
	}
	if flags.ai {
		cfg.AI.Enabled = true
	}
	if flags.aiProvider != "" {
		cfg.AI.Provider = flags.aiProvider
		if flags.aiModel == "" {
			// Let validation pick the provider's default model.
			cfg.AI.Model = ""
		}
	}
	if flags.aiModel != "" {
		cfg.AI.Model = flags.aiModel
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.quiet {
		cfg.Output.Quiet = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline wires the collaborators. A summarizer that cannot be
// constructed disables the AI path with a warning instead of failing the
// whole run.
func buildPipeline(ctx context.Context, cfg *config.Config, log logger.Logger) pipeline.Pipeline {
	exec := executor.New()
	dl := downloader.New(cfg.Downloader.Binary, cfg.Downloader.Language, exec, log)

	var summ summarizer.Summarizer
	if cfg.AI.Enabled {
		s, err := summarizer.New(summarizer.Config{
			Provider: cfg.AI.Provider,
			Model:    cfg.AI.Model,
			Host:     cfg.AI.Host,
			APIKeys:  cfg.AI.APIKeys,
		}, log)
		if err != nil {
			log.Warn(ctx, "AI path disabled: %v", err)
		} else {
			summ = s
		}
	}

	return pipeline.New(cfg, dl, summ, log)
}
