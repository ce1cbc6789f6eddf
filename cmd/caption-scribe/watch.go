package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
	"github.com/nguyentantai21042004/caption-scribe/internal/watcher"
)

func newWatchCommand() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:           "watch <dir>",
		Short:         "Convert subtitle files as they appear in a directory",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args[0], &flags)
		},
	}

	addCommonFlags(cmd, &flags)

	return cmd
}

func runWatch(ctx context.Context, dir string, flags *cliFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level)

	p := buildPipeline(ctx, cfg, log)

	handler := func(ctx context.Context, path string) error {
		res, err := p.ProcessFile(ctx, path)
		if err != nil {
			return err
		}
		log.Info(ctx, "Transcript saved to: %s", res.Path)
		return nil
	}

	w, err := watcher.New(dir, handler, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
