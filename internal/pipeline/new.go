package pipeline

import (
	"github.com/nguyentantai21042004/caption-scribe/internal/config"
	"github.com/nguyentantai21042004/caption-scribe/internal/downloader"
	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
	"github.com/nguyentantai21042004/caption-scribe/internal/summarizer"
)

type implPipeline struct {
	cfg        *config.Config
	downloader downloader.Downloader
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a Pipeline. summ may be nil, which disables the AI path and
// always uses heuristic paragraph composition.
func New(cfg *config.Config, dl downloader.Downloader, summ summarizer.Summarizer, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:        cfg,
		downloader: dl,
		summarizer: summ,
		logger:     log,
	}
}
