package downloader

import (
	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
	"github.com/nguyentantai21042004/caption-scribe/pkg/executor"
)

type implDownloader struct {
	binary   string
	lang     string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Downloader backed by a yt-dlp binary.
func New(binary, lang string, exec executor.Executor, log logger.Logger) Downloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	if lang == "" {
		lang = "en"
	}
	return &implDownloader{
		binary:   binary,
		lang:     lang,
		executor: exec,
		logger:   log,
	}
}
