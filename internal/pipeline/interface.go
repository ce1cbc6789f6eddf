package pipeline

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
)

// Options carries the per-document knobs for transcript composition.
// Language is informational at this layer; the downloader already used it
// to select a caption track.
type Options struct {
	Language      string
	KeepLabels    bool
	OverlapWindow int
	GapThreshold  time.Duration
	TargetChars   int
	MaxChars      int
}

// Result is a finished conversion.
type Result struct {
	Title    string
	Document string // rendered Markdown
	Path     string // written output file
}

// Pipeline turns subtitle data into a finished transcript document.
type Pipeline interface {
	// ComposeDocument runs parse -> dedup -> compose over raw subtitle
	// bytes and returns the rendered Markdown document.
	ComposeDocument(ctx context.Context, data []byte, format subtitle.Format, title string, opts Options) (string, error)
	// Run fetches captions for a video URL, composes the document and
	// writes it. An empty outputPath derives the file name from the title.
	Run(ctx context.Context, url, outputPath string) (*Result, error)
	// ProcessFile converts a subtitle file already on disk.
	ProcessFile(ctx context.Context, path string) (*Result, error)
}
