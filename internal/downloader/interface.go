package downloader

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
)

// ErrNoSubtitle means the video exists but offers no captions in the
// requested language, manual or auto-generated.
var ErrNoSubtitle = errors.New("no captions available for this video")

// Download is the result of a caption fetch: the raw subtitle payload plus
// the context the document needs.
type Download struct {
	Title  string
	Data   []byte
	Format subtitle.Format
	Lang   string
}

// Downloader fetches captions for a video URL. The core pipeline never does
// network access itself; this is its only collaborator that does.
type Downloader interface {
	Fetch(ctx context.Context, url string) (*Download, error)
}
