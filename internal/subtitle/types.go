package subtitle

import (
	"strings"
	"time"
)

// Format identifies the declared subtitle container format.
type Format string

const (
	FormatVTT Format = "vtt"
	FormatSRT Format = "srt"
)

// Cue is a single timestamped caption block as it appears in the file.
// Text is joined across the block's lines with single spaces and stripped
// of inline markup tags; speaker/sound labels like [Music] are kept here
// and handled later by the deduplicator.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// ParseStats reports side effects of a parse pass.
type ParseStats struct {
	SkippedBlocks int
}

// FormatFromExtension maps a file extension (with or without the leading
// dot) to a Format. Returns false when the extension is not a subtitle
// format we handle.
func FormatFromExtension(ext string) (Format, bool) {
	switch normalizeExt(ext) {
	case "vtt":
		return FormatVTT, true
	case "srt":
		return FormatSRT, true
	default:
		return "", false
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
