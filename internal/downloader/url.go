package downloader

import (
	"regexp"
	"strings"
)

var videoIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NormalizeURL turns whatever the user pasted into a full YouTube URL.
// Accepted inputs: a bare video ID, a watch/short URL with or without the
// scheme, or any already-complete URL (returned unchanged).
func NormalizeURL(input string) string {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input
	}

	if strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be") {
		return "https://" + input
	}

	if videoIDRe.MatchString(input) {
		return "https://www.youtube.com/watch?v=" + input
	}

	// Last resort: treat it as a video ID anyway.
	return "https://www.youtube.com/watch?v=" + input
}
