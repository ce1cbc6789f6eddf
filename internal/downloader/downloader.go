package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
)

// Fetch downloads the caption track for url into a temp dir and returns the
// payload with its declared format and the video title. Manual subtitles
// are preferred; auto-generated ones are accepted as fallback. No retry:
// the caption content is static, retrying changes nothing.
func (d *implDownloader) Fetch(ctx context.Context, url string) (*Download, error) {
	title, err := d.fetchTitle(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch video title: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "caption-scribe-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	args := []string{
		"--no-warnings",
		"--no-progress",
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", d.lang,
		"--sub-format", "vtt/srt",
		"-o", "%(id)s.%(ext)s",
		url,
	}
	if _, err := d.executor.ExecuteInDir(ctx, tempDir, d.binary, args...); err != nil {
		return nil, fmt.Errorf("download captions: %w", err)
	}

	path, format, err := findSubtitleFile(tempDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	d.logger.Debug(ctx, "Downloaded %d bytes of %s captions for %q", len(data), format, title)

	return &Download{
		Title:  title,
		Data:   data,
		Format: format,
		Lang:   d.lang,
	}, nil
}

func (d *implDownloader) fetchTitle(ctx context.Context, url string) (string, error) {
	out, err := d.executor.Execute(ctx, d.binary,
		"--no-warnings", "--skip-download", "--print", "title", url)
	if err != nil {
		return "", err
	}
	// yt-dlp may emit notices before the printed field; the title is the
	// last non-empty line.
	title := ""
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			title = line
		}
	}
	if title == "" {
		title = "Untitled"
	}
	return title, nil
}

// findSubtitleFile locates the downloaded caption file. yt-dlp names it
// <id>.<lang>.<ext>; any .vtt or .srt in the dir is acceptable.
func findSubtitleFile(dir string) (string, subtitle.Format, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("scan temp dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if format, ok := subtitle.FormatFromExtension(filepath.Ext(e.Name())); ok {
			return filepath.Join(dir, e.Name()), format, nil
		}
	}
	return "", "", ErrNoSubtitle
}
