package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caption-scribe/internal/downloader"
	"github.com/nguyentantai21042004/caption-scribe/internal/fsutil"
	"github.com/nguyentantai21042004/caption-scribe/internal/render"
	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
	"github.com/nguyentantai21042004/caption-scribe/internal/ui"
)

// Run fetches captions for a video and writes the finished document.
func (p *implPipeline) Run(ctx context.Context, url, outputPath string) (*Result, error) {
	url = downloader.NormalizeURL(url)
	p.logger.Debug(ctx, "Fetching captions: %s", url)

	sp := ui.NewSpinner("Downloading captions", p.cfg.Output.Quiet)
	sp.Start()
	dl, err := p.downloader.Fetch(ctx, url)
	sp.Stop()
	if err != nil {
		return nil, err
	}

	doc, err := p.ComposeDocument(ctx, dl.Data, dl.Format, dl.Title, p.optionsFromConfig())
	if err != nil {
		return nil, err
	}

	path, err := p.writeDocument(dl.Title, doc, outputPath)
	if err != nil {
		return nil, err
	}

	return &Result{Title: dl.Title, Document: doc, Path: path}, nil
}

// ProcessFile converts a subtitle file already on disk, deriving the
// document title from the file name. The declared format follows the
// extension, with a content sniff as fallback.
func (p *implPipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	format, ok := subtitle.FormatFromExtension(filepath.Ext(path))
	if !ok {
		format = subtitle.DetectFormat(data)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	doc, err := p.ComposeDocument(ctx, data, format, title, p.optionsFromConfig())
	if err != nil {
		return nil, err
	}

	outPath, err := p.writeDocument(title, doc, "")
	if err != nil {
		return nil, err
	}

	return &Result{Title: title, Document: doc, Path: outPath}, nil
}

// writeDocument persists the document. An explicit outputPath wins and its
// extension selects the format; otherwise the file lands in the configured
// output dir under a sanitized title.
func (p *implPipeline) writeDocument(title, doc, outputPath string) (string, error) {
	format := p.cfg.Output.Format
	if outputPath != "" {
		if strings.EqualFold(filepath.Ext(outputPath), ".docx") {
			format = "docx"
		} else {
			format = "md"
		}
	} else {
		outputPath = filepath.Join(p.cfg.Output.Dir, fsutil.SanitizeFilename(title)+"."+format)
	}

	if format == "docx" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return "", fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := render.DocxFromMarkdown(doc, outputPath); err != nil {
			return "", fmt.Errorf("write docx: %w", err)
		}
		return outputPath, nil
	}

	return fsutil.WriteFileInDir(filepath.Dir(outputPath), filepath.Base(outputPath), []byte(doc))
}
