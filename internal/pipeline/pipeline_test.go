package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/caption-scribe/internal/config"
	"github.com/nguyentantai21042004/caption-scribe/internal/downloader"
	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
	"github.com/nguyentantai21042004/caption-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/caption-scribe/internal/transcript"
)

const pipelineVTT = `WEBVTT

00:00:00.000 --> 00:00:02.000
the quick brown

00:00:02.000 --> 00:00:04.000
quick brown fox jumps

00:00:10.000 --> 00:00:12.000
A completely new topic starts
`

const pipelineSRT = `1
00:00:00,000 --> 00:00:02,000
the quick brown

2
00:00:02,000 --> 00:00:04,000
quick brown fox jumps

3
00:00:10,000 --> 00:00:12,000
A completely new topic starts
`

type fakeDownloader struct {
	dl  *downloader.Download
	err error
}

func (f *fakeDownloader) Fetch(ctx context.Context, url string) (*downloader.Download, error) {
	return f.dl, f.err
}

type fakeSummarizer struct {
	seg summarizer.Segmentation
	err error
}

func (f *fakeSummarizer) SummarizeAndSegment(ctx context.Context, text string) (summarizer.Segmentation, error) {
	return f.seg, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Output.Quiet = true
	return cfg
}

func newTestPipeline(cfg *config.Config, dl downloader.Downloader, summ summarizer.Summarizer) *implPipeline {
	return New(cfg, dl, summ, logger.New("error")).(*implPipeline)
}

func TestComposeDocument(t *testing.T) {
	ctx := context.Background()
	p := newTestPipeline(testConfig(t), nil, nil)

	doc, err := p.ComposeDocument(ctx, []byte(pipelineVTT), subtitle.FormatVTT, "Test Video", p.optionsFromConfig())
	if err != nil {
		t.Fatalf("ComposeDocument() error = %v", err)
	}

	if !strings.HasPrefix(doc, "# Test Video\n") {
		t.Errorf("document missing title heading:\n%s", doc)
	}
	if !strings.Contains(doc, "the quick brown fox jumps.") {
		t.Errorf("overlap not collapsed or gap period missing:\n%s", doc)
	}
	if !strings.Contains(doc, "A completely new topic starts") {
		t.Errorf("second paragraph missing:\n%s", doc)
	}
	if strings.Count(doc, "quick brown") != 1 {
		t.Errorf("duplicated caption text survived:\n%s", doc)
	}
	if strings.Contains(doc, "Executive Summary") {
		t.Errorf("no summary expected without a summarizer:\n%s", doc)
	}
}

func TestComposeDocumentFormatParity(t *testing.T) {
	ctx := context.Background()
	p := newTestPipeline(testConfig(t), nil, nil)
	opts := p.optionsFromConfig()

	fromVTT, err := p.ComposeDocument(ctx, []byte(pipelineVTT), subtitle.FormatVTT, "Same Video", opts)
	if err != nil {
		t.Fatal(err)
	}
	fromSRT, err := p.ComposeDocument(ctx, []byte(pipelineSRT), subtitle.FormatSRT, "Same Video", opts)
	if err != nil {
		t.Fatal(err)
	}

	if fromVTT != fromSRT {
		t.Errorf("same content must render identically regardless of input format:\nVTT:\n%s\nSRT:\n%s", fromVTT, fromSRT)
	}
}

func TestComposeDocumentErrors(t *testing.T) {
	ctx := context.Background()
	p := newTestPipeline(testConfig(t), nil, nil)
	opts := p.optionsFromConfig()

	tests := []struct {
		name    string
		data    string
		format  subtitle.Format
		wantErr error
	}{
		{"unsupported format", pipelineVTT, subtitle.Format("ssa"), subtitle.ErrUnsupportedFormat},
		{"malformed input", "not a subtitle file", subtitle.FormatVTT, subtitle.ErrMalformedSubtitle},
		{"label-only captions", "WEBVTT\n\n00:00:00.000 --> 00:00:02.000\n[Music]\n\n00:00:02.000 --> 00:00:04.000\n[Applause]\n", subtitle.FormatVTT, transcript.ErrEmptyTranscript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ComposeDocument(ctx, []byte(tt.data), tt.format, "t", opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ComposeDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestComposeDocumentAISummary(t *testing.T) {
	ctx := context.Background()
	summ := &fakeSummarizer{
		seg: summarizer.Segmentation{
			Summary:    "A tidy overview.",
			Paragraphs: []string{"AI paragraph one.", "AI paragraph two."},
		},
	}
	p := newTestPipeline(testConfig(t), nil, summ)

	doc, err := p.ComposeDocument(ctx, []byte(pipelineVTT), subtitle.FormatVTT, "AI Video", p.optionsFromConfig())
	if err != nil {
		t.Fatalf("ComposeDocument() error = %v", err)
	}

	for _, want := range []string{"## Executive Summary", "A tidy overview.", "## Full Transcript", "AI paragraph one.", "AI paragraph two."} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestComposeDocumentAIFallback(t *testing.T) {
	ctx := context.Background()
	summ := &fakeSummarizer{err: errors.New("model unavailable")}
	p := newTestPipeline(testConfig(t), nil, summ)

	doc, err := p.ComposeDocument(ctx, []byte(pipelineVTT), subtitle.FormatVTT, "Fallback Video", p.optionsFromConfig())
	if err != nil {
		t.Fatalf("AI failure must not fail the run, got error = %v", err)
	}

	if strings.Contains(doc, "Executive Summary") {
		t.Errorf("failed AI path must not leave a summary section:\n%s", doc)
	}
	if !strings.Contains(doc, "the quick brown fox jumps") {
		t.Errorf("heuristic transcript missing from fallback document:\n%s", doc)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	dl := &fakeDownloader{dl: &downloader.Download{
		Title:  "Some: Video / Title?",
		Data:   []byte(pipelineVTT),
		Format: subtitle.FormatVTT,
		Lang:   "en",
	}}
	p := newTestPipeline(cfg, dl, nil)

	res, err := p.Run(ctx, "dQw4w9WgXcQ", "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Title != "Some: Video / Title?" {
		t.Errorf("Title = %q", res.Title)
	}
	if filepath.Dir(res.Path) != cfg.Output.Dir {
		t.Errorf("Path = %q, want it inside %q", res.Path, cfg.Output.Dir)
	}
	if base := filepath.Base(res.Path); strings.ContainsAny(base, ":/?") {
		t.Errorf("unsafe characters in output file name %q", base)
	}

	written, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(written) != res.Document {
		t.Error("file content differs from Result.Document")
	}
}

func TestRunExplicitOutputPath(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	dl := &fakeDownloader{dl: &downloader.Download{
		Title:  "Video",
		Data:   []byte(pipelineVTT),
		Format: subtitle.FormatVTT,
	}}
	p := newTestPipeline(cfg, dl, nil)

	out := filepath.Join(t.TempDir(), "custom.md")
	res, err := p.Run(ctx, "dQw4w9WgXcQ", out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Path != out {
		t.Errorf("Path = %q, want %q", res.Path, out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestRunDownloadError(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("yt-dlp exploded")
	p := newTestPipeline(testConfig(t), &fakeDownloader{err: wantErr}, nil)

	_, err := p.Run(ctx, "dQw4w9WgXcQ", "")
	if !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestProcessFile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	p := newTestPipeline(cfg, nil, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "lecture-01.srt")
	if err := os.WriteFile(path, []byte(pipelineSRT), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := p.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if res.Title != "lecture-01" {
		t.Errorf("Title = %q, want file name without extension", res.Title)
	}
	if !strings.HasPrefix(res.Document, "# lecture-01\n") {
		t.Errorf("document heading = %q", strings.SplitN(res.Document, "\n", 2)[0])
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestProcessFileUnknownExtensionSniffs(t *testing.T) {
	ctx := context.Background()
	p := newTestPipeline(testConfig(t), nil, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "captions.txt")
	if err := os.WriteFile(path, []byte(pipelineVTT), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := p.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if !strings.Contains(res.Document, "the quick brown fox jumps") {
		t.Errorf("sniffed VTT content missing:\n%s", res.Document)
	}
}
