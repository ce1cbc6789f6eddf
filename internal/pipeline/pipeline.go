package pipeline

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
	"github.com/nguyentantai21042004/caption-scribe/internal/transcript"
	"github.com/nguyentantai21042004/caption-scribe/internal/ui"
)

// ComposeDocument is the core conversion: raw bytes -> cues -> clean lines
// -> paragraphs -> rendered document. Parsing and deduplication errors are
// fatal and propagate unchanged; only the AI path degrades gracefully.
func (p *implPipeline) ComposeDocument(ctx context.Context, data []byte, format subtitle.Format, title string, opts Options) (string, error) {
	cues, stats, err := subtitle.Parse(data, format)
	if err != nil {
		return "", err
	}
	if stats.SkippedBlocks > 0 {
		p.logger.Warn(ctx, "Skipped %d malformed caption block(s)", stats.SkippedBlocks)
	}

	lines := transcript.Deduplicate(cues, transcript.DedupOptions{
		KeepLabels:    opts.KeepLabels,
		OverlapWindow: opts.OverlapWindow,
	})
	if len(lines) == 0 {
		return "", transcript.ErrEmptyTranscript
	}

	summary, paragraphs := p.aiParagraphs(ctx, lines)
	if len(paragraphs) == 0 {
		paragraphs = transcript.Compose(lines, transcript.ComposeOptions{
			GapThreshold: opts.GapThreshold,
			TargetChars:  opts.TargetChars,
			MaxChars:     opts.MaxChars,
		})
	}

	return transcript.Render(title, summary, paragraphs), nil
}

// aiParagraphs runs the optional AI path. Every failure is fully recovered
// here: the caller falls back to heuristic composition and the user only
// ever sees a warning.
func (p *implPipeline) aiParagraphs(ctx context.Context, lines []transcript.Line) (string, []string) {
	if p.summarizer == nil {
		return "", nil
	}

	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}

	sp := ui.NewSpinner("Generating AI summary", p.cfg.Output.Quiet)
	sp.Start()
	seg, err := p.summarizer.SummarizeAndSegment(ctx, strings.Join(parts, " "))
	sp.Stop()

	if err != nil {
		p.logger.Warn(ctx, "AI processing unavailable, using heuristic formatting: %v", err)
		return "", nil
	}
	return seg.Summary, seg.Paragraphs
}

func (p *implPipeline) optionsFromConfig() Options {
	t := p.cfg.Transcript
	return Options{
		Language:      p.cfg.Downloader.Language,
		KeepLabels:    t.KeepLabels,
		OverlapWindow: t.OverlapWindowWords,
		GapThreshold:  p.cfg.GapThreshold(),
		TargetChars:   t.TargetParagraphChars,
		MaxChars:      t.MaxParagraphChars,
	}
}
