package summarizer

import "context"

// Segmentation is the model's view of a transcript: a short executive
// summary plus the transcript re-split into semantic paragraphs. Paragraphs
// contain the input text with breaks inserted, never rewritten content.
type Segmentation struct {
	Summary    string
	Paragraphs []string
}

// Summarizer produces a summary and paragraph segmentation for a plain-text
// transcript by calling an external text-generation service. Every failure
// is recoverable: callers fall back to heuristic paragraph composition and
// must never surface a summarizer error as fatal.
type Summarizer interface {
	SummarizeAndSegment(ctx context.Context, transcript string) (Segmentation, error)
}
