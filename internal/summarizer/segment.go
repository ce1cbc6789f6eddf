package summarizer

import (
	"context"
	"fmt"
	"strings"
)

const segmentPrompt = `You are analyzing a video transcript. Insert paragraph breaks at semantically meaningful points (topic changes, major transitions).

Rules:
- Insert <BREAK> markers where natural paragraph breaks should occur
- Keep existing text exactly as-is
- Only add <BREAK> markers, don't modify content
- Aim for paragraphs of 3-6 sentences
- Break at topic transitions, not mid-thought

Text:
%s

Output the text with <BREAK> markers inserted:`

const summaryPrompt = `You are a professional transcript summarizer. Generate a concise executive summary of the following video transcript.

Your summary should:
- Be 2-4 sentences maximum
- Capture the main topic and key points
- Be written in present tense
- Focus on what the video covers, not who is speaking

Transcript:
%s

Summary:`

const (
	breakMarker       = "<BREAK>"
	summaryInputLimit = 3000 // chars of transcript fed to the summary prompt
	segmentChunkChars = 8000 // transcripts beyond this are segmented per chunk
)

// generateFunc is one prompt/response round trip against a backend.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// segmentTranscript runs the paragraph-break prompt over the transcript,
// chunking very long inputs, and validates the model kept the content.
func segmentTranscript(ctx context.Context, transcript string, generate generateFunc) ([]string, error) {
	var paragraphs []string
	for _, chunk := range chunkTranscript(transcript, segmentChunkChars) {
		out, err := generate(ctx, fmt.Sprintf(segmentPrompt, chunk))
		if err != nil {
			return nil, err
		}
		parts := splitOnBreaks(out)
		if coverage(parts) < len(chunk)*7/10 {
			return nil, fmt.Errorf("segmentation dropped content: got %d of %d chars", coverage(parts), len(chunk))
		}
		paragraphs = append(paragraphs, parts...)
	}
	if len(paragraphs) < 2 {
		return nil, fmt.Errorf("segmentation produced only %d paragraph(s)", len(paragraphs))
	}
	return paragraphs, nil
}

func summarizeTranscript(ctx context.Context, transcript string, generate generateFunc) (string, error) {
	input := transcript
	if len(input) > summaryInputLimit {
		input = input[:summaryInputLimit]
	}
	out, err := generate(ctx, fmt.Sprintf(summaryPrompt, input))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func splitOnBreaks(output string) []string {
	var parts []string
	for _, p := range strings.Split(output, breakMarker) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func coverage(paragraphs []string) int {
	total := 0
	for _, p := range paragraphs {
		total += len(p)
	}
	return total
}

// chunkTranscript splits long transcripts at word boundaries so each piece
// fits a single segmentation prompt.
func chunkTranscript(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	var b strings.Builder
	for _, w := range strings.Fields(text) {
		if b.Len() > 0 && b.Len()+len(w)+1 > limit {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
