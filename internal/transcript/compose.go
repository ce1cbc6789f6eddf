package transcript

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultGapThreshold is the silence length treated as a topic change.
	DefaultGapThreshold = 3 * time.Second
	// DefaultTargetChars is the paragraph size after which a sentence
	// boundary triggers a break.
	DefaultTargetChars = 500
	// DefaultMaxChars is the hard paragraph cap. Reaching it breaks even
	// mid-sentence; that is intentional, not a bug.
	DefaultMaxChars = 1200
)

// ComposeOptions tunes the paragraph break heuristics.
type ComposeOptions struct {
	GapThreshold time.Duration
	TargetChars  int
	MaxChars     int
}

// Compose merges clean lines into paragraphs. At every line boundary the
// three break conditions are checked in priority order:
//
//  1. the time gap to the previous line exceeds GapThreshold,
//  2. the paragraph is past TargetChars and the next line starts a new
//     sentence after terminal punctuation,
//  3. the paragraph reached MaxChars (safety valve, may cut mid-sentence).
//
// A gap break on text without terminal punctuation gets a period appended,
// approximating the sentence boundary from timing rather than grammar.
func Compose(lines []Line, opts ComposeOptions) []string {
	gap := opts.GapThreshold
	if gap <= 0 {
		gap = DefaultGapThreshold
	}
	target := opts.TargetChars
	if target <= 0 {
		target = DefaultTargetChars
	}
	max := opts.MaxChars
	if max <= 0 {
		max = DefaultMaxChars
	}

	var paragraphs []string
	var current strings.Builder

	commit := func() {
		text := strings.Join(strings.Fields(current.String()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	for i, line := range lines {
		if current.Len() > 0 {
			switch {
			case line.Start-lines[i-1].Start > gap:
				if !endsWithTerminator(current.String()) {
					current.WriteByte('.')
				}
				commit()
			case current.Len() > target && endsWithTerminator(current.String()) && startsSentence(line.Text):
				commit()
			case current.Len() >= max:
				commit()
			}
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(line.Text)
	}
	commit()

	return paragraphs
}

func endsWithTerminator(s string) bool {
	s = strings.TrimRight(s, " \t\"'”’)")
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return false
	}
	return r == '.' || r == '!' || r == '?'
}

func startsSentence(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return unicode.IsUpper(r)
}
