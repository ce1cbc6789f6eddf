package transcript

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
)

// DefaultOverlapWindow is how many already-emitted words the deduplicator
// keeps for rolling-caption overlap matching. The exact value only affects
// dedup quality, not correctness, so it is tunable via DedupOptions.
const DefaultOverlapWindow = 30

// DedupOptions controls cue cleanup.
type DedupOptions struct {
	// KeepLabels preserves bracketed speaker/sound labels like [Music].
	KeepLabels bool
	// OverlapWindow bounds the rolling buffer used for overlap matching,
	// in normalized words. Zero selects DefaultOverlapWindow.
	OverlapWindow int
}

var labelRe = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)

// Deduplicate collapses the repetition typical of rolling auto-captions
// into a clean line sequence. Emission order equals cue order; only
// content is reduced, never reordered. The returned slice is empty when
// every cue reduced to nothing.
func Deduplicate(cues []subtitle.Cue, opts DedupOptions) []Line {
	window := opts.OverlapWindow
	if window <= 0 {
		window = DefaultOverlapWindow
	}

	var lines []Line
	var tail []string // normalized words already emitted, bounded by window
	prevNorm := ""

	for _, cue := range cues {
		text := cue.Text
		if !opts.KeepLabels {
			text = labelRe.ReplaceAllString(text, " ")
		}
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}

		normWords := make([]string, len(words))
		for i, w := range words {
			normWords[i] = normalizeWord(w)
		}
		norm := strings.Join(normWords, " ")

		// Fast path: exact repeat of the previous cue.
		if norm == prevNorm {
			continue
		}
		prevNorm = norm

		// Longest suffix of the emitted tail matching a prefix of this cue.
		overlap := overlapLength(tail, normWords)
		if overlap == len(words) {
			continue
		}

		lines = append(lines, Line{
			Text:  strings.Join(words[overlap:], " "),
			Start: cue.Start,
		})

		tail = append(tail, normWords[overlap:]...)
		if len(tail) > window {
			tail = tail[len(tail)-window:]
		}
	}

	return lines
}

// overlapLength returns the largest k such that the last k words of tail
// equal the first k words of current.
func overlapLength(tail, current []string) int {
	max := len(tail)
	if len(current) < max {
		max = len(current)
	}
	for k := max; k > 0; k-- {
		match := true
		for i := 0; i < k; i++ {
			if tail[len(tail)-k+i] != current[i] {
				match = false
				break
			}
		}
		if match {
			return k
		}
	}
	return 0
}

// normalizeWord lowercases and strips punctuation for comparison purposes.
// A word that is nothing but punctuation falls back to its lowercased raw
// form so indices stay aligned with the original word list.
func normalizeWord(w string) string {
	lower := strings.ToLower(w)
	var b strings.Builder
	for _, r := range lower {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return lower
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}
