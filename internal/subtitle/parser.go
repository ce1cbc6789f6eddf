package subtitle

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnsupportedFormat means the declared format is neither VTT nor SRT.
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")
	// ErrMalformedSubtitle means no parseable cue was found in the input.
	ErrMalformedSubtitle = errors.New("no parseable cues found in subtitle data")
)

var (
	vttTimestampRe = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})\.(\d{3})\s+-->\s+(\d{2}:\d{2}:\d{2})\.(\d{3})`)
	srtTimestampRe = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}),(\d{3})\s+-->\s+(\d{2}:\d{2}:\d{2}),(\d{3})`)
	srtIndexRe     = regexp.MustCompile(`^\d+$`)
	inlineTagRe    = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat inspects the first bytes of a subtitle payload and reports
// whether it looks like WebVTT. Everything else is assumed to be SRT, which
// matches how download tooling names the two formats.
func DetectFormat(data []byte) Format {
	head := data
	if len(head) > 100 {
		head = head[:100]
	}
	if strings.Contains(string(head), "WEBVTT") {
		return FormatVTT
	}
	return FormatSRT
}

// Parse converts raw subtitle file content into an ordered cue sequence.
// The pass is strictly linear: each timestamp line opens a block, the text
// lines that follow (until a blank line or the next structural line) become
// one cue. Blocks with broken timestamps are skipped and counted in stats;
// the parse only fails when zero cues survive.
func Parse(data []byte, format Format) ([]Cue, ParseStats, error) {
	var stats ParseStats

	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var cues []Cue
	switch format {
	case FormatVTT:
		cues = parseBlocks(content, vttTimestampRe, false, &stats)
	case FormatSRT:
		cues = parseBlocks(content, srtTimestampRe, true, &stats)
	default:
		return nil, stats, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if len(cues) == 0 {
		return nil, stats, ErrMalformedSubtitle
	}
	return cues, stats, nil
}

// parseBlocks walks the content line by line. srtMode additionally skips
// the numeric sequence lines SRT puts before each timestamp.
func parseBlocks(content string, timestampRe *regexp.Regexp, srtMode bool, stats *ParseStats) []Cue {
	lines := strings.Split(content, "\n")

	var cues []Cue
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || isHeaderLine(line, srtMode) {
			i++
			continue
		}
		if srtMode && srtIndexRe.MatchString(line) {
			i++
			continue
		}

		m := timestampRe.FindStringSubmatch(line)
		if m == nil {
			// A line containing an arrow that did not match the timestamp
			// grammar is a broken block; anything else is stray metadata.
			if strings.Contains(line, "-->") {
				stats.SkippedBlocks++
			}
			i++
			continue
		}
		// Trailing cue settings (position:, align:, ...) after the second
		// timestamp are ignored: the regexp only anchors the times.
		start, end, ok := parseTimestampMatch(m)
		i++
		if !ok {
			stats.SkippedBlocks++
			continue
		}

		var parts []string
		for i < len(lines) {
			text := strings.TrimSpace(lines[i])
			if text == "" || timestampRe.MatchString(text) {
				break
			}
			if srtMode && srtIndexRe.MatchString(text) {
				break
			}
			text = inlineTagRe.ReplaceAllString(text, "")
			if text = strings.TrimSpace(text); text != "" {
				parts = append(parts, text)
			}
			i++
		}

		if len(parts) > 0 {
			cues = append(cues, Cue{Start: start, End: end, Text: strings.Join(parts, " ")})
		}
	}
	return cues
}

func isHeaderLine(line string, srtMode bool) bool {
	if srtMode {
		return false
	}
	return strings.HasPrefix(line, "WEBVTT") ||
		strings.HasPrefix(line, "NOTE") ||
		strings.HasPrefix(line, "Kind:") ||
		strings.HasPrefix(line, "Language:") ||
		strings.HasPrefix(line, "STYLE")
}

func parseTimestampMatch(m []string) (start, end time.Duration, ok bool) {
	start, okStart := parseClock(m[1], m[2])
	end, okEnd := parseClock(m[3], m[4])
	return start, end, okStart && okEnd
}

// parseClock converts "HH:MM:SS" plus a millisecond field into a Duration.
func parseClock(hms, millis string) (time.Duration, bool) {
	fields := strings.Split(hms, ":")
	if len(fields) != 3 {
		return 0, false
	}
	h, errH := strconv.Atoi(fields[0])
	m, errM := strconv.Atoi(fields[1])
	s, errS := strconv.Atoi(fields[2])
	ms, errMS := strconv.Atoi(millis)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, false
	}
	d := time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
	return d, true
}
