package transcript

import (
	"errors"
	"time"
)

// ErrEmptyTranscript means every cue reduced to nothing after label
// stripping and deduplication, e.g. the source only contained [Music]
// markers. Callers use this to explain that the captions had no speech.
var ErrEmptyTranscript = errors.New("captions contained no speech after cleanup")

// Line is a cue's text after markup/label stripping and removal of content
// already emitted by earlier cues. Start is inherited from the cue that
// contributed the text.
type Line struct {
	Text  string
	Start time.Duration
}
