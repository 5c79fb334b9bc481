package srt

import (
	"time"

	"golang.org/x/text/language"
)

// Cue represents a single subtitle cue
type Cue struct {
	Index int           // cue number as written in the file
	Start time.Duration // start time
	End   time.Duration // end time
	Text  string        // cue text, lines joined with "\n"
}

// File represents a parsed SRT file
type File struct {
	Cues     []Cue
	Language language.Tag // detected from the cue text, language.Und if unknown
}

// Side selects the text of a segment a file maps to.
type Side int

const (
	Source Side = iota
	Destination
)

func (s Side) String() string {
	if s == Destination {
		return "dst"
	}
	return "src"
}
