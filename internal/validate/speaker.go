package validate

import (
	"strings"
	"unicode"
)

// SpeakerPrefix starts every speaker label, e.g. SPEAKER_00.
const SpeakerPrefix = "SPEAKER_"

// Speaker checks a speaker label. A nil speaker means none was assigned and is
// valid. Otherwise the label must start with SpeakerPrefix followed by an
// integer; the trimmed label is returned.
func Speaker(speaker *string) (*string, error) {
	if speaker == nil {
		return nil, nil
	}

	v := *speaker
	if !strings.HasPrefix(v, SpeakerPrefix) {
		return nil, newError("speaker", "Speaker %s must start with %s.", v, SpeakerPrefix)
	}

	suffix := strings.TrimSpace(strings.TrimPrefix(v, SpeakerPrefix))
	if !isInteger(suffix) {
		return nil, newError("speaker",
			"Speaker %s contains invalid characters. Speaker example: %s00", v, SpeakerPrefix)
	}

	trimmed := strings.TrimSpace(v)
	return &trimmed, nil
}

// isInteger reports whether s is an optional sign followed by Unicode decimal
// digits, of any length.
func isInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
