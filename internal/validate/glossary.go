package validate

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxWordSize bounds each source or target word, in UTF-8 bytes.
	MaxWordSize = 1024

	// MaxGlossarySize bounds the summed size of all words, in UTF-8 bytes.
	// A glossary must stay strictly below it.
	MaxGlossarySize = 10 * 1024 * 1024
)

// Entries checks a glossary's source->target word mapping against the
// default size limit. A nil mapping means "leave entries unchanged" and is
// valid. The mapping is returned as is; values are checked, not normalized.
func Entries(entries map[string]string) (map[string]string, error) {
	return EntriesWithLimit(entries, MaxGlossarySize)
}

// EntriesWithLimit is Entries with a custom aggregate size limit.
func EntriesWithLimit(entries map[string]string, limit int) (map[string]string, error) {
	if entries == nil {
		return nil, nil
	}

	total := 0
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		value := entries[key]
		if err := checkEntry(key, value); err != nil {
			return nil, err
		}
		total += len(key) + len(value)
	}

	if total >= limit {
		return nil, newError("entries", "Maximum dictionary size is %d UTF-8 bytes.", limit)
	}

	return entries, nil
}

func checkEntry(key, value string) error {
	if !utf8.ValidString(key) || !utf8.ValidString(value) {
		return newError("entries",
			"Source and target words must be valid UTF-8 for key %q.", key)
	}

	if strings.TrimFunc(key, isSpace) == "" || strings.TrimFunc(value, isSpace) == "" {
		return newError("entries",
			"Neither the source nor the target word can be empty for key %s.", key)
	}

	if strings.ContainsAny(key, "\t\n") || strings.ContainsAny(value, "\t\n") {
		return newError("entries",
			`Special characters like tabulation (\t) or newline (\n) are not allowed for key %s.`, key)
	}

	if hasOuterSpace(key) || hasOuterSpace(value) {
		return newError("entries",
			"Leading or trailing Unicode whitespace characters are not allowed for key %s.", key)
	}

	if len(key) > MaxWordSize || len(value) > MaxWordSize {
		return newError("entries",
			"Max size for each source/target text is %d UTF-8 bytes for key %s.", MaxWordSize, key)
	}

	return nil
}

func hasOuterSpace(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return isSpace(first) || isSpace(last)
}

// isSpace extends unicode.IsSpace with the ASCII separators FS, GS, RS and US.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
