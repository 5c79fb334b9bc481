package srt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

var timingPattern = regexp.MustCompile(
	`(\d{1,2}):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d{1,2}):(\d{2}):(\d{2})[,.](\d{1,3})`)

// ReadFile reads an SRT file from disk.
func ReadFile(path string) (*File, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".srt") {
		return nil, fmt.Errorf("only SRT subtitle files are supported: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses SRT cues from r and detects their language.
func Read(r io.Reader) (*File, error) {
	var cues []Cue
	scanner := bufio.NewScanner(r)

	current := Cue{}
	state := "index" // possible values: "index", "time", "text"
	var textLines []string

	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		switch state {
		case "index":
			if line == "" {
				continue
			}
			index, err := strconv.Atoi(line)
			if err != nil {
				continue // skip non-index lines
			}
			current.Index = index
			state = "time"

		case "time":
			if line == "" {
				continue
			}
			start, end, err := parseTiming(line)
			if err != nil {
				return nil, fmt.Errorf("cue %d: %w", current.Index, err)
			}
			current.Start = start
			current.End = end
			state = "text"
			textLines = textLines[:0]

		case "text":
			if line != "" {
				textLines = append(textLines, line)
				continue
			}
			if len(textLines) > 0 {
				current.Text = strings.Join(textLines, "\n")
				cues = append(cues, current)
			}
			current = Cue{}
			state = "index"
		}
	}

	// handle last cue
	if state == "text" && len(textLines) > 0 {
		current.Text = strings.Join(textLines, "\n")
		cues = append(cues, current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	return &File{
		Cues:     cues,
		Language: detectLanguage(cues),
	}, nil
}

// parseTiming parses an SRT timing line: 00:02:16,612 --> 00:02:19,376
func parseTiming(s string) (time.Duration, time.Duration, error) {
	matches := timingPattern.FindStringSubmatch(s)
	if len(matches) != 9 {
		return 0, 0, fmt.Errorf("invalid time format: %s", s)
	}

	parse := func(hours, minutes, seconds, millis string) time.Duration {
		h, _ := strconv.Atoi(hours)
		m, _ := strconv.Atoi(minutes)
		sec, _ := strconv.Atoi(seconds)
		// "5" after the separator is 500ms
		ms, _ := strconv.Atoi((millis + "00")[:3])

		return time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(sec)*time.Second +
			time.Duration(ms)*time.Millisecond
	}

	return parse(matches[1], matches[2], matches[3], matches[4]),
		parse(matches[5], matches[6], matches[7], matches[8]), nil
}

// detectLanguage returns the language most cues are written in
func detectLanguage(cues []Cue) language.Tag {
	if len(cues) == 0 {
		return language.Und
	}

	counts := make(map[string]int)
	for _, cue := range cues {
		lang := whatlanggo.DetectLang(cue.Text).Iso6391()
		if lang == "" {
			continue
		}
		counts[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range counts {
		if count > topCount || (count == topCount && lang < topLang) {
			topLang = lang
			topCount = count
		}
	}
	if topLang == "" {
		return language.Und
	}

	tag, err := language.Parse(topLang)
	if err != nil {
		return language.Und
	}
	return tag
}
