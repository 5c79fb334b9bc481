package srt

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/MimeLyc/rask-sdk-go/internal/validate"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

// LanguageCode returns the base language code of tag, e.g. "pt" for pt-BR,
// or "" for language.Und.
func LanguageCode(tag language.Tag) string {
	if tag == language.Und {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

// Segments converts the cues of f into transcription segments holding text
// on the given side. lang overrides the detected language.
func Segments(f *File, side Side, lang string) ([]rask.SegmentCreate, error) {
	if lang == "" {
		lang = LanguageCode(f.Language)
	}
	if lang == "" {
		return nil, fmt.Errorf("cannot detect subtitle language, specify it explicitly")
	}

	segments := make([]rask.SegmentCreate, 0, len(f.Cues))
	for _, cue := range f.Cues {
		start := validate.FormatTimestamp(cue.Start)
		end := validate.FormatTimestamp(cue.End)

		var seg rask.SegmentCreate
		if side == Destination {
			seg = rask.TranslatedSegment(cue.Text, lang, start, end)
		} else {
			seg = rask.SourceSegment(cue.Text, lang, start, end)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// FromTranscription builds an SRT file from the given side of each segment.
// Segments without text on that side are skipped.
func FromTranscription(t *rask.Transcription, side Side) (*File, error) {
	f := &File{Language: language.Und}

	for _, seg := range t.Segments {
		text := seg.Src
		if side == Destination {
			text = seg.Dst
		}
		if text == nil || text.Text == "" {
			continue
		}

		start, err := validate.ParseTimestamp(seg.Start)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", seg.ID, err)
		}
		end, err := validate.ParseTimestamp(seg.End)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", seg.ID, err)
		}

		if f.Language == language.Und && text.Lang != "" {
			if tag, err := language.Parse(text.Lang); err == nil {
				f.Language = tag
			}
		}

		f.Cues = append(f.Cues, Cue{
			Index: len(f.Cues) + 1,
			Start: start,
			End:   end,
			Text:  text.Text,
		})
	}
	return f, nil
}
