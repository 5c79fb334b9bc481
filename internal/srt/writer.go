package srt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// WriteFile writes f to path.
func WriteFile(path string, f *File) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write writes the cues of f in SRT format.
func Write(w io.Writer, f *File) error {
	if f == nil {
		return fmt.Errorf("subtitle data is empty")
	}

	writer := bufio.NewWriter(w)
	for i, cue := range f.Cues {
		index := cue.Index
		if index == 0 {
			index = i + 1
		}
		fmt.Fprintf(writer, "%d\n", index)
		fmt.Fprintf(writer, "%s --> %s\n", formatDuration(cue.Start), formatDuration(cue.End))
		fmt.Fprintf(writer, "%s\n\n", cue.Text)
	}
	return writer.Flush()
}

// formatDuration formats time.Duration to SRT time format
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	milliseconds := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, milliseconds)
}
