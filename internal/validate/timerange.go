package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the textual form of a segment timestamp: HH:MM:SS,ffffff.
const TimestampLayout = "HH:MM:SS,ffffff"

var timestampRe = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2}),(\d{1,6})$`)

// ParseTimestamp parses a time-of-day timestamp into its offset from midnight.
// The fraction holds up to six digits and is read as microseconds, so "5"
// means half a second.
func ParseTimestamp(s string) (time.Duration, error) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("timestamp %q does not match %s", s, TimestampLayout)
	}

	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	ss, _ := strconv.Atoi(m[3])
	if hh > 23 || mm > 59 || ss > 59 {
		return 0, fmt.Errorf("timestamp %q is out of range", s)
	}
	frac := m[4] + strings.Repeat("0", 6-len(m[4]))
	us, _ := strconv.Atoi(frac)

	return time.Duration(hh)*time.Hour +
		time.Duration(mm)*time.Minute +
		time.Duration(ss)*time.Second +
		time.Duration(us)*time.Microsecond, nil
}

// FormatTimestamp renders d as HH:MM:SS,ffffff. Sub-microsecond precision is
// truncated.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	us := d / time.Microsecond

	return fmt.Sprintf("%02d:%02d:%02d,%06d", h, m, s, us)
}

// TimeRange checks a segment's start and end timestamps and returns them
// trimmed. Both must parse and start must come strictly before end.
func TimeRange(start, end string) (string, string, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	startAt, err := ParseTimestamp(start)
	if err != nil {
		return "", "", newError("start", "Invalid timestamp format for segment start: %s.", start)
	}

	endAt, err := ParseTimestamp(end)
	if err != nil {
		return "", "", newError("end", "Invalid timestamp format for segment end: %s.", end)
	}

	if startAt >= endAt {
		return "", "", newError("", "Segment start must be less than segment end.")
	}

	return start, end, nil
}
