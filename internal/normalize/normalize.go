package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order; all are read as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
}

var sizeRe = regexp.MustCompile(`(?i)([0-9.]+)\s*(KB|MB|GB|B)`)

// ParseTimestamp parses s with the first matching layout. ok is false when
// no layout matches.
func ParseTimestamp(s string) (t time.Time, ok bool) {
	s = Trim(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ComputeDuration returns end-start as HH:MM:SS, or "" when either side
// does not parse.
func ComputeDuration(start, end string) string {
	s, ok := ParseTimestamp(start)
	if !ok {
		return ""
	}
	e, ok := ParseTimestamp(end)
	if !ok {
		return ""
	}
	return SecondsToHHMMSS(int(e.Sub(s) / time.Second))
}

// SecondsToHHMMSS formats n seconds as zero-padded HH:MM:SS. Hours are not
// wrapped at 24 and negative input is clamped to zero.
func SecondsToHHMMSS(n int) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", n/3600, (n%3600)/60, n%60)
}

// SizeToGB converts the first "<number> <unit>" occurrence in text to
// gigabytes (1024-based) with two decimals. Text without a size is
// returned unchanged.
func SizeToGB(text string) string {
	m := sizeRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return text
	}
	switch strings.ToUpper(m[2]) {
	case "B":
		val /= 1024 * 1024 * 1024
	case "KB":
		val /= 1024 * 1024
	case "MB":
		val /= 1024
	}
	return strconv.FormatFloat(val, 'f', 2, 64)
}

// ExtractDate returns the leading YYYY-MM-DD of a timestamp string. It is
// purely lexical.
func ExtractDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ""
}

// Trim strips spaces, tabs, CR and LF from both ends.
func Trim(s string) string {
	return strings.Trim(s, " \t\r\n")
}
