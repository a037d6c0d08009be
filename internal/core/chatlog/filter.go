package chatlog

import "strings"

// NoticeFunc reports whether a line is an operational notice
type NoticeFunc func(line string) bool

// Filter returns text without the lines isNotice flags. Absence of matches returns text unchanged
func Filter(text string, isNotice NoticeFunc) string {
	if text == "" || isNotice == nil {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := FilterLines(lines, isNotice)
	if len(kept) == len(lines) {
		return text
	}
	return strings.Join(kept, "\n")
}

// FilterLines is Filter over pre-split lines. The input slice is not modified
func FilterLines(lines []string, isNotice NoticeFunc) []string {
	if isNotice == nil {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if isNotice(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SplitLines splits normalized text on LF and drops the empty tail a final newline leaves behind
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
