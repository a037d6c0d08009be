package normalize

import (
	"strings"
	"unicode/utf8"
)

// invisible marks some exporters sprinkle through lines; ZWJ stays because emoji sequences need it
const (
	lrm = '\u200E'
	rlm = '\u200F'
	bom = '\uFEFF'
)

// dropRune reports runes the tokenizer must never see: C0 controls other than tab, LF and CR,
// DEL, C1 controls, direction marks and BOMs
func dropRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20, r == 0x7F, r >= 0x80 && r <= 0x9F:
		return true
	case r == lrm || r == rlm || r == bom:
		return true
	}
	return false
}

// Sanitize removes the runes dropRune rejects and any undecodable bytes.
// A U+FFFD that is really encoded in the input is kept. Clean input comes back unchanged
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, dropRune) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if dropRune(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
