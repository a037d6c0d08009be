// Package normalize provides the deterministic text clean-up used by the chat engine
// Pipeline order for Text
// 1 Sanitize drop control bytes, direction marks and invalid UTF-8
// 2 Unify line endings CRLF and lone CR to LF
// 3 Unicode NFC composition
//
// Word folds one whitespace-delimited token for frequency counting
// 1 Unicode lower casing
// 2 Keep only word runes (ASCII letters, digits, underscore)
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// casers are stateful, so each goroutine borrows its own
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Text returns the cleaned export text following the pipeline described above
func (n *Normalizer) Text(s string) string {
	if s == "" {
		return ""
	}

	// 1 drop control bytes, marks, invalid UTF-8
	s = Sanitize(s)

	// 2 line endings
	s = lineEndings.Replace(s)

	// 3 composed forms so the same glyph always counts as the same key
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return s
}

// Word lower-cases tok and strips every non-word rune. The result may be empty
func (n *Normalizer) Word(tok string) string {
	if tok == "" {
		return ""
	}
	c := lowerPool.Get().(*cases.Caser)
	lower := c.String(tok)
	c.Reset()
	lowerPool.Put(c)

	return stripNonWord(lower)
}

// stripNonWord keeps [A-Za-z0-9_] only
func stripNonWord(s string) string {
	clean := true
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isWordByte(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
