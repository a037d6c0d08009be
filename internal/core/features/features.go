// Package features pulls the countable signals out of one message body: words, emoji and media kind
package features

import (
	"strings"

	"chatstats/internal/core/normalize"
	"chatstats/internal/core/rulepack"
)

// Features are everything a single message contributes besides its author and timestamp
type Features struct {
	Words  []string
	Emojis []string
	// Media is the matched media category, empty when the body is not a media placeholder
	Media string
}

// HasMedia reports whether a media category matched
func (f Features) HasMedia() bool { return f.Media != "" }

// Extractor is safe for concurrent use
type Extractor struct {
	pack *rulepack.Pack
	norm *normalize.Normalizer
}

// New returns an Extractor over p; nil uses the embedded pack
func New(p *rulepack.Pack) *Extractor {
	if p == nil {
		p = rulepack.MustLoad()
	}
	return &Extractor{pack: p, norm: normalize.New()}
}

// Pack returns the rule pack in use
func (e *Extractor) Pack() *rulepack.Pack { return e.pack }

// Extract runs all three extractors over body
func (e *Extractor) Extract(body string) Features {
	return Features{
		Words:  e.Words(body),
		Emojis: e.Emojis(body),
		Media:  e.Classify(body),
	}
}

// Words splits body on whitespace and returns the folded tokens at least MinWordLength long, in order
func (e *Extractor) Words(body string) []string {
	toks := strings.Fields(body)
	if len(toks) == 0 {
		return nil
	}
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		w := e.norm.Word(tok)
		if len(w) < e.pack.MinWordLength {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Emojis returns every code point of body that falls in an emoji range, one entry per code point.
// Modifiers such as skin tones are counted on their own when they are in range; joiners,
// variation selectors and ASCII never are
func (e *Extractor) Emojis(body string) []string {
	var out []string
	for _, r := range body {
		if r >= 0x80 && e.pack.IsEmoji(r) {
			out = append(out, string(r))
		}
	}
	return out
}

// Classify returns the first media category whose indicator occurs in body. Matching is
// case-sensitive and the pack order decides precedence
func (e *Extractor) Classify(body string) string {
	for _, set := range e.pack.Media {
		for _, ind := range set.Indicators {
			if strings.Contains(body, ind) {
				return set.Category
			}
		}
	}
	return ""
}
