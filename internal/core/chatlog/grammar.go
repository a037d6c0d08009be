package chatlog

import (
	"regexp"
	"strings"
)

// Format names one supported export header shape
type Format uint8

const (
	FormatUnknown Format = iota
	FormatBracketed
	FormatDashed
)

func (f Format) String() string {
	switch f {
	case FormatBracketed:
		return "bracketed"
	case FormatDashed:
		return "dashed"
	default:
		return "unknown"
	}
}

// Verdict classifies one line against the grammar
type Verdict uint8

const (
	// VerdictNone means the line has no header; it continues the open message
	VerdictNone Verdict = iota
	// VerdictHeader means a date/time header without a participant, e.g. a group event
	VerdictHeader
	// VerdictMessage means a full message line
	VerdictMessage
)

// Fields are the raw tokens of one message
type Fields struct {
	Format      Format
	Date        string
	Time        string
	Participant string
	Body        string
	// Line is the zero-based index of the header line in the filtered input
	Line int
}

const (
	datePat = `(\d{1,2}/\d{1,2}/\d{2,4})`
	timePat = `(\d{1,2}:\d{1,2}(?::\d{1,2})?(?:[\s\x{00A0}\x{202F}]?[AaPp]\.?[Mm]\.?)?)`
	gapPat  = `[\s\x{00A0}\x{202F}]`
	tailPat = `([^:]+):(?:[\s\x{00A0}](.*))?$`
)

// shape is one variant of the tagged union: a full message pattern plus its header prefix
type shape struct {
	format Format
	full   *regexp.Regexp
	header *regexp.Regexp
}

var shapes = map[Format]shape{
	FormatBracketed: {
		format: FormatBracketed,
		full:   regexp.MustCompile(`^\[` + datePat + `,` + gapPat + `*` + timePat + `\]` + gapPat + `*(?:-` + gapPat + `+)?` + tailPat),
		header: regexp.MustCompile(`^\[` + datePat + `,` + gapPat + `*` + timePat + `\]`),
	},
	FormatDashed: {
		format: FormatDashed,
		full:   regexp.MustCompile(`^` + datePat + `,` + gapPat + `*` + timePat + gapPat + `+-` + gapPat + `+` + tailPat),
		header: regexp.MustCompile(`^` + datePat + `,` + gapPat + `*` + timePat + gapPat + `+-` + gapPat),
	},
}

// Grammar holds the supported shapes in precedence order
type Grammar struct {
	shapes []shape
}

// DefaultGrammar tries bracketed first, then dashed
func DefaultGrammar() Grammar {
	return NewGrammar(FormatBracketed, FormatDashed)
}

// NewGrammar builds a grammar over the given formats in the given order. Unknown and repeated formats are skipped
func NewGrammar(formats ...Format) Grammar {
	g := Grammar{}
	seen := map[Format]bool{}
	for _, f := range formats {
		s, ok := shapes[f]
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		g.shapes = append(g.shapes, s)
	}
	return g
}

// Formats returns the formats in precedence order
func (g Grammar) Formats() []Format {
	out := make([]Format, 0, len(g.shapes))
	for _, s := range g.shapes {
		out = append(out, s.format)
	}
	return out
}

// Match classifies line. The first shape whose full pattern matches wins; otherwise any header
// prefix makes it a VerdictHeader
func (g Grammar) Match(line string) (Fields, Verdict) {
	line = trimLine(line)
	for _, s := range g.shapes {
		m := s.full.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := cleanParticipant(m[3])
		if name == "" {
			continue
		}
		return Fields{
			Format:      s.format,
			Date:        m[1],
			Time:        m[2],
			Participant: name,
			Body:        m[4],
		}, VerdictMessage
	}
	for _, s := range g.shapes {
		if s.header.MatchString(line) {
			return Fields{Format: s.format}, VerdictHeader
		}
	}
	return Fields{}, VerdictNone
}

// IsBoundary reports whether line starts a new record (message or header-only event)
func (g Grammar) IsBoundary(line string) bool {
	line = trimLine(line)
	for _, s := range g.shapes {
		if s.header.MatchString(line) {
			return true
		}
	}
	return false
}

// trimLine drops a trailing CR and the leading BOM or direction marks some exporters prepend
func trimLine(line string) string {
	line = strings.TrimSuffix(line, "\r")
	return strings.TrimLeft(line, "\uFEFF\u200E\u200F")
}

func cleanParticipant(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\u200E\u200F\u202A\u202C")
	return strings.TrimSpace(s)
}
