// Package rulepack loads and compiles the chat export heuristics from the embedded v1 rules.json.
// It prepares the system notice list, the ordered media indicator sets and the emoji ranges
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed rules.json
var embedded []byte

type rawMediaV1 struct {
	Category   string   `json:"category"`
	Indicators []string `json:"indicators"`
}

type rawWordsV1 struct {
	MinLength int `json:"min_length"`
}

type rawTopV1 struct {
	Words  int `json:"words"`
	Emojis int `json:"emojis"`
}

type rawPackV1 struct {
	Version       int            `json:"version"`
	Meta          map[string]any `json:"meta"`
	SystemNotices []string       `json:"system_notices"`
	Media         []rawMediaV1   `json:"media"`
	EmojiRanges   [][2]string    `json:"emoji_ranges"`
	Words         rawWordsV1     `json:"words"`
	Top           rawTopV1       `json:"top"`
}

// MediaSet is one ordered media category with its substring indicators
type MediaSet struct {
	Category   string
	Indicators []string
}

// RuneRange is an inclusive code point range
type RuneRange struct {
	Lo, Hi rune
}

// Pack represents a compiled rule pack for the chat engine
type Pack struct {
	Version int

	// SystemNotices are substrings that mark operational lines
	SystemNotices []string

	// Media is ordered; the first matching set wins
	Media []MediaSet

	// EmojiRanges are sorted by Lo and merged
	EmojiRanges []RuneRange

	// MinWordLength is the shortest counted word (inclusive)
	MinWordLength int

	// TopWords and TopEmojis are the report list limits
	TopWords  int
	TopEmojis int

	Meta map[string]any
}

var (
	defaultOnce sync.Once
	defaultPack *Pack
	defaultErr  error
)

// Load returns the compiled pack from the embedded v1 rules.json
func Load() (*Pack, error) {
	return Parse(embedded)
}

// MustLoad returns the embedded pack, compiled once per process, and panics when it is broken
func MustLoad() *Pack {
	defaultOnce.Do(func() {
		defaultPack, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultPack
}

// Parse compiles a pack from raw rules.json bytes
func Parse(raw []byte) (*Pack, error) {
	var rp rawPackV1
	if err := json.Unmarshal(raw, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("rulepack: unsupported rules.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:       rp.Version,
		Meta:          rp.Meta,
		MinWordLength: rp.Words.MinLength,
		TopWords:      rp.Top.Words,
		TopEmojis:     rp.Top.Emojis,
	}
	if p.MinWordLength <= 0 {
		p.MinWordLength = 4
	}
	if p.TopWords <= 0 {
		p.TopWords = 20
	}
	if p.TopEmojis <= 0 {
		p.TopEmojis = 10
	}

	for _, s := range rp.SystemNotices {
		if s = strings.TrimSpace(s); s != "" {
			p.SystemNotices = append(p.SystemNotices, s)
		}
	}

	// media keeps file order, indicators stay case-sensitive
	seen := make(map[string]struct{}, len(rp.Media))
	for _, m := range rp.Media {
		cat := strings.ToLower(strings.TrimSpace(m.Category))
		if cat == "" {
			return nil, fmt.Errorf("rulepack: media set without category")
		}
		if _, dup := seen[cat]; dup {
			return nil, fmt.Errorf("rulepack: duplicate media category %q", cat)
		}
		seen[cat] = struct{}{}
		set := MediaSet{Category: cat}
		for _, ind := range m.Indicators {
			if ind != "" {
				set.Indicators = append(set.Indicators, ind)
			}
		}
		p.Media = append(p.Media, set)
	}

	ranges := make([]RuneRange, 0, len(rp.EmojiRanges))
	for _, pair := range rp.EmojiRanges {
		lo, err := parseCodePoint(pair[0])
		if err != nil {
			return nil, err
		}
		hi, err := parseCodePoint(pair[1])
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, fmt.Errorf("rulepack: emoji range %s..%s is inverted", pair[0], pair[1])
		}
		ranges = append(ranges, RuneRange{Lo: lo, Hi: hi})
	}
	p.EmojiRanges = mergeRanges(ranges)

	return p, nil
}

// IsEmoji reports whether r falls in one of the emoji ranges
func (p *Pack) IsEmoji(r rune) bool {
	rs := p.EmojiRanges
	i := sort.Search(len(rs), func(i int) bool { return rs[i].Hi >= r })
	return i < len(rs) && rs[i].Lo <= r
}

// IsSystemNotice reports whether line carries a system notice substring
func (p *Pack) IsSystemNotice(line string) bool {
	for _, s := range p.SystemNotices {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// Categories returns the media categories in precedence order
func (p *Pack) Categories() []string {
	out := make([]string, 0, len(p.Media))
	for _, m := range p.Media {
		out = append(out, m.Category)
	}
	return out
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "U+")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("rulepack: bad code point %q: %w", s, err)
	}
	return rune(v), nil
}

// mergeRanges sorts by Lo and folds overlapping or adjacent ranges
func mergeRanges(in []RuneRange) []RuneRange {
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool { return in[i].Lo < in[j].Lo })
	out := []RuneRange{in[0]}
	for _, r := range in[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
