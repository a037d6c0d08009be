package chatlog

// Stats counts what a Scanner did with its input lines
type Stats struct {
	Lines         int
	Messages      int
	Continuations int
	Dropped       int
}

// Add folds o into s
func (s *Stats) Add(o Stats) {
	s.Lines += o.Lines
	s.Messages += o.Messages
	s.Continuations += o.Continuations
	s.Dropped += o.Dropped
}

// Scanner yields messages one at a time, in input order
//
//	sc := chatlog.NewScanner(lines, 0, chatlog.DefaultGrammar())
//	for sc.Scan() {
//		f := sc.Fields()
//	}
//
// Lines without a header continue the open message and are appended to its body after a "\n".
// Header-only lines are dropped and close the open message, so text after them is dropped too
// until the next full message. Lines before the first message are dropped
type Scanner struct {
	g      Grammar
	lines  []string
	offset int
	pos    int

	pending Fields
	open    bool
	cur     Fields
	stats   Stats
}

// NewScanner scans lines; offset is added to Fields.Line so ranges report global indexes
func NewScanner(lines []string, offset int, g Grammar) *Scanner {
	return &Scanner{g: g, lines: lines, offset: offset}
}

// Scan advances to the next message. It returns false once the input is exhausted
func (s *Scanner) Scan() bool {
	for s.pos < len(s.lines) {
		raw := s.lines[s.pos]
		idx := s.offset + s.pos
		s.pos++
		s.stats.Lines++

		f, v := s.g.Match(raw)
		switch v {
		case VerdictMessage:
			f.Line = idx
			if s.open {
				s.cur = s.pending
				s.pending = f
				s.stats.Messages++
				return true
			}
			s.pending, s.open = f, true

		case VerdictHeader:
			s.stats.Dropped++
			if s.open {
				s.cur = s.pending
				s.open = false
				s.stats.Messages++
				return true
			}

		default:
			if !s.open {
				s.stats.Dropped++
				continue
			}
			s.pending.Body += "\n" + trimLine(raw)
			s.stats.Continuations++
		}
	}
	if s.open {
		s.cur = s.pending
		s.open = false
		s.stats.Messages++
		return true
	}
	return false
}

// Fields returns the message produced by the last successful Scan
func (s *Scanner) Fields() Fields { return s.cur }

// Stats returns the running counters
func (s *Scanner) Stats() Stats { return s.stats }

// Err is always nil; malformed lines are dropped, never reported
func (s *Scanner) Err() error { return nil }

// Boundaries returns the indexes of lines that start a record (a message or a header-only event).
// Splitting lines at these indexes never cuts a message in two
func Boundaries(lines []string, g Grammar) []int {
	var out []int
	for i, l := range lines {
		if g.IsBoundary(l) {
			out = append(out, i)
		}
	}
	return out
}

// Split cuts lines into at most n contiguous ranges, each starting at a boundary except the first.
// Ranges are returned in input order as [start, end) pairs
func Split(lines []string, n int, g Grammar) [][2]int {
	if len(lines) == 0 {
		return nil
	}
	if n <= 1 {
		return [][2]int{{0, len(lines)}}
	}
	bounds := Boundaries(lines, g)
	target := (len(lines) + n - 1) / n

	var out [][2]int
	start := 0
	for _, b := range bounds {
		if b-start >= target && len(out) < n-1 {
			out = append(out, [2]int{start, b})
			start = b
		}
	}
	return append(out, [2]int{start, len(lines)})
}
