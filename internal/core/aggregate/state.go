// Package aggregate holds the mutable counters of one analysis run
//
// A State is owned by exactly one goroutine. Parallel runs build one State per range and fold
// them with Merge in range order, which yields the same counters and the same first-seen
// orders as a single sequential pass
package aggregate

import (
	"chatstats/internal/core/chatlog"
	"chatstats/internal/core/features"
)

// Record is one tokenized and normalized message ready to be counted
type Record struct {
	Participant string
	// Date is nil when the date token could not be resolved
	Date *chatlog.Date
	// Time is nil when the time token could not be resolved
	Time     *chatlog.TimeOfDay
	Features features.Features
}

// State is the running aggregate
type State struct {
	Total        int
	Participants Counter
	// Dates is keyed by YYYY-MM-DD
	Dates  Counter
	Hours  [24]int
	Words  Counter
	Emojis Counter
	Media  Counter

	MinDate  chatlog.Date
	MaxDate  chatlog.Date
	hasDates bool

	// Undated and Untimed count messages whose date or time could not be resolved
	Undated int
	Untimed int
}

// New returns an empty State
func New() *State { return &State{} }

// HasDates reports whether at least one message had a resolved date
func (s *State) HasDates() bool { return s.hasDates }

// Ingest counts rec. It never fails; unresolved dates and times only skip their own buckets
func (s *State) Ingest(rec Record) {
	s.Total++
	s.Participants.Inc(rec.Participant, 1)

	if rec.Date != nil {
		d := *rec.Date
		s.Dates.Inc(d.String(), 1)
		s.observeDate(d)
	} else {
		s.Undated++
	}

	if rec.Time != nil {
		h := rec.Time.Hour
		if h < 0 {
			h = 0
		}
		if h > 23 {
			h = 23
		}
		s.Hours[h]++
	} else {
		s.Untimed++
	}

	for _, w := range rec.Features.Words {
		s.Words.Inc(w, 1)
	}
	for _, e := range rec.Features.Emojis {
		s.Emojis.Inc(e, 1)
	}
	if rec.Features.Media != "" {
		s.Media.Inc(rec.Features.Media, 1)
	}
}

// Merge folds o into s. Calling it in input order keeps first-seen orders intact
func (s *State) Merge(o *State) {
	if o == nil {
		return
	}
	s.Total += o.Total
	s.Undated += o.Undated
	s.Untimed += o.Untimed
	s.Participants.Merge(&o.Participants)
	s.Dates.Merge(&o.Dates)
	s.Words.Merge(&o.Words)
	s.Emojis.Merge(&o.Emojis)
	s.Media.Merge(&o.Media)
	for h, n := range o.Hours {
		s.Hours[h] += n
	}
	if o.hasDates {
		s.observeDate(o.MinDate)
		s.observeDate(o.MaxDate)
	}
}

func (s *State) observeDate(d chatlog.Date) {
	if !s.hasDates {
		s.MinDate, s.MaxDate, s.hasDates = d, d, true
		return
	}
	if d.Before(s.MinDate) {
		s.MinDate = d
	}
	if s.MaxDate.Before(d) {
		s.MaxDate = d
	}
}
