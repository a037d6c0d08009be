// Package report derives the final summary of an analysis run from its aggregate state
package report

import (
	"math"
	"sort"

	"chatstats/internal/core/aggregate"
	"chatstats/internal/core/chatlog"
	"chatstats/internal/core/rulepack"
	pstrings "chatstats/internal/platform/strings"
)

// Series pairs labels with counts aligned by index
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// HourSeries is the 24 slot hour histogram
type HourSeries struct {
	Labels []int `json:"labels"`
	Data   []int `json:"data"`
}

// WordCount is one entry of the word ranking
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// EmojiCount is one entry of the emoji ranking
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// MediaCount counts media placeholders per category
type MediaCount struct {
	Images    int `json:"images"`
	Videos    int `json:"videos"`
	Audio     int `json:"audio"`
	Documents int `json:"documents"`
}

// Report is the immutable result of one analysis
type Report struct {
	TotalMessages     int          `json:"totalMessages"`
	TotalUsers        int          `json:"totalUsers"`
	Users             []string     `json:"users"`
	DurationDays      int          `json:"durationDays"`
	AvgMessagesPerDay float64      `json:"avgMessagesPerDay"`
	EarliestDate      *string      `json:"earliestDate"`
	LatestDate        *string      `json:"latestDate"`
	MessagesByUser    Series       `json:"messagesByUser"`
	MessagesByDate    Series       `json:"messagesByDate"`
	MessagesByHour    HourSeries   `json:"messagesByHour"`
	TopWords          []WordCount  `json:"topWords"`
	MediaCount        MediaCount   `json:"mediaCount"`
	TopEmojis         []EmojiCount `json:"topEmojis"`
	MostActiveUser    *string      `json:"mostActiveUser"`
}

// Limits bounds the ranked lists
type Limits struct {
	TopWords  int
	TopEmojis int
}

// DefaultLimits are 20 words and 10 emoji
func DefaultLimits() Limits {
	return Limits{TopWords: 20, TopEmojis: 10}
}

// LimitsFrom reads the limits configured in p
func LimitsFrom(p *rulepack.Pack) Limits {
	if p == nil {
		return DefaultLimits()
	}
	return Limits{TopWords: p.TopWords, TopEmojis: p.TopEmojis}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.TopWords <= 0 {
		l.TopWords = d.TopWords
	}
	if l.TopEmojis <= 0 {
		l.TopEmojis = d.TopEmojis
	}
	return l
}

// Build derives the report from st. A nil state yields the empty report
func Build(st *aggregate.State, limits Limits) Report {
	if st == nil {
		st = aggregate.New()
	}
	limits = limits.withDefaults()

	r := Report{
		TotalMessages: st.Total,
		TotalUsers:    st.Participants.Len(),
		Users:         st.Participants.Keys(),
		MessagesByUser: Series{
			Labels: make([]string, 0, st.Participants.Len()),
			Data:   make([]int, 0, st.Participants.Len()),
		},
		MessagesByDate: dateSeries(&st.Dates),
		MessagesByHour: hourSeries(st.Hours),
		TopWords:       make([]WordCount, 0, limits.TopWords),
		TopEmojis:      make([]EmojiCount, 0, limits.TopEmojis),
		MediaCount: MediaCount{
			Images:    st.Media.Get("images"),
			Videos:    st.Media.Get("videos"),
			Audio:     st.Media.Get("audio"),
			Documents: st.Media.Get("documents"),
		},
	}

	for _, e := range st.Participants.Entries() {
		r.MessagesByUser.Labels = append(r.MessagesByUser.Labels, e.Key)
		r.MessagesByUser.Data = append(r.MessagesByUser.Data, e.Count)
	}

	if st.HasDates() {
		r.EarliestDate = pstrings.Ptr(st.MinDate.String())
		r.LatestDate = pstrings.Ptr(st.MaxDate.String())
		r.DurationDays = chatlog.DaysBetween(st.MinDate, st.MaxDate) + 1
	}
	r.AvgMessagesPerDay = average(st.Total, r.DurationDays)

	if top, ok := st.Participants.Max(); ok {
		name := top.Key
		r.MostActiveUser = &name
	}

	for _, e := range st.Words.Top(limits.TopWords) {
		r.TopWords = append(r.TopWords, WordCount{Word: e.Key, Count: e.Count})
	}
	for _, e := range st.Emojis.Top(limits.TopEmojis) {
		r.TopEmojis = append(r.TopEmojis, EmojiCount{Emoji: e.Key, Count: e.Count})
	}
	return r
}

// average is total/days rounded half away from zero to 2 decimals; 0 when days is 0
func average(total, days int) float64 {
	if days <= 0 {
		return 0
	}
	return math.Round(float64(total)/float64(days)*100) / 100
}

// dateSeries sorts the ISO keys ascending, which is calendar order
func dateSeries(c *aggregate.Counter) Series {
	es := c.Entries()
	sort.Slice(es, func(i, j int) bool { return es[i].Key < es[j].Key })
	s := Series{Labels: make([]string, 0, len(es)), Data: make([]int, 0, len(es))}
	for _, e := range es {
		s.Labels = append(s.Labels, e.Key)
		s.Data = append(s.Data, e.Count)
	}
	return s
}

func hourSeries(h [24]int) HourSeries {
	s := HourSeries{Labels: make([]int, 24), Data: make([]int, 24)}
	for i := range h {
		s.Labels[i] = i
		s.Data[i] = h[i]
	}
	return s
}
