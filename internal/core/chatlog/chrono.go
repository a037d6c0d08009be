package chatlog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateOrder selects how ambiguous numeric dates are read
type DateOrder string

const (
	DayFirst   DateOrder = "dmy"
	MonthFirst DateOrder = "mdy"
)

// ParseDateOrder accepts dmy or mdy (case-insensitive). Empty means DayFirst
func ParseDateOrder(s string) (DateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DayFirst):
		return DayFirst, nil
	case string(MonthFirst):
		return MonthFirst, nil
	default:
		return "", fmt.Errorf("chatlog: unknown date order %q (want dmy or mdy)", s)
	}
}

const (
	layoutDMYShort = "2/1/06"
	layoutDMYLong  = "2/1/2006"
	layoutMDYShort = "1/2/06"
	layoutMDYLong  = "1/2/2006"
)

// Layouts returns the fallback list tried in order; the first valid calendar date wins
func (o DateOrder) Layouts() []string {
	if o == MonthFirst {
		return []string{layoutMDYShort, layoutMDYLong, layoutDMYShort, layoutDMYLong}
	}
	return []string{layoutDMYShort, layoutDMYLong, layoutMDYShort, layoutMDYLong}
}

// Date is a calendar day without a zone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar day
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of d
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than o
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// IsZero reports whether d is the zero value
func (d Date) IsZero() bool { return d == Date{} }

// DaysBetween returns the whole days from a to b (negative when b is before a)
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

// TimeOfDay is a wall clock time on the 24 hour clock
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// String renders HH:MM:SS
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Chrono resolves date and time tokens under one DateOrder
type Chrono struct {
	layouts []string
}

// NewChrono returns a resolver for order; unknown orders fall back to DayFirst
func NewChrono(order DateOrder) Chrono {
	if order != MonthFirst {
		order = DayFirst
	}
	return Chrono{layouts: order.Layouts()}
}

// ParseDate reads a D/M/Y style token. ok is false when no layout yields a valid calendar date
func (c Chrono) ParseDate(tok string) (Date, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Date{}, false
	}
	layouts := c.layouts
	if layouts == nil {
		layouts = DayFirst.Layouts()
	}
	for _, l := range layouts {
		t, err := time.Parse(l, tok)
		if err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}

var timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?(?:[\s\x{00A0}\x{202F}]?([AaPp])\.?[Mm]\.?)?$`)

// ParseTime reads H:MM, H:MM:SS and either with an AM/PM marker.
// 12 AM is hour 0, 12 PM stays 12, other PM hours gain 12. Hours past 23 are clamped to 23;
// minutes or seconds past 59 make the token unparsable
func (c Chrono) ParseTime(tok string) (TimeOfDay, bool) {
	return ParseTime(tok)
}

// ParseTime is the order-independent time reader behind Chrono.ParseTime
func ParseTime(tok string) (TimeOfDay, bool) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(tok))
	if m == nil {
		return TimeOfDay{}, false
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if mi > 59 || sec > 59 {
		return TimeOfDay{}, false
	}

	switch strings.ToLower(m[4]) {
	case "a":
		if h == 12 {
			h = 0
		}
	case "p":
		if h < 12 {
			h += 12
		}
	}
	if h > 23 {
		h = 23
	}
	return TimeOfDay{Hour: h, Minute: mi, Second: sec}, true
}
