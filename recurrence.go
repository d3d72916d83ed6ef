package moneybook

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is the base unit of a recurrence rule.
type Frequency string

const (
	DailyFreq   Frequency = "daily"
	WeeklyFreq  Frequency = "weekly"
	MonthlyFreq Frequency = "monthly"
	YearlyFreq  Frequency = "yearly"
)

// ParseFrequency parses a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(s)) {
	case DailyFreq, WeeklyFreq, MonthlyFreq, YearlyFreq:
		return Frequency(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("unknown frequency: %q", s)
	}
}

// WeekendAdjustment shifts an occurrence that lands on a weekend.
type WeekendAdjustment string

const (
	NoAdjustment   WeekendAdjustment = "none"
	PreviousFriday WeekendAdjustment = "previousFriday"
	NextMonday     WeekendAdjustment = "nextMonday"
)

// apply shifts d off the weekend according to the adjustment. Weekdays
// pass through unchanged.
func (a WeekendAdjustment) apply(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		switch a {
		case PreviousFriday:
			return d.Add(-1)
		case NextMonday:
			return d.Add(2)
		}
	case time.Sunday:
		switch a {
		case PreviousFriday:
			return d.Add(-2)
		case NextMonday:
			return d.Add(1)
		}
	}
	return d
}

// RecurrenceRule describes when a template transaction spawns occurrences.
// It is owned one-to-one by its template transaction and follows its
// lifetime.
//
// Next is the rule's working cursor; the owner advances it with
// NextOccurrence and deactivates the rule once the end date is exceeded.
type RecurrenceRule struct {
	ID          ID                `json:"id"`
	Frequency   Frequency         `json:"frequency"`
	Interval    int               `json:"interval"` // positive
	DayOfMonth  int               `json:"dayOfMonth,omitempty"`
	DayOfWeek   int               `json:"dayOfWeek,omitempty"` // 0 unset, else 1=Monday .. 7=Sunday
	MonthOfYear time.Month        `json:"monthOfYear,omitempty"`
	Weekend     WeekendAdjustment `json:"weekendAdjustment,omitempty"`
	Start       Date              `json:"startDate"`
	End         Date              `json:"endDate,omitempty"` // zero means no end
	Next        Date              `json:"nextOccurrence,omitempty"`
	Active      bool              `json:"active"`
}

// NewRecurrenceRule creates an active rule starting at start with its
// cursor on the start date.
func NewRecurrenceRule(freq Frequency, interval int, start Date) *RecurrenceRule {
	return &RecurrenceRule{
		ID:        NewID(),
		Frequency: freq,
		Interval:  interval,
		Weekend:   NoAdjustment,
		Start:     start,
		Next:      start,
		Active:    true,
	}
}

// monthDay returns the configured day-of-month anchor, defaulting to the
// start date's day.
func (r *RecurrenceRule) monthDay() int {
	if r.DayOfMonth > 0 {
		return r.DayOfMonth
	}
	return r.Start.Day()
}

// yearMonth returns the configured month-of-year anchor, defaulting to the
// start date's month.
func (r *RecurrenceRule) yearMonth() time.Month {
	if r.MonthOfYear > 0 {
		return r.MonthOfYear
	}
	return r.Start.Month()
}

// clampedDay resolves the day anchor against a given month, clamped to
// that month's actual last day (a day-31 anchor resolves to Feb 28/29).
func clampedDay(year int, month time.Month, day int) Date {
	last := NewDate(year, month+1, 0).Day()
	if day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// NextOccurrence computes the next occurrence on or after from.
//
// With includeDate, a resolution landing exactly on from is returned
// unmodified; otherwise the result is strictly after from. The weekend
// adjustment is applied last, after frequency resolution. ok is false
// once the (possibly adjusted) result would exceed the rule's end date:
// the rule is terminal and the caller should deactivate it.
func (r *RecurrenceRule) NextOccurrence(from Date, includeDate bool) (next Date, ok bool) {
	interval := r.Interval
	if interval <= 0 {
		interval = 1
	}

	base := r.resolve(from, includeDate, interval)
	next = r.Weekend.apply(base)

	// The adjustment may pull the date back onto or before the cursor
	// (e.g. Saturday shifted to the previous Friday). Keep advancing from
	// the unadjusted base until the sequence strictly increases.
	for !includeDate && !next.After(from) {
		base = r.advance(base, interval)
		next = r.Weekend.apply(base)
	}

	if !r.End.IsZero() && next.After(r.End) {
		return Date{}, false
	}
	return next, true
}

// resolve computes the unadjusted occurrence for the rule's frequency.
func (r *RecurrenceRule) resolve(from Date, includeDate bool, interval int) Date {
	switch r.Frequency {
	case DailyFreq:
		if includeDate {
			return from
		}
		return from.Add(interval)

	case WeeklyFreq:
		candidate := from
		if r.DayOfWeek > 0 {
			candidate = nextWeekday(from, isoWeekday(r.DayOfWeek))
		}
		if includeDate && !candidate.Before(from) {
			return candidate
		}
		if candidate.After(from) {
			return candidate
		}
		return candidate.Add(7 * interval)

	case MonthlyFreq:
		candidate := clampedDay(from.Year(), from.Month(), r.monthDay())
		if candidate.Before(from) {
			candidate = clampedDay(from.Year(), from.Month()+time.Month(interval), r.monthDay())
		}
		if includeDate && !candidate.Before(from) {
			return candidate
		}
		if candidate.After(from) {
			return candidate
		}
		return clampedDay(candidate.Year(), candidate.Month()+time.Month(interval), r.monthDay())

	case YearlyFreq:
		candidate := clampedDay(from.Year(), r.yearMonth(), r.monthDay())
		if candidate.Before(from) {
			candidate = clampedDay(from.Year()+interval, r.yearMonth(), r.monthDay())
		}
		if includeDate && !candidate.Before(from) {
			return candidate
		}
		if candidate.After(from) {
			return candidate
		}
		return clampedDay(candidate.Year()+interval, r.yearMonth(), r.monthDay())

	default:
		return from.Add(interval)
	}
}

// advance moves an already-resolved occurrence one interval forward.
func (r *RecurrenceRule) advance(d Date, interval int) Date {
	switch r.Frequency {
	case DailyFreq:
		return d.Add(interval)
	case WeeklyFreq:
		return d.Add(7 * interval)
	case MonthlyFreq:
		return clampedDay(d.Year(), d.Month()+time.Month(interval), r.monthDay())
	case YearlyFreq:
		return clampedDay(d.Year()+interval, r.yearMonth(), r.monthDay())
	default:
		return d.Add(interval)
	}
}

// Occurrences materializes up to n occurrences starting at the rule's
// cursor (the cursor date itself is eligible). It does not mutate the rule.
func (r *RecurrenceRule) Occurrences(n int) []Date {
	var out []Date
	from := r.Next
	if from.IsZero() {
		from = r.Start
	}
	include := true
	for len(out) < n {
		d, ok := r.NextOccurrence(from, include)
		if !ok {
			break
		}
		out = append(out, d)
		from = d
		include = false
	}
	return out
}

// nextWeekday returns d if it falls on w, else the first following date
// that does.
func nextWeekday(d Date, w time.Weekday) Date {
	offset := (int(w) - int(d.Weekday()) + 7) % 7
	return d.Add(offset)
}

// isoWeekday maps 1=Monday..7=Sunday onto time.Weekday.
func isoWeekday(i int) time.Weekday {
	return time.Weekday(i % 7)
}

// MarshalJSON implements the json.Marshaler interface for RecurrenceRule,
// keeping a stable field order in data files.
func (r *RecurrenceRule) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("frequency", r.Frequency)
	w.Append("interval", r.Interval)
	w.Optional("dayOfMonth", r.DayOfMonth)
	w.Optional("dayOfWeek", r.DayOfWeek)
	w.Optional("monthOfYear", int(r.MonthOfYear))
	if r.Weekend != "" && r.Weekend != NoAdjustment {
		w.Append("weekendAdjustment", r.Weekend)
	}
	w.Append("startDate", r.Start)
	if !r.End.IsZero() {
		w.Append("endDate", r.End)
	}
	if !r.Next.IsZero() {
		w.Append("nextOccurrence", r.Next)
	}
	w.Append("active", r.Active)
	return w.MarshalJSON()
}
