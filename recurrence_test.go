package moneybook

import (
	"testing"
	"time"
)

func TestNextOccurrence_Monthly(t *testing.T) {
	tests := []struct {
		name    string
		day     int
		from    Date
		include bool
		want    Date
	}{
		{"same day included", 15, NewDate(2025, time.January, 15), true, NewDate(2025, time.January, 15)},
		{"same day excluded", 15, NewDate(2025, time.January, 15), false, NewDate(2025, time.February, 15)},
		{"before anchor", 15, NewDate(2025, time.January, 10), false, NewDate(2025, time.January, 15)},
		{"after anchor", 15, NewDate(2025, time.January, 20), false, NewDate(2025, time.February, 15)},
		// A day-31 anchor resolves to the month's actual last day.
		{"clamped february", 31, NewDate(2025, time.February, 1), false, NewDate(2025, time.February, 28)},
		{"clamped leap february", 31, NewDate(2024, time.February, 1), false, NewDate(2024, time.February, 29)},
		{"clamped april", 31, NewDate(2025, time.April, 1), false, NewDate(2025, time.April, 30)},
		{"unclamped after clamp", 31, NewDate(2025, time.February, 28), false, NewDate(2025, time.March, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecurrenceRule(MonthlyFreq, 1, NewDate(2024, time.December, tt.day))
			got, ok := r.NextOccurrence(tt.from, tt.include)
			if !ok {
				t.Fatal("NextOccurrence() not ok")
			}
			if got != tt.want {
				t.Errorf("NextOccurrence(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestNextOccurrence_Weekly(t *testing.T) {
	// Friday anchor. 2025-01-03 is a Friday.
	r := NewRecurrenceRule(WeeklyFreq, 1, NewDate(2025, time.January, 3))
	r.DayOfWeek = 5

	tests := []struct {
		from    Date
		include bool
		want    Date
	}{
		{NewDate(2025, time.January, 1), false, NewDate(2025, time.January, 3)},
		{NewDate(2025, time.January, 3), true, NewDate(2025, time.January, 3)},
		{NewDate(2025, time.January, 3), false, NewDate(2025, time.January, 10)},
		{NewDate(2025, time.January, 4), false, NewDate(2025, time.January, 10)},
	}
	for _, tt := range tests {
		got, ok := r.NextOccurrence(tt.from, tt.include)
		if !ok {
			t.Fatal("NextOccurrence() not ok")
		}
		if got != tt.want {
			t.Errorf("NextOccurrence(%s, %v) = %s, want %s", tt.from, tt.include, got, tt.want)
		}
		if got.Weekday() != time.Friday {
			t.Errorf("NextOccurrence(%s) falls on %s, want Friday", tt.from, got.Weekday())
		}
	}
}

func TestNextOccurrence_Yearly(t *testing.T) {
	r := NewRecurrenceRule(YearlyFreq, 1, NewDate(2024, time.February, 29))
	got, ok := r.NextOccurrence(NewDate(2024, time.March, 1), false)
	if !ok {
		t.Fatal("NextOccurrence() not ok")
	}
	// The leap-day anchor clamps to Feb 28 in a common year.
	if want := NewDate(2025, time.February, 28); got != want {
		t.Errorf("NextOccurrence() = %s, want %s", got, want)
	}
}

func TestNextOccurrence_Interval(t *testing.T) {
	r := NewRecurrenceRule(MonthlyFreq, 3, NewDate(2025, time.January, 10))
	got, ok := r.NextOccurrence(NewDate(2025, time.January, 10), false)
	if !ok {
		t.Fatal("NextOccurrence() not ok")
	}
	if want := NewDate(2025, time.April, 10); got != want {
		t.Errorf("NextOccurrence() = %s, want %s", got, want)
	}
}

func TestNextOccurrence_WeekendAdjustment(t *testing.T) {
	// 2025-05-31 is a Saturday, 2025-08-31 a Sunday.
	tests := []struct {
		name   string
		adjust WeekendAdjustment
		from   Date
		want   Date
	}{
		{"saturday previous friday", PreviousFriday, NewDate(2025, time.May, 1), NewDate(2025, time.May, 30)},
		{"saturday next monday", NextMonday, NewDate(2025, time.May, 1), NewDate(2025, time.June, 2)},
		{"sunday previous friday", PreviousFriday, NewDate(2025, time.August, 1), NewDate(2025, time.August, 29)},
		{"sunday next monday", NextMonday, NewDate(2025, time.August, 1), NewDate(2025, time.September, 1)},
		{"weekday untouched", PreviousFriday, NewDate(2025, time.July, 1), NewDate(2025, time.July, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecurrenceRule(MonthlyFreq, 1, NewDate(2025, time.January, 31))
			r.Weekend = tt.adjust
			got, ok := r.NextOccurrence(tt.from, false)
			if !ok {
				t.Fatal("NextOccurrence() not ok")
			}
			if got != tt.want {
				t.Errorf("NextOccurrence(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

// TestNextOccurrence_Monotonic chains 50 occurrences under the
// adjustment most likely to pull dates backward and checks the sequence
// is strictly increasing.
func TestNextOccurrence_Monotonic(t *testing.T) {
	for _, freq := range []Frequency{DailyFreq, WeeklyFreq, MonthlyFreq, YearlyFreq} {
		r := NewRecurrenceRule(freq, 1, NewDate(2025, time.January, 31))
		r.Weekend = PreviousFriday

		from := r.Start
		for i := 0; i < 50; i++ {
			next, ok := r.NextOccurrence(from, false)
			if !ok {
				t.Fatalf("%s: NextOccurrence(%s) not ok at step %d", freq, from, i)
			}
			if !next.After(from) {
				t.Fatalf("%s: occurrence %s does not advance past %s at step %d", freq, next, from, i)
			}
			from = next
		}
	}
}

func TestNextOccurrence_End(t *testing.T) {
	r := NewRecurrenceRule(MonthlyFreq, 1, NewDate(2025, time.January, 15))
	r.End = NewDate(2025, time.March, 15)

	if got, ok := r.NextOccurrence(NewDate(2025, time.March, 1), false); !ok || got != NewDate(2025, time.March, 15) {
		t.Errorf("NextOccurrence() = %s, %v, want 2025-03-15, true", got, ok)
	}
	if _, ok := r.NextOccurrence(NewDate(2025, time.March, 15), false); ok {
		t.Error("NextOccurrence() past end is ok, want terminal")
	}
}

func TestOccurrences(t *testing.T) {
	r := NewRecurrenceRule(MonthlyFreq, 1, NewDate(2025, time.January, 15))
	got := r.Occurrences(3)
	want := []Date{
		NewDate(2025, time.January, 15),
		NewDate(2025, time.February, 15),
		NewDate(2025, time.March, 15),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}

	r.End = NewDate(2025, time.February, 28)
	if got := r.Occurrences(5); len(got) != 2 {
		t.Errorf("bounded rule yields %d occurrences, want 2", len(got))
	}
}

func TestParseFrequency(t *testing.T) {
	if f, err := ParseFrequency("Monthly"); err != nil || f != MonthlyFreq {
		t.Errorf("ParseFrequency(Monthly) = %s, %v", f, err)
	}
	if _, err := ParseFrequency("fortnightly"); err == nil {
		t.Error("ParseFrequency(fortnightly) should fail")
	}
}
