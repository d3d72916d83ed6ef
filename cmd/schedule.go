package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/etnz/moneybook"
	"github.com/etnz/moneybook/renderer"
	"github.com/google/subcommands"
)

// scheduleCmd previews the next occurrences of a recurrence rule.
type scheduleCmd struct {
	frequency string
	interval  int
	day       int
	weekday   int
	month     int
	adjust    string
	start     string
	end       string
	count     int
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "preview the next occurrences of a recurrence rule" }
func (*scheduleCmd) Usage() string {
	return `mbk schedule -freq <frequency> [-i <interval>] [-day <dayOfMonth>] [-adjust <weekend>] [-start <date>] [-end <date>] [-n <count>]

  Computes the next occurrence dates of a recurrence rule, clamping
  day-of-month anchors to each month's actual length and shifting
  weekend dates per the chosen adjustment.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.frequency, "freq", string(moneybook.MonthlyFreq), "Frequency (daily, weekly, monthly, yearly).")
	f.IntVar(&c.interval, "i", 1, "Interval between occurrences in frequency units.")
	f.IntVar(&c.day, "day", 0, "Day-of-month anchor; defaults to the start date's day.")
	f.IntVar(&c.weekday, "weekday", 0, "Day-of-week anchor for weekly rules (1=Monday .. 7=Sunday).")
	f.IntVar(&c.month, "month", 0, "Month-of-year anchor for yearly rules (1..12).")
	f.StringVar(&c.adjust, "adjust", string(moneybook.NoAdjustment), "Weekend adjustment (none, previousFriday, nextMonday).")
	f.StringVar(&c.start, "start", moneybook.Today().String(), "Start date of the rule.")
	f.StringVar(&c.end, "end", "", "Optional end date; no occurrence is produced past it.")
	f.IntVar(&c.count, "n", 12, "Number of occurrences to preview.")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	freq, err := moneybook.ParseFrequency(c.frequency)
	if err != nil {
		return fail("Error: %v", err)
	}
	start, err := moneybook.ParseDate(c.start)
	if err != nil {
		return fail("Error parsing start date: %v", err)
	}

	rule := moneybook.NewRecurrenceRule(freq, c.interval, start)
	rule.DayOfMonth = c.day
	rule.DayOfWeek = c.weekday
	rule.MonthOfYear = time.Month(c.month)
	rule.Weekend = moneybook.WeekendAdjustment(c.adjust)
	if c.end != "" {
		end, err := moneybook.ParseDate(c.end)
		if err != nil {
			return fail("Error parsing end date: %v", err)
		}
		rule.End = end
	}

	printMarkdown(renderer.OccurrencesMarkdown(rule, rule.Occurrences(c.count)))
	return subcommands.ExitSuccess
}
