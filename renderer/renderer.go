// Package renderer formats computed results as markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/moneybook"
)

// reportRenderer formats report output into a markdown string.
type reportRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *reportRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// ScheduleMarkdown renders a loan amortization table.
func ScheduleMarkdown(title string, rows []moneybook.ScheduleRow) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.Printf("## Amortization Schedule: %s\n\n", title)
	if len(rows) == 0 {
		r.Printf("No schedule: check principal, rate and payment count.\n")
		return r.String()
	}
	r.Printf("| # | Date | Payment | Interest | Principal | Remaining |\n")
	r.Printf("|---:|:---|---:|---:|---:|---:|\n")
	for _, row := range rows {
		r.Printf("| %d | %s | %s | %s | %s | %s |\n",
			row.Period, row.Date, row.Payment, row.Interest, row.Principal, row.Remaining)
	}
	return r.String()
}

// ScenariosMarkdown renders a rate what-if table.
func ScenariosMarkdown(title string, scenarios []moneybook.RateScenario, currency string) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.Printf("## Rate Scenarios: %s\n\n", title)
	r.Printf("| Delta | Rate | Payment | Total Interest |\n")
	r.Printf("|---:|---:|---:|---:|\n")
	for _, s := range scenarios {
		r.Printf("| %s pp | %s%% | %s | %s |\n",
			s.Delta, s.AnnualRate,
			moneybook.M(s.Payment, currency),
			moneybook.M(s.TotalInterest, currency))
	}
	return r.String()
}

// EarlyRepaymentMarkdown renders an early-repayment comparison.
func EarlyRepaymentMarkdown(title string, res moneybook.EarlyRepayment, currency string) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.Printf("## Early Repayment: %s\n\n", title)
	r.Printf("| | |\n|:---|---:|\n")
	r.Printf("| Remaining balance | %s |\n", moneybook.M(res.RemainingBalance, currency))
	r.Printf("| Interest without extra payment | %s |\n", moneybook.M(res.InterestWithout, currency))
	r.Printf("| Interest with extra payment | %s |\n", moneybook.M(res.InterestWith, currency))
	r.Printf("| Saved interest | %s |\n", moneybook.M(res.SavedInterest, currency))
	r.Printf("| Penalty | %s |\n", moneybook.M(res.Penalty, currency))
	r.Printf("| Net savings | %s |\n", moneybook.M(res.NetSavings, currency))
	r.Printf("| New payment count | %d |\n", res.NewPaymentCount)
	if res.Saturated {
		r.Printf("\nThe payment count hit the remaining-payments cap: the simulated payment does not amortize faster.\n")
	}
	return r.String()
}

// BalancesMarkdown renders all account balances plus the net worth line.
func BalancesMarkdown(l *moneybook.Ledger) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.Printf("## Balances\n\n")
	r.Printf("| Account | Type | Class | Balance |\n")
	r.Printf("|:---|:---|:---|---:|\n")
	for a := range l.Accounts() {
		r.Printf("| %s | %s | %s | %s |\n", a.Name, a.Type, a.Class(), l.Balance(a.ID))
	}
	r.Printf("\nNet worth: %s\n", l.NetWorth())
	return r.String()
}

// SummaryMarkdown renders income and expenses over a range.
func SummaryMarkdown(l *moneybook.Ledger, window moneybook.Range) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.Printf("## Summary %s to %s\n\n", window.From, window.To)
	income := l.TotalIncome(window)
	expenses := l.TotalExpenses(window)
	r.Printf("| | |\n|:---|---:|\n")
	r.Printf("| Income | %s |\n", income)
	r.Printf("| Expenses | %s |\n", expenses)
	r.Printf("| Net | %s |\n", income.Sub(expenses))
	return r.String()
}

// BudgetMarkdown renders a budget review with one line per envelope.
func BudgetMarkdown(l *moneybook.Ledger, b *moneybook.Budget) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	window := b.Window()
	r.Printf("## Budget %s (%s to %s)\n\n", b.Name, window.From, window.To)
	r.Printf("| Category | Budgeted | Rollover | Spent | Available | Status |\n")
	r.Printf("|:---|---:|---:|---:|---:|:---|\n")
	for _, e := range b.Envelopes {
		name := string(e.AccountID)
		if a := l.Account(e.AccountID); a != nil {
			name = a.Name
		}
		r.Printf("| %s | %s | %s | %s | %s | %s |\n",
			name, e.Budgeted, e.Rollover, e.Spent(l, window), e.Available(l, window), e.Status(l, window))
	}
	r.Printf("\nTotal: %s budgeted, %s spent, %s available (%.1f%% used)\n",
		b.TotalBudgeted(), b.TotalSpent(l), b.TotalAvailable(l), b.PercentageUsed(l))
	return r.String()
}

// PositionMarkdown renders an investment position valued at market price.
func PositionMarkdown(costBasis moneybook.Money, units float64, pos moneybook.PositionValue) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.Printf("## Position\n\n")
	r.Printf("| | |\n|:---|---:|\n")
	r.Printf("| Units | %g |\n", units)
	r.Printf("| Cost basis | %s |\n", costBasis)
	if !pos.HasMarketData {
		r.Printf("| Market value | n/a |\n")
		return r.String()
	}
	r.Printf("| Market value | %s |\n", pos.MarketValue)
	r.Printf("| Gain | %s (%.2f%%) |\n", pos.Gain, pos.GainPercent)
	return r.String()
}

// OccurrencesMarkdown renders a recurrence preview.
func OccurrencesMarkdown(rule *moneybook.RecurrenceRule, dates []moneybook.Date) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.Printf("## Next Occurrences (%s, every %d)\n\n", rule.Frequency, rule.Interval)
	if len(dates) == 0 {
		r.Printf("No further occurrence: the rule is past its end date.\n")
		return r.String()
	}
	r.Printf("| # | Date | Weekday |\n")
	r.Printf("|---:|:---|:---|\n")
	for i, d := range dates {
		r.Printf("| %d | %s | %s |\n", i+1, d, d.Weekday())
	}
	return r.String()
}
