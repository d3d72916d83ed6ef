package moneybook

import (
	"errors"
)

// BudgetPeriod is the cadence of a budget.
type BudgetPeriod string

const (
	WeeklyBudget  BudgetPeriod = "weekly"
	MonthlyBudget BudgetPeriod = "monthly"
)

// Budget allocates spending envelopes over one period. It owns its
// envelopes: deleting the budget deletes them with it.
type Budget struct {
	ID        ID
	Name      string
	Period    BudgetPeriod
	Start     Date
	Rollover  bool
	Envelopes []*Envelope
}

// End derives the budget's last day: six days after the start for a
// weekly budget, the last day of the start's month for a monthly one.
func (b *Budget) End() Date {
	if b.Period == WeeklyBudget {
		return b.Start.Add(6)
	}
	return b.Start.EndOf(Monthly)
}

// Window is the budget's date range, boundaries included.
func (b *Budget) Window() Range { return Range{From: b.Start, To: b.End()} }

// Envelope is a sub-allocation of a budget tied to one expense-class
// account (the category).
type Envelope struct {
	ID        ID
	AccountID ID // the expense category account
	Budgeted  Money
	Rollover  Money // carried over from the previous period
}

// EffectiveBudget is the budgeted amount plus any rollover.
func (e *Envelope) EffectiveBudget() Money { return e.Budgeted.Add(e.Rollover) }

// Spent aggregates the category account's debit-minus-credit activity
// within the budget window, floored at zero. Template transactions and
// dangling references contribute nothing.
func (e *Envelope) Spent(l *Ledger, window Range) Money {
	spent := l.BalanceIn(e.AccountID, window)
	if spent.IsNegative() {
		return M(0, spent.Currency())
	}
	return spent
}

// Available is the effective budget minus the amount spent.
func (e *Envelope) Available(l *Ledger, window Range) Money {
	return e.EffectiveBudget().Sub(e.Spent(l, window))
}

// EnvelopeStatus classifies how much of an envelope is consumed.
type EnvelopeStatus string

const (
	Healthy  EnvelopeStatus = "healthy"
	Warning  EnvelopeStatus = "warning"  // 80% or more consumed
	Exceeded EnvelopeStatus = "exceeded" // fully consumed or overspent
)

// Status classifies the envelope against its effective budget.
func (e *Envelope) Status(l *Ledger, window Range) EnvelopeStatus {
	spent := e.Spent(l, window)
	pct := percentage(spent, e.EffectiveBudget())
	switch {
	case pct >= 100 || spent.GreaterThan(e.EffectiveBudget()):
		return Exceeded
	case pct >= 80:
		return Warning
	default:
		return Healthy
	}
}

// percentage returns spent/total*100 guarded against a zero total.
func percentage(spent, total Money) float64 {
	if total.Amount().IsZero() {
		return 0
	}
	ratio, _ := spent.Amount().Div(total.Amount()).Float64()
	return ratio * 100
}

// TotalBudgeted sums the effective budgets of all envelopes.
func (b *Budget) TotalBudgeted() Money {
	var sum Money
	for _, e := range b.Envelopes {
		sum = sum.Add(e.EffectiveBudget())
	}
	return sum
}

// TotalSpent sums spending across all envelopes within the budget window.
func (b *Budget) TotalSpent(l *Ledger) Money {
	var sum Money
	window := b.Window()
	for _, e := range b.Envelopes {
		sum = sum.Add(e.Spent(l, window))
	}
	return sum
}

// TotalAvailable is the total effective budget minus total spending.
func (b *Budget) TotalAvailable(l *Ledger) Money {
	return b.TotalBudgeted().Sub(b.TotalSpent(l))
}

// PercentageUsed is total spending over the total effective budget, in
// percent. It is 0 whenever the total effective budget is 0.
func (b *Budget) PercentageUsed(l *Ledger) float64 {
	return percentage(b.TotalSpent(l), b.TotalBudgeted())
}

// NextRollover computes each envelope's rollover amount for the next
// period: the unspent remainder floored at zero, or zero everywhere when
// rollover is disabled. Keyed by envelope id.
func (b *Budget) NextRollover(l *Ledger) map[ID]Money {
	out := make(map[ID]Money, len(b.Envelopes))
	window := b.Window()
	for _, e := range b.Envelopes {
		left := e.Available(l, window)
		if !b.Rollover || left.IsNegative() {
			left = M(0, left.Currency())
		}
		out[e.ID] = left
	}
	return out
}

// EnvelopeTransfer moves part of one envelope's budget to another.
type EnvelopeTransfer struct {
	From   *Envelope
	To     *Envelope
	Amount Money
}

// IsValid reports whether the transfer can be executed: a positive
// amount that the source envelope still has available.
func (t EnvelopeTransfer) IsValid(l *Ledger, b *Budget) bool {
	if t.From == nil || t.To == nil || !t.Amount.IsPositive() {
		return false
	}
	return t.From.Available(l, b.Window()).GreaterThanOrEqual(t.Amount)
}

// Execute applies the transfer. Both envelope mutations happen together
// or not at all: an invalid transfer is a strict no-op.
func (t EnvelopeTransfer) Execute(l *Ledger, b *Budget) error {
	if !t.IsValid(l, b) {
		return errors.New("invalid envelope transfer")
	}
	t.From.Budgeted = t.From.Budgeted.Sub(t.Amount)
	t.To.Budgeted = t.To.Budgeted.Add(t.Amount)
	return nil
}
