package moneybook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmortizationType selects one of the four amortization policies.
type AmortizationType string

const (
	// French amortization pays a constant total amount every period.
	French AmortizationType = "french"
	// Italian amortization pays a constant principal every period.
	Italian AmortizationType = "italian"
	// German amortization mirrors the French payment with the first
	// period's interest charged on the full original principal.
	German AmortizationType = "german"
	// American amortization pays interest only, with the principal due in
	// full with the last payment.
	American AmortizationType = "american"
)

// ParseAmortizationType parses a string into an AmortizationType.
func ParseAmortizationType(s string) (AmortizationType, error) {
	switch AmortizationType(strings.ToLower(s)) {
	case French, Italian, German, American:
		return AmortizationType(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("unknown amortization type: %q", s)
	}
}

// InterestRateType is informational only; amortization math always uses
// the loan's single current annual rate.
type InterestRateType string

const (
	FixedRate    InterestRateType = "fixed"
	VariableRate InterestRateType = "variable"
	MixedRate    InterestRateType = "mixed"
)

// PaymentFrequency is how often a loan payment is due.
type PaymentFrequency string

const (
	MonthlyPayments    PaymentFrequency = "monthly"
	QuarterlyPayments  PaymentFrequency = "quarterly"
	SemiannualPayments PaymentFrequency = "semiannual"
	AnnualPayments     PaymentFrequency = "annual"
)

// PaymentsPerYear returns the number of payments in a year.
func (f PaymentFrequency) PaymentsPerYear() int {
	switch f {
	case MonthlyPayments:
		return 12
	case QuarterlyPayments:
		return 4
	case SemiannualPayments:
		return 2
	case AnnualPayments:
		return 1
	default:
		return 12
	}
}

// MonthsBetween returns the number of months between two payments.
func (f PaymentFrequency) MonthsBetween() int { return 12 / f.PaymentsPerYear() }

// Loan is a loan being tracked, possibly mid-life.
type Loan struct {
	ID           ID
	Name         string
	Type         string // informs grouping only
	RateType     InterestRateType
	Frequency    PaymentFrequency
	Amortization AmortizationType

	Principal  decimal.Decimal // original principal, major units
	AnnualRate decimal.Decimal // percentage units: 3.5 means 3.5% per year
	TAEG       decimal.Decimal // informational APR, unused in calculation

	TotalPayments int
	Payment       Money // cached computed payment
	Start         Date
	Existing      bool // true for loans tracked from mid-life
	PaymentsMade  int
	Currency      string

	TransactionID ID // optional link to the generated recurring transaction
}

// RemainingPayments returns the number of payments still due.
func (l *Loan) RemainingPayments() int {
	return max(0, l.TotalPayments-l.PaymentsMade)
}

// EndDate returns the date of the last scheduled payment.
func (l *Loan) EndDate() Date {
	return l.Start.AddMonth(l.TotalPayments * l.Frequency.MonthsBetween())
}

// NextPaymentDate returns the due date of the next payment.
func (l *Loan) NextPaymentDate() Date {
	return l.Start.AddMonth((l.PaymentsMade + 1) * l.Frequency.MonthsBetween())
}

// PaymentAmount computes the per-period payment for the loan's policy.
func (l *Loan) PaymentAmount() Money {
	return M(PaymentFor(l.Amortization, l.Principal, l.AnnualRate, l.TotalPayments, l.Frequency), l.Currency)
}

// Schedule generates the loan's full amortization table.
func (l *Loan) Schedule() []ScheduleRow {
	return AmortizationSchedule(l.Amortization, l.Principal, l.AnnualRate, l.TotalPayments, l.Frequency, l.Start, l.Currency)
}

// ScheduleRemaining generates only the rows still due, replaying the
// payments already made.
func (l *Loan) ScheduleRemaining() []ScheduleRow {
	return AmortizationScheduleFrom(l.Amortization, l.Principal, l.AnnualRate, l.TotalPayments, l.PaymentsMade, l.Frequency, l.Start, l.Currency)
}

// Remaining returns the outstanding balance after the payments already made.
func (l *Loan) Remaining() Money {
	return M(RemainingBalance(l.Amortization, l.Principal, l.AnnualRate, l.TotalPayments, l.PaymentsMade, l.Frequency), l.Currency)
}

// PaymentTemplate materializes the loan's payment as a template
// transaction owning a recurrence rule anchored on the payment day:
// every period the payment is credited from the funding account, split
// into principal against the loan account and interest as an expense.
//
// The ledger does not change; the caller persists the returned template
// and links it back with loan.TransactionID.
func (l *Loan) PaymentTemplate(fundingAccount, loanAccount, interestAccount ID) *Transaction {
	rule := NewRecurrenceRule(MonthlyFreq, l.Frequency.MonthsBetween(), l.NextPaymentDate())
	rule.DayOfMonth = l.Start.Day()
	rule.End = l.EndDate()

	// The split comes from the next due schedule row, not the first
	// payment: Italian payments decline and American ones balloon.
	principal := l.PaymentAmount()
	interest := M(0, l.Currency)
	if rows := l.ScheduleRemaining(); len(rows) > 0 {
		principal, interest = rows[0].Principal, rows[0].Interest
	}

	return NewTransaction(rule.Start, fmt.Sprintf("%s payment", l.Name)).
		Template(rule).
		Pair(loanAccount, fundingAccount, principal).
		Pair(interestAccount, fundingAccount, interest).
		Build()
}
