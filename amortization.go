package moneybook

import (
	"math"

	"github.com/shopspring/decimal"
)

// This file is the loan amortization engine: pure functions keyed by
// explicit parameters, one numerically distinct strategy per
// AmortizationType.
//
// Invariants, for every policy and every rate including zero: the
// schedule's principal column sums exactly to the principal (rounding
// drift is absorbed by the final row) and the final row's remaining
// balance is exactly zero.
//
// Every currency value is rounded half-to-even to 2 decimals at the
// point it is stored into a row; rates and ratios are carried unrounded
// until that conversion.
//
// Invalid parameters (principal <= 0, payments <= 0, negative rate)
// yield a zero or empty result, never an error: these computations are
// typically driven live from partially-typed input. Callers distinguish
// "not yet valid" from "computed to zero" by validating the parameters
// themselves.

// ScheduleRow is one period of an amortization schedule.
type ScheduleRow struct {
	Period    int
	Date      Date
	Payment   Money
	Interest  Money
	Principal Money
	Remaining Money
}

// periodicRate derives the per-period rate from an annual rate in
// percentage units, unrounded: annualRate/100/paymentsPerYear.
func periodicRate(annualRate decimal.Decimal, freq PaymentFrequency) decimal.Decimal {
	return annualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(freq.PaymentsPerYear())))
}

// levelPayment computes the constant French/German payment
// P*r*(1+r)^n / ((1+r)^n - 1), falling back to P/n for a zero rate.
func levelPayment(principal decimal.Decimal, annualRate decimal.Decimal, n int, freq PaymentFrequency) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	r := periodicRate(annualRate, freq)
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))).RoundBank(moneyScale)
	}
	// The power term has no exact decimal form; compute it in float64 and
	// convert back for the final currency rounding.
	rf := r.InexactFloat64()
	factor := math.Pow(1+rf, float64(n))
	payment := principal.InexactFloat64() * rf * factor / (factor - 1)
	return decimal.NewFromFloat(payment).RoundBank(moneyScale)
}

// PaymentFor computes the per-period payment amount for the given policy.
func PaymentFor(amort AmortizationType, principal, annualRate decimal.Decimal, totalPayments int, freq PaymentFrequency) decimal.Decimal {
	if principal.Sign() <= 0 || totalPayments <= 0 || annualRate.Sign() < 0 {
		return decimal.Zero
	}
	r := periodicRate(annualRate, freq)
	switch amort {
	case French, German:
		return levelPayment(principal, annualRate, totalPayments, freq)
	case Italian:
		// First (largest) payment: constant principal plus full interest.
		constPrincipal := principal.Div(decimal.NewFromInt(int64(totalPayments))).RoundBank(moneyScale)
		return constPrincipal.Add(principal.Mul(r).RoundBank(moneyScale))
	case American:
		return principal.Mul(r).RoundBank(moneyScale)
	default:
		return decimal.Zero
	}
}

// AmortizationSchedule generates the full payment table for the given
// policy. Dates advance by the payment frequency from start.
func AmortizationSchedule(amort AmortizationType, principal, annualRate decimal.Decimal, totalPayments int, freq PaymentFrequency, start Date, currency string) []ScheduleRow {
	return AmortizationScheduleFrom(amort, principal, annualRate, totalPayments, 0, freq, start, currency)
}

// AmortizationScheduleFrom generates the rows still due on a mid-life
// loan, resuming after paymentsMade periods. Periods keep their absolute
// numbering, the outstanding balance is replayed per the policy, and the
// partial schedule still amortizes that balance down to exactly zero.
//
// German charges the first generated row's interest on the original
// principal (interest prepaid), French on the replayed declining balance;
// on a fresh schedule the two coincide.
func AmortizationScheduleFrom(amort AmortizationType, principal, annualRate decimal.Decimal, totalPayments, paymentsMade int, freq PaymentFrequency, start Date, currency string) []ScheduleRow {
	if principal.Sign() <= 0 || totalPayments <= 0 || annualRate.Sign() < 0 {
		return nil
	}
	if paymentsMade < 0 {
		paymentsMade = 0
	}
	if paymentsMade >= totalPayments {
		return nil
	}

	r := periodicRate(annualRate, freq)
	months := freq.MonthsBetween()
	rows := make([]ScheduleRow, 0, totalPayments-paymentsMade)
	remaining := RemainingBalance(amort, principal, annualRate, totalPayments, paymentsMade, freq)

	row := func(period int, payment, interest, princ decimal.Decimal) {
		remaining = remaining.Sub(princ)
		rows = append(rows, ScheduleRow{
			Period:    period,
			Date:      start.AddMonth(period * months),
			Payment:   M(payment, currency),
			Interest:  M(interest, currency),
			Principal: M(princ, currency),
			Remaining: M(remaining, currency),
		})
	}

	switch amort {
	case French, German:
		payment := levelPayment(principal, annualRate, totalPayments, freq)
		for period := paymentsMade + 1; period <= totalPayments; period++ {
			interest := remaining.Mul(r).RoundBank(moneyScale)
			if amort == German && period == paymentsMade+1 {
				// Interest prepaid: the first period is charged on the
				// full original principal, not the declining balance.
				interest = principal.Mul(r).RoundBank(moneyScale)
			}
			princ := payment.Sub(interest)
			if period == totalPayments {
				// Absorb rounding drift: force the last principal to the
				// remaining balance and recompute the payment.
				princ = remaining
				row(period, princ.Add(interest), interest, princ)
				break
			}
			row(period, payment, interest, princ)
		}

	case Italian:
		constPrincipal := principal.Div(decimal.NewFromInt(int64(totalPayments))).RoundBank(moneyScale)
		for period := paymentsMade + 1; period <= totalPayments; period++ {
			interest := remaining.Mul(r).RoundBank(moneyScale)
			princ := constPrincipal
			if period == totalPayments {
				princ = remaining
			}
			row(period, princ.Add(interest), interest, princ)
		}

	case American:
		interest := principal.Mul(r).RoundBank(moneyScale)
		for period := paymentsMade + 1; period < totalPayments; period++ {
			row(period, interest, interest, decimal.Zero)
		}
		row(totalPayments, remaining.Add(interest), interest, remaining)

	default:
		return nil
	}
	return rows
}

// RemainingBalance computes the outstanding principal after paymentsMade
// periods under the given policy.
//
// American loans owe the full principal until the final payment; Italian
// balances decline linearly; French and German balances are obtained by
// replaying the level-payment recurrence.
func RemainingBalance(amort AmortizationType, principal, annualRate decimal.Decimal, totalPayments, paymentsMade int, freq PaymentFrequency) decimal.Decimal {
	if principal.Sign() <= 0 || totalPayments <= 0 || annualRate.Sign() < 0 {
		return decimal.Zero
	}
	if paymentsMade <= 0 {
		return principal
	}
	if paymentsMade >= totalPayments {
		return decimal.Zero
	}

	switch amort {
	case American:
		return principal
	case Italian:
		constPrincipal := principal.Div(decimal.NewFromInt(int64(totalPayments))).RoundBank(moneyScale)
		balance := principal.Sub(constPrincipal.Mul(decimal.NewFromInt(int64(paymentsMade))))
		if balance.Sign() < 0 {
			return decimal.Zero
		}
		return balance
	case French, German:
		r := periodicRate(annualRate, freq)
		payment := levelPayment(principal, annualRate, totalPayments, freq)
		balance := principal
		for period := 1; period <= paymentsMade; period++ {
			interest := balance.Mul(r).RoundBank(moneyScale)
			balance = balance.Sub(payment.Sub(interest))
		}
		if balance.Sign() < 0 {
			return decimal.Zero
		}
		return balance
	default:
		return decimal.Zero
	}
}

// TotalInterest sums the interest column of the full schedule.
func TotalInterest(amort AmortizationType, principal, annualRate decimal.Decimal, totalPayments int, freq PaymentFrequency) decimal.Decimal {
	var sum decimal.Decimal
	for _, row := range AmortizationSchedule(amort, principal, annualRate, totalPayments, freq, Date{}, "") {
		sum = sum.Add(row.Interest.Amount())
	}
	return sum
}
