package moneybook

import (
	"github.com/shopspring/decimal"
)

// EarlyRepayment is the outcome of simulating a lump extra payment
// against a loan's current remaining balance.
//
// The simulation keeps the original payment amount and finishes early;
// NewPaymentCount is how many payments remain after the lump payment. If
// the payment no longer covers the period interest (negative
// amortization), the replay stops and the count saturates at the
// remaining payments instead of looping.
type EarlyRepayment struct {
	RemainingBalance decimal.Decimal // before the extra payment
	InterestWithout  decimal.Decimal // interest left to pay without the extra payment
	InterestWith     decimal.Decimal // interest left to pay after the extra payment
	SavedInterest    decimal.Decimal
	Penalty          decimal.Decimal
	NetSavings       decimal.Decimal
	NewPaymentCount  int
	Saturated        bool // true when the replay hit the payment-count cap
}

// replayInterest replays up to maxPayments periods of the given policy's
// recurrence from balance, accumulating interest, and returns the number
// of payments needed to clear the balance. saturated is true when the cap
// was hit first, either because the balance genuinely needs that many
// payments or because the payment stopped covering the interest.
func replayInterest(amort AmortizationType, balance, payment, constPrincipal, r decimal.Decimal, maxPayments int) (interest decimal.Decimal, payments int, saturated bool) {
	for balance.Sign() > 0 {
		if payments >= maxPayments {
			return interest, maxPayments, true
		}
		periodInterest := balance.Mul(r).RoundBank(moneyScale)

		var principalPart decimal.Decimal
		switch amort {
		case Italian:
			principalPart = constPrincipal
		case American:
			// Interest only until the bullet; the balance clears in the
			// last allowed period.
			if payments == maxPayments-1 {
				principalPart = balance
			} else {
				principalPart = decimal.Zero
			}
		default: // French, German
			principalPart = payment.Sub(periodInterest)
			if principalPart.Sign() <= 0 {
				// Negative amortization: the payment no longer covers the
				// interest. Report the boundary instead of looping.
				return interest, maxPayments, true
			}
		}
		if principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		interest = interest.Add(periodInterest)
		balance = balance.Sub(principalPart)
		payments++
	}
	return interest, payments, false
}

// SimulateEarlyRepayment compares total remaining interest with and
// without a lump extra payment of amount against the loan's current
// balance. penaltyPercent is the early-repayment fee in percentage units
// applied to the extra amount.
func SimulateEarlyRepayment(l *Loan, amount, penaltyPercent decimal.Decimal) EarlyRepayment {
	var res EarlyRepayment
	if l == nil || amount.Sign() <= 0 {
		return res
	}
	remaining := RemainingBalance(l.Amortization, l.Principal, l.AnnualRate, l.TotalPayments, l.PaymentsMade, l.Frequency)
	if remaining.Sign() <= 0 {
		return res
	}

	r := periodicRate(l.AnnualRate, l.Frequency)
	payment := PaymentFor(l.Amortization, l.Principal, l.AnnualRate, l.TotalPayments, l.Frequency)
	constPrincipal := l.Principal.Div(decimal.NewFromInt(int64(l.TotalPayments))).RoundBank(moneyScale)
	remainingPayments := l.RemainingPayments()

	reduced := remaining.Sub(amount)
	if reduced.Sign() < 0 {
		reduced = decimal.Zero
	}

	res.RemainingBalance = remaining
	res.InterestWithout, _, _ = replayInterest(l.Amortization, remaining, payment, constPrincipal, r, remainingPayments)
	res.InterestWith, res.NewPaymentCount, res.Saturated = replayInterest(l.Amortization, reduced, payment, constPrincipal, r, remainingPayments)
	res.SavedInterest = res.InterestWithout.Sub(res.InterestWith)
	res.Penalty = amount.Mul(penaltyPercent).Div(decimal.NewFromInt(100)).RoundBank(moneyScale)
	res.NetSavings = res.SavedInterest.Sub(res.Penalty)
	return res
}

// RateScenario is the loan recomputed at one rate delta.
type RateScenario struct {
	Delta         decimal.Decimal // percentage points added to the annual rate
	AnnualRate    decimal.Decimal // resulting rate, floored at zero
	Payment       decimal.Decimal
	TotalInterest decimal.Decimal
}

// rateDeltas is the fixed ladder of what-if shifts, in percentage points.
var rateDeltas = []decimal.Decimal{
	decimal.NewFromFloat(-1),
	decimal.NewFromFloat(-0.5),
	decimal.NewFromFloat(0),
	decimal.NewFromFloat(0.5),
	decimal.NewFromFloat(1),
	decimal.NewFromFloat(1.5),
	decimal.NewFromFloat(2),
}

// SimulateRateScenarios recomputes payment and total interest for each of
// the fixed rate deltas, flooring the resulting rate at zero. The result
// is ordered from the lowest to the highest delta.
func SimulateRateScenarios(l *Loan) []RateScenario {
	if l == nil || l.Principal.Sign() <= 0 || l.TotalPayments <= 0 {
		return nil
	}
	out := make([]RateScenario, 0, len(rateDeltas))
	for _, delta := range rateDeltas {
		rate := l.AnnualRate.Add(delta)
		if rate.Sign() < 0 {
			rate = decimal.Zero
		}
		out = append(out, RateScenario{
			Delta:         delta,
			AnnualRate:    rate,
			Payment:       PaymentFor(l.Amortization, l.Principal, rate, l.TotalPayments, l.Frequency),
			TotalInterest: TotalInterest(l.Amortization, l.Principal, rate, l.TotalPayments, l.Frequency),
		})
	}
	return out
}
