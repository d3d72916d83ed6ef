package moneybook

import (
	"github.com/shopspring/decimal"
)

// Quote is a current market price supplied by an external quote
// collaborator.
type Quote struct {
	Price    decimal.Decimal
	Currency string
}

// QuoteFunc is the quote collaborator contract: it returns the current
// price for a symbol, or ok == false when no market data is available.
// Absence of data is not an error.
type QuoteFunc func(symbol string) (q Quote, ok bool)

// PositionValue is the valuation of one investment position.
type PositionValue struct {
	CostBasis     Money
	MarketValue   Money
	Gain          Money
	GainPercent   float64
	HasMarketData bool
}

// ValuePosition values a holding of units against its cost basis using
// an optional quote. Without a quote the position falls back to its cost
// basis and HasMarketData is false.
func ValuePosition(costBasis Money, units decimal.Decimal, quote *Quote) PositionValue {
	v := PositionValue{CostBasis: costBasis, MarketValue: costBasis}
	if quote == nil || units.Sign() <= 0 {
		return v
	}
	market := M(units.Mul(quote.Price).RoundBank(moneyScale), quote.Currency)
	v.MarketValue = market
	v.Gain = market.Sub(costBasis)
	v.HasMarketData = true
	if !costBasis.IsZero() {
		ratio, _ := v.Gain.Amount().Div(costBasis.Amount()).Float64()
		v.GainPercent = ratio * 100
	}
	return v
}

// InvestmentValue values an investment account: its balance is the cost
// basis of the position, valued at the collaborator's quote for symbol.
func (l *Ledger) InvestmentValue(accountID ID, symbol string, units decimal.Decimal, quotes QuoteFunc) PositionValue {
	cost := l.Balance(accountID)
	if quotes == nil {
		return ValuePosition(cost, units, nil)
	}
	q, ok := quotes(symbol)
	if !ok {
		return ValuePosition(cost, units, nil)
	}
	return ValuePosition(cost, units, &q)
}
