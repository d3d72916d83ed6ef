package moneybook

// This file is the balance and valuation engine: pure aggregation
// functions over entry sets. Template transactions (Recurring == true)
// never count; dangling account references contribute zero so reporting
// never fails on a dirty snapshot.

// signed returns the entry amount oriented by the account's normal
// balance: a debit-normal account grows with debits, a credit-normal one
// with credits.
func signed(class AccountClass, e Entry) Money {
	if e.Type == class.NormalBalance() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// foreign reports whether the entry amount is denominated in a currency
// other than its account's. A decoded snapshot can hold such entries;
// aggregation skips them, like dangling references.
func foreign(a *Account, e Entry) bool {
	c := e.Amount.Currency()
	return c != "" && c != a.Currency
}

// accumulate adds v into sum unless their currencies disagree, so that
// cross-currency aggregation degrades instead of panicking.
func accumulate(sum, v Money) Money {
	if sum.Currency() != "" && v.Currency() != "" && sum.Currency() != v.Currency() {
		return sum
	}
	return sum.Add(v)
}

// Balance computes the account's balance over the whole ledger, honoring
// the normal-balance convention of the account class. The result may be
// negative (overdraft, or a credit balance shown as debt).
func (l *Ledger) Balance(accountID ID) Money {
	a := l.Account(accountID)
	if a == nil {
		return Money{}
	}
	sum := M(0, a.Currency)
	for tx, e := range l.Entries(accountID) {
		if tx.Recurring || foreign(a, e) {
			continue
		}
		sum = sum.Add(signed(a.Class(), e))
	}
	return sum
}

// BalanceIn computes the account's balance restricted to transactions
// whose date falls within r. This is the range-scoped primitive the
// budget engine aggregates envelope spending with.
func (l *Ledger) BalanceIn(accountID ID, r Range) Money {
	a := l.Account(accountID)
	if a == nil {
		return Money{}
	}
	sum := M(0, a.Currency)
	for tx, e := range l.Entries(accountID) {
		if tx.Recurring || !r.Contains(tx.Date) || foreign(a, e) {
			continue
		}
		sum = sum.Add(signed(a.Class(), e))
	}
	return sum
}

// NetBalanceChange computes the net-worth delta of one transaction: the
// signed contribution of its asset and liability entries, where debits
// increase and credits decrease net worth. Liabilities count as negative
// assets here, so paying down a loan (a debit to a liability) increases
// the result.
func (l *Ledger) NetBalanceChange(tx *Transaction) Money {
	var sum Money
	if tx == nil || tx.Recurring {
		return sum
	}
	for _, e := range tx.Entries {
		a := l.Account(e.AccountID)
		if a == nil || foreign(a, e) {
			continue
		}
		switch a.Class() {
		case Asset, Liability:
			if e.Type == Debit {
				sum = accumulate(sum, e.Amount)
			} else {
				sum = accumulate(sum, e.Amount.Neg())
			}
		}
	}
	return sum
}

// ExpenseAmount sums the transaction's entries against expense accounts,
// honoring debit/credit polarity (a refund credited to a category reduces
// the amount).
func (l *Ledger) ExpenseAmount(tx *Transaction) Money {
	return l.classAmount(tx, Expense)
}

// IncomeAmount sums the transaction's entries against income accounts,
// honoring debit/credit polarity.
func (l *Ledger) IncomeAmount(tx *Transaction) Money {
	return l.classAmount(tx, Income)
}

func (l *Ledger) classAmount(tx *Transaction, class AccountClass) Money {
	var sum Money
	if tx == nil || tx.Recurring {
		return sum
	}
	for _, e := range tx.Entries {
		a := l.Account(e.AccountID)
		if a == nil || a.Class() != class || foreign(a, e) {
			continue
		}
		sum = accumulate(sum, signed(class, e))
	}
	return sum
}

// TotalExpenses sums ExpenseAmount over all transactions within r.
func (l *Ledger) TotalExpenses(r Range) Money {
	var sum Money
	for tx := range l.Transactions() {
		if r.Contains(tx.Date) {
			sum = accumulate(sum, l.ExpenseAmount(tx))
		}
	}
	return sum
}

// TotalIncome sums IncomeAmount over all transactions within r.
func (l *Ledger) TotalIncome(r Range) Money {
	var sum Money
	for tx := range l.Transactions() {
		if r.Contains(tx.Date) {
			sum = accumulate(sum, l.IncomeAmount(tx))
		}
	}
	return sum
}

// NetWorth sums the balances of asset accounts minus liability accounts.
func (l *Ledger) NetWorth() Money {
	var sum Money
	for a := range l.Accounts() {
		switch a.Class() {
		case Asset:
			sum = accumulate(sum, l.Balance(a.ID))
		case Liability:
			sum = accumulate(sum, l.Balance(a.ID).Neg())
		}
	}
	return sum
}
