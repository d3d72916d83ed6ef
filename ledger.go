package moneybook

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger is an arena of finance entities keyed by opaque identifiers.
//
// Transactions are always kept in chronological order. Entries live
// inside their owning transaction and reference their account and
// transaction by ID; the ledger is the lookup table the engines resolve
// those references through.
type Ledger struct {
	accounts     map[ID]*Account
	accountOrder []ID

	transactions []*Transaction // chronological
	txIndex      map[ID]*Transaction

	imported map[string]ID // statement external id -> transaction id
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[ID]*Account),
		txIndex:  make(map[ID]*Transaction),
		imported: make(map[string]ID),
	}
}

// AddAccount registers an account in the ledger.
func (l *Ledger) AddAccount(a *Account) error {
	if a == nil || a.ID == "" {
		return errors.New("account has no id")
	}
	if _, ok := l.accounts[a.ID]; ok {
		return fmt.Errorf("account %q already exists", a.ID)
	}
	l.accounts[a.ID] = a
	l.accountOrder = append(l.accountOrder, a.ID)
	return nil
}

// Account returns the account with this id, or nil if unknown.
func (l *Ledger) Account(id ID) *Account {
	return l.accounts[id]
}

// AccountByName returns the first account with this display name, or nil.
func (l *Ledger) AccountByName(name string) *Account {
	for _, id := range l.accountOrder {
		if a := l.accounts[id]; a.Name == name {
			return a
		}
	}
	return nil
}

// Accounts iterates over all accounts in insertion order.
func (l *Ledger) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for _, id := range l.accountOrder {
			if !yield(l.accounts[id]) {
				return
			}
		}
	}
}

// OpeningBalanceAccount returns the single system equity account used for
// opening balances, creating it on first use.
func (l *Ledger) OpeningBalanceAccount(currency string) *Account {
	for _, id := range l.accountOrder {
		if a := l.accounts[id]; a.System && a.Type == OpeningBalance {
			return a
		}
	}
	a := NewAccount("Opening Balance", currency, OpeningBalance)
	a.System = true
	l.AddAccount(a)
	return a
}

// DeleteAccount removes an account. System accounts and accounts still
// referenced by entries cannot be deleted.
func (l *Ledger) DeleteAccount(id ID) error {
	a, ok := l.accounts[id]
	if !ok {
		return fmt.Errorf("unknown account %q", id)
	}
	if a.System {
		return fmt.Errorf("account %q is a system account", a.Name)
	}
	for _, tx := range l.transactions {
		for _, e := range tx.Entries {
			if e.AccountID == id {
				return fmt.Errorf("account %q still has entries", a.Name)
			}
		}
	}
	delete(l.accounts, id)
	l.accountOrder = slices.DeleteFunc(l.accountOrder, func(x ID) bool { return x == id })
	return nil
}

// Append inserts a transaction keeping chronological order.
//
// The transaction may be unbalanced: the ledger never corrects data, it
// only stores it; callers gate on Transaction.IsBalanced.
func (l *Ledger) Append(tx *Transaction) error {
	if tx == nil || tx.ID == "" {
		return errors.New("transaction has no id")
	}
	if _, ok := l.txIndex[tx.ID]; ok {
		return fmt.Errorf("transaction %q already exists", tx.ID)
	}
	l.txIndex[tx.ID] = tx
	l.transactions = append(l.transactions, tx)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
	return nil
}

// Transaction returns the transaction with this id, or nil if unknown.
func (l *Ledger) Transaction(id ID) *Transaction {
	return l.txIndex[id]
}

// Transactions iterates over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[*Transaction] {
	return func(yield func(*Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Delete removes a transaction and cascades to everything it owns:
// its entries, its attachments and its recurrence rule all go with it,
// in the same operation, so no orphan is ever left behind.
func (l *Ledger) Delete(id ID) error {
	tx, ok := l.txIndex[id]
	if !ok {
		return fmt.Errorf("unknown transaction %q", id)
	}
	// Entries, attachments and the rule are owned values of the
	// transaction; dropping the transaction drops them atomically.
	tx.Entries = nil
	tx.Attachments = nil
	tx.Recurrence = nil
	delete(l.txIndex, id)
	l.transactions = slices.DeleteFunc(l.transactions, func(t *Transaction) bool { return t.ID == id })
	for ext, txid := range l.imported {
		if txid == id {
			delete(l.imported, ext)
		}
	}
	return nil
}

// Entries iterates over all entries of the given account, paired with
// their owning transaction, in chronological order.
func (l *Ledger) Entries(accountID ID) iter.Seq2[*Transaction, Entry] {
	return func(yield func(*Transaction, Entry) bool) {
		for _, tx := range l.transactions {
			for _, e := range tx.Entries {
				if e.AccountID != accountID {
					continue
				}
				if !yield(tx, e) {
					return
				}
			}
		}
	}
}

// StatementRecord is one raw bank-statement line as produced by an import
// collaborator: a date, a signed amount in the account currency, a free
// description and the bank's own identifier used for deduplication.
type StatementRecord struct {
	Date        Date
	Amount      decimal.Decimal // signed: positive means money in
	Description string
	ExternalID  string
}

// ImportStatement turns statement records into balanced transactions
// against a target asset account and a chosen category account.
//
// Positive amounts debit the asset account (money in, credited to the
// category); negative amounts go the other way. Records whose external id
// was already imported are skipped, so re-importing the same statement is
// a no-op. It returns the number of transactions appended.
func (l *Ledger) ImportStatement(records []StatementRecord, assetAccount, categoryAccount ID) (int, error) {
	asset := l.Account(assetAccount)
	if asset == nil {
		return 0, fmt.Errorf("unknown account %q", assetAccount)
	}
	if l.Account(categoryAccount) == nil {
		return 0, fmt.Errorf("unknown account %q", categoryAccount)
	}
	var n int
	for _, rec := range records {
		if rec.ExternalID != "" {
			if _, dup := l.imported[rec.ExternalID]; dup {
				continue
			}
		}
		amount := M(rec.Amount, asset.Currency)
		tx := NewTransaction(rec.Date, rec.Description).
			Reference(rec.ExternalID).
			Pair(assetAccount, categoryAccount, amount).
			Build()
		if err := l.Append(tx); err != nil {
			return n, err
		}
		if rec.ExternalID != "" {
			l.imported[rec.ExternalID] = tx.ID
		}
		n++
	}
	return n, nil
}
