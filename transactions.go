package moneybook

import (
	"time"
)

// EntryType is the side of a double-entry posting.
type EntryType string

const (
	Debit  EntryType = "debit"
	Credit EntryType = "credit"
)

// Opposite returns the other side.
func (t EntryType) Opposite() EntryType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// Entry is a single posting: a non-negative amount debited or credited to
// one account on behalf of one transaction. Type and account binding are
// fixed at creation; only the amount may be edited, and only before the
// owning transaction is committed to a ledger.
type Entry struct {
	ID          ID
	Type        EntryType
	Amount      Money // non-negative
	AccountID   ID
	Transaction ID
}

// MarshalJSON implements the json.Marshaler interface for Entry.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("type", e.Type)
	w.EmbedFrom(e.Amount)
	w.Append("account", e.AccountID)
	return w.MarshalJSON()
}

// ReconciliationStatus tracks whether a transaction has been checked
// against a bank statement.
type ReconciliationStatus string

const (
	Unreconciled ReconciliationStatus = "unreconciled"
	Cleared      ReconciliationStatus = "cleared"
	Reconciled   ReconciliationStatus = "reconciled"
)

// Attachment is a document linked to a transaction. It takes no part in
// any computation; it only follows the transaction's lifetime.
type Attachment struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Transaction records one financial event as a balanced set of entries.
//
// A transaction with Recurring == true is a template spawned by a
// recurrence rule; templates are excluded from every balance and report
// aggregation.
type Transaction struct {
	ID           ID
	Date         Date
	Description  string
	Reference    string
	CreatedAt    time.Time
	Recurring    bool
	Status       ReconciliationStatus
	ReconciledOn Date // set only when Status == Reconciled

	Entries     []Entry // ordered, owned; always >= 2 for committed transactions
	Recurrence  *RecurrenceRule
	Attachments []Attachment
}

// TotalDebits returns the sum of the debit entries' amounts.
func (t *Transaction) TotalDebits() Money {
	var sum Money
	for _, e := range t.Entries {
		if e.Type == Debit {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// TotalCredits returns the sum of the credit entries' amounts.
func (t *Transaction) TotalCredits() Money {
	var sum Money
	for _, e := range t.Entries {
		if e.Type == Credit {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// IsBalanced reports the fundamental double-entry invariant:
// total debits equal total credits.
//
// A false result is a data-integrity error. The engines never correct it
// silently; they surface this flag and let the caller decide.
func (t *Transaction) IsBalanced() bool {
	return t.TotalDebits().Amount().Equal(t.TotalCredits().Amount())
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Optional("description", t.Description)
	w.Optional("reference", t.Reference)
	w.Append("createdAt", t.CreatedAt.Format(time.RFC3339Nano))
	w.Optional("recurring", t.Recurring)
	w.Optional("status", t.Status)
	if !t.ReconciledOn.IsZero() {
		w.Append("reconciledOn", t.ReconciledOn)
	}
	w.Append("entries", t.Entries)
	if t.Recurrence != nil {
		w.Append("recurrence", t.Recurrence)
	}
	if len(t.Attachments) > 0 {
		w.Append("attachments", t.Attachments)
	}
	return w.MarshalJSON()
}

// TransactionBuilder assembles a transaction out of balanced debit/credit
// pairs, so any transaction it emits satisfies IsBalanced by construction.
type TransactionBuilder struct {
	tx Transaction
}

// NewTransaction starts a builder for a transaction on the given date.
func NewTransaction(day Date, description string) *TransactionBuilder {
	return &TransactionBuilder{tx: Transaction{
		ID:          NewID(),
		Date:        day,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Status:      Unreconciled,
	}}
}

// Reference sets a free-text reference (e.g. a statement id).
func (b *TransactionBuilder) Reference(ref string) *TransactionBuilder {
	b.tx.Reference = ref
	return b
}

// Template marks the transaction as a recurrence template owning the rule.
func (b *TransactionBuilder) Template(rule *RecurrenceRule) *TransactionBuilder {
	b.tx.Recurring = true
	b.tx.Recurrence = rule
	return b
}

// Pair appends one balanced debit/credit pair. Negative amounts are
// recorded as the mirrored pair so every entry amount stays non-negative.
func (b *TransactionBuilder) Pair(debitAccount, creditAccount ID, amount Money) *TransactionBuilder {
	if amount.IsNegative() {
		return b.Pair(creditAccount, debitAccount, amount.Neg())
	}
	b.tx.Entries = append(b.tx.Entries,
		Entry{ID: NewID(), Type: Debit, Amount: amount, AccountID: debitAccount, Transaction: b.tx.ID},
		Entry{ID: NewID(), Type: Credit, Amount: amount, AccountID: creditAccount, Transaction: b.tx.ID},
	)
	return b
}

// Build returns the assembled transaction.
func (b *TransactionBuilder) Build() *Transaction {
	tx := b.tx
	return &tx
}

// NewSimpleTransaction builds the common two-entry transaction: one amount
// debited to one account and credited to another.
func NewSimpleTransaction(day Date, description string, debitAccount, creditAccount ID, amount Money) *Transaction {
	return NewTransaction(day, description).Pair(debitAccount, creditAccount, amount).Build()
}
