package moneybook

import (
	"testing"
	"time"
)

func TestTransactionBuilder(t *testing.T) {
	checking := NewAccount("Checking", "EUR", Checking)
	groceries := NewAccount("Groceries", "EUR", Category)

	tx := NewTransaction(NewDate(2025, time.April, 2), "Market").
		Reference("stmt-42").
		Pair(groceries.ID, checking.ID, M(55.20, "EUR")).
		Build()

	if len(tx.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(tx.Entries))
	}
	if !tx.IsBalanced() {
		t.Error("built transaction is not balanced")
	}
	if tx.Status != Unreconciled {
		t.Errorf("Status = %s, want unreconciled", tx.Status)
	}
	if tx.Reference != "stmt-42" {
		t.Errorf("Reference = %q", tx.Reference)
	}
	for _, e := range tx.Entries {
		if e.Transaction != tx.ID {
			t.Errorf("entry %s references transaction %s, want %s", e.ID, e.Transaction, tx.ID)
		}
		if e.Amount.IsNegative() {
			t.Errorf("entry %s has a negative amount %s", e.ID, e.Amount)
		}
	}
	if tx.Entries[0].Type != Debit || tx.Entries[0].AccountID != groceries.ID {
		t.Errorf("first entry = %s on %s, want debit on groceries", tx.Entries[0].Type, tx.Entries[0].AccountID)
	}
}

// TestTransactionBuilder_NegativePair asserts that a negative amount is
// recorded as the mirrored pair: amounts never go negative, the sides flip.
func TestTransactionBuilder_NegativePair(t *testing.T) {
	checking := NewAccount("Checking", "EUR", Checking)
	groceries := NewAccount("Groceries", "EUR", Category)

	tx := NewTransaction(NewDate(2025, time.April, 2), "Refund").
		Pair(groceries.ID, checking.ID, M(-10, "EUR")).
		Build()

	if !tx.IsBalanced() {
		t.Error("mirrored transaction is not balanced")
	}
	if tx.Entries[0].Type != Debit || tx.Entries[0].AccountID != checking.ID {
		t.Errorf("first entry = %s on %s, want debit on checking", tx.Entries[0].Type, tx.Entries[0].AccountID)
	}
	if !tx.Entries[0].Amount.Amount().Equal(dec("10")) {
		t.Errorf("amount = %s, want 10", tx.Entries[0].Amount)
	}
}

func TestTransactionTotals(t *testing.T) {
	a, b, c := NewID(), NewID(), NewID()
	tx := NewTransaction(NewDate(2025, time.April, 2), "Split bill").
		Pair(a, c, M(30, "EUR")).
		Pair(b, c, M(20, "EUR")).
		Build()

	if got := tx.TotalDebits(); !got.Amount().Equal(dec("50")) {
		t.Errorf("TotalDebits() = %s, want 50", got)
	}
	if got := tx.TotalCredits(); !got.Amount().Equal(dec("50")) {
		t.Errorf("TotalCredits() = %s, want 50", got)
	}
	if !tx.IsBalanced() {
		t.Error("split transaction is not balanced")
	}
}

// TestIsBalanced_Broken checks the integrity flag on a hand-built
// unbalanced transaction: it is reported, never repaired.
func TestIsBalanced_Broken(t *testing.T) {
	tx := &Transaction{
		ID:   NewID(),
		Date: NewDate(2025, time.April, 2),
		Entries: []Entry{
			{ID: NewID(), Type: Debit, Amount: M(10, "EUR"), AccountID: NewID()},
			{ID: NewID(), Type: Credit, Amount: M(9, "EUR"), AccountID: NewID()},
		},
	}
	if tx.IsBalanced() {
		t.Error("unbalanced transaction reported as balanced")
	}
}

func TestEntryTypeOpposite(t *testing.T) {
	if Debit.Opposite() != Credit || Credit.Opposite() != Debit {
		t.Error("Opposite() is not an involution")
	}
}
