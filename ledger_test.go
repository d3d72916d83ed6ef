package moneybook

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// setupLedger creates a small chart of accounts used across ledger tests.
func setupLedger(t *testing.T) (l *Ledger, checking, salary, groceries *Account) {
	t.Helper()
	l = NewLedger()
	checking = NewAccount("Checking", "EUR", Checking)
	salary = NewAccount("Salary", "EUR", Salary)
	groceries = NewAccount("Groceries", "EUR", Category)
	for _, a := range []*Account{checking, salary, groceries} {
		if err := l.AddAccount(a); err != nil {
			t.Fatalf("AddAccount(%s) failed: %v", a.Name, err)
		}
	}
	return l, checking, salary, groceries
}

func TestLedgerAccounts(t *testing.T) {
	l, checking, _, _ := setupLedger(t)

	if err := l.AddAccount(checking); err == nil {
		t.Error("adding the same account twice should fail")
	}
	if got := l.Account(checking.ID); got != checking {
		t.Errorf("Account() = %v, want checking", got)
	}
	if got := l.AccountByName("Groceries"); got == nil || got.Name != "Groceries" {
		t.Errorf("AccountByName(Groceries) = %v", got)
	}
	if got := l.AccountByName("Nope"); got != nil {
		t.Errorf("AccountByName(Nope) = %v, want nil", got)
	}

	var names []string
	for a := range l.Accounts() {
		names = append(names, a.Name)
	}
	want := []string{"Checking", "Salary", "Groceries"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("accounts in order %v, want %v", names, want)
			break
		}
	}
}

func TestOpeningBalanceAccount(t *testing.T) {
	l, _, _, _ := setupLedger(t)

	ob := l.OpeningBalanceAccount("EUR")
	if !ob.System || ob.Type != OpeningBalance {
		t.Errorf("got %+v, want a system opening-balance account", ob)
	}
	// Single instance: a second call returns the same account.
	if again := l.OpeningBalanceAccount("EUR"); again != ob {
		t.Error("OpeningBalanceAccount() created a second system account")
	}
	if err := l.DeleteAccount(ob.ID); err == nil {
		t.Error("deleting the system account should fail")
	}
}

func TestDeleteAccount(t *testing.T) {
	l, checking, salary, _ := setupLedger(t)
	tx := NewSimpleTransaction(NewDate(2025, time.May, 1), "Pay", checking.ID, salary.ID, M(1000, "EUR"))
	if err := l.Append(tx); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	if err := l.DeleteAccount(checking.ID); err == nil {
		t.Error("deleting an account with entries should fail")
	}
	if err := l.DeleteAccount("no-such-id"); err == nil {
		t.Error("deleting an unknown account should fail")
	}

	// Once the transaction is gone the account is free to go.
	if err := l.Delete(tx.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := l.DeleteAccount(checking.ID); err != nil {
		t.Errorf("DeleteAccount() failed: %v", err)
	}
	if l.Account(checking.ID) != nil {
		t.Error("deleted account still resolvable")
	}
}

// TestAppendKeepsChronology inserts out of order and checks iteration is
// chronological anyway.
func TestAppendKeepsChronology(t *testing.T) {
	l, checking, salary, _ := setupLedger(t)
	days := []Date{
		NewDate(2025, time.March, 10),
		NewDate(2025, time.January, 5),
		NewDate(2025, time.February, 20),
	}
	for _, d := range days {
		if err := l.Append(NewSimpleTransaction(d, "t", checking.ID, salary.ID, M(1, "EUR"))); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	var prev Date
	for tx := range l.Transactions() {
		if tx.Date.Before(prev) {
			t.Errorf("transaction on %s listed after %s", tx.Date, prev)
		}
		prev = tx.Date
	}

	tx := NewSimpleTransaction(days[0], "dup", checking.ID, salary.ID, M(1, "EUR"))
	if err := l.Append(tx); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if err := l.Append(tx); err == nil {
		t.Error("appending the same transaction twice should fail")
	}
}

// TestDeleteCascades asserts that deleting a transaction takes its owned
// entries, attachments and recurrence rule with it.
func TestDeleteCascades(t *testing.T) {
	l, checking, salary, _ := setupLedger(t)
	rule := NewRecurrenceRule(MonthlyFreq, 1, NewDate(2025, time.January, 28))
	tx := NewTransaction(rule.Start, "Salary").
		Template(rule).
		Pair(checking.ID, salary.ID, M(2500, "EUR")).
		Build()
	tx.Attachments = []Attachment{{ID: NewID(), Name: "payslip.pdf", URI: "file:///payslip.pdf"}}
	if err := l.Append(tx); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	if err := l.Delete(tx.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if tx.Entries != nil || tx.Attachments != nil || tx.Recurrence != nil {
		t.Error("owned values survived the cascade")
	}
	if l.Transaction(tx.ID) != nil {
		t.Error("deleted transaction still resolvable")
	}
	if err := l.Delete(tx.ID); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestImportStatement(t *testing.T) {
	l, checking, _, groceries := setupLedger(t)
	records := []StatementRecord{
		{Date: NewDate(2025, time.June, 2), Amount: dec("-45.60"), Description: "SUPERMARKET", ExternalID: "b1"},
		{Date: NewDate(2025, time.June, 3), Amount: dec("12.00"), Description: "REFUND", ExternalID: "b2"},
	}

	n, err := l.ImportStatement(records, checking.ID, groceries.ID)
	if err != nil {
		t.Fatalf("ImportStatement() failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d transactions, want 2", n)
	}

	// Money out decreases the asset, money in increases it.
	if got := l.Balance(checking.ID); !got.Amount().Equal(dec("-33.60")) {
		t.Errorf("checking balance = %s, want -33.60", got.Amount())
	}
	// The refund reduces the category's spending.
	if got := l.Balance(groceries.ID); !got.Amount().Equal(dec("33.60")) {
		t.Errorf("groceries balance = %s, want 33.60", got.Amount())
	}
	for tx := range l.Transactions() {
		if !tx.IsBalanced() {
			t.Errorf("imported transaction %q is unbalanced", tx.Description)
		}
	}
}

// TestImportStatement_Dedupe re-imports overlapping statements and checks
// records already seen are skipped by external id.
func TestImportStatement_Dedupe(t *testing.T) {
	l, checking, _, groceries := setupLedger(t)
	first := []StatementRecord{
		{Date: NewDate(2025, time.June, 2), Amount: dec("-45.60"), Description: "SUPERMARKET", ExternalID: "b1"},
	}
	if _, err := l.ImportStatement(first, checking.ID, groceries.ID); err != nil {
		t.Fatalf("ImportStatement() failed: %v", err)
	}

	overlap := append(first, StatementRecord{
		Date: NewDate(2025, time.June, 9), Amount: dec("-9.90"), Description: "BAKERY", ExternalID: "b3",
	})
	n, err := l.ImportStatement(overlap, checking.ID, groceries.ID)
	if err != nil {
		t.Fatalf("ImportStatement() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("re-import appended %d transactions, want 1", n)
	}
	if got := l.Balance(checking.ID); !got.Amount().Equal(dec("-55.50")) {
		t.Errorf("checking balance = %s, want -55.50", got.Amount())
	}

	// Deleting an imported transaction frees its external id.
	var imported *Transaction
	for tx := range l.Transactions() {
		if tx.Reference == "b1" {
			imported = tx
		}
	}
	if err := l.Delete(imported.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if n, _ := l.ImportStatement(first, checking.ID, groceries.ID); n != 1 {
		t.Errorf("import after delete appended %d, want 1", n)
	}
}

func TestImportStatement_UnknownAccount(t *testing.T) {
	l, checking, _, _ := setupLedger(t)
	records := []StatementRecord{{Date: Today(), Amount: decimal.NewFromInt(1), ExternalID: "x"}}
	if _, err := l.ImportStatement(records, checking.ID, "no-such-account"); err == nil {
		t.Error("unknown category account should fail")
	}
	if _, err := l.ImportStatement(records, "no-such-account", checking.ID); err == nil {
		t.Error("unknown asset account should fail")
	}
}
