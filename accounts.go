package moneybook

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID is an opaque entity identifier.
//
// Entities reference each other by ID rather than by pointer, so the
// whole entity graph stays acyclic and trivially serializable.
type ID string

// NewID returns a fresh unique identifier.
func NewID() ID { return ID(uuid.NewString()) }

// AccountClass is the accounting class of an account. It fully determines
// the account's normal balance.
type AccountClass string

const (
	Asset     AccountClass = "asset"
	Liability AccountClass = "liability"
	Equity    AccountClass = "equity"
	Income    AccountClass = "income"
	Expense   AccountClass = "expense"
)

// NormalBalance returns the entry type that increases a balance of this class.
// Asset and expense accounts are debit-normal; liability, equity and income
// accounts are credit-normal.
func (c AccountClass) NormalBalance() EntryType {
	switch c {
	case Asset, Expense:
		return Debit
	case Liability, Equity, Income:
		return Credit
	default:
		// An unknown class contributes nothing anywhere; debit-normal is
		// as good a default as any for display.
		return Debit
	}
}

// AccountType is a subtype tag used for grouping and icons. The only
// computation that depends on it is deriving the AccountClass.
type AccountType string

const (
	Checking       AccountType = "checking"
	Savings        AccountType = "savings"
	Cash           AccountType = "cash"
	Investment     AccountType = "investment"
	CreditCard     AccountType = "creditCard"
	LoanAccount    AccountType = "loan"
	OpeningBalance AccountType = "openingBalance"
	Salary         AccountType = "salary"
	OtherIncome    AccountType = "otherIncome"
	Category       AccountType = "category"
)

// Class derives the accounting class from the subtype tag.
func (t AccountType) Class() AccountClass {
	switch t {
	case Checking, Savings, Cash, Investment:
		return Asset
	case CreditCard, LoanAccount:
		return Liability
	case OpeningBalance:
		return Equity
	case Salary, OtherIncome:
		return Income
	case Category:
		return Expense
	default:
		return Expense
	}
}

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case Checking, Savings, Cash, Investment, CreditCard, LoanAccount,
		OpeningBalance, Salary, OtherIncome, Category:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// Account is one node of the chart of accounts. It is the aggregation root
// for balance computation but does not own the lifetime of its entries;
// entries belong to their transaction.
type Account struct {
	ID        ID
	Name      string
	Currency  string
	Type      AccountType
	Active    bool
	System    bool // protects the opening-balance equity account from deletion
	CreatedAt time.Time
}

// NewAccount creates an active account of the given subtype.
func NewAccount(name, currency string, typ AccountType) *Account {
	return &Account{
		ID:        NewID(),
		Name:      name,
		Currency:  currency,
		Type:      typ,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// Class returns the accounting class derived from the account subtype.
func (a *Account) Class() AccountClass { return a.Type.Class() }

// MarshalJSON implements the json.Marshaler interface for Account.
func (a *Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Append("currency", a.Currency)
	w.Append("type", a.Type)
	w.Append("active", a.Active)
	w.Optional("system", a.System)
	w.Append("createdAt", a.CreatedAt.Format(time.RFC3339Nano))
	return w.MarshalJSON()
}
