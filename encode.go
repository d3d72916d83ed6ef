package moneybook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// This file implements the backup import/export format: a versioned
// JSONL snapshot of the whole entity graph. It remains human readable
// and round-trips every field losslessly: amounts travel as exact
// decimal strings, never binary floats, so that export then import
// reproduces identical balances.

// backupVersion is the current backup format version.
const backupVersion = 1

type backupHeader struct {
	Version int    `json:"version"`
	Kind    string `json:"kind"`
}

// EncodeBackup writes the ledger to w in the backup format: one header
// line, then one line per account, then one line per transaction in
// chronological order with entries, recurrence rule and attachments
// embedded.
func EncodeBackup(w io.Writer, l *Ledger) error {
	writeLine := func(v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	if err := writeLine(backupHeader{Version: backupVersion, Kind: "moneybook-backup"}); err != nil {
		return fmt.Errorf("cannot write backup header: %w", err)
	}
	for a := range l.Accounts() {
		var jw jsonObjectWriter
		jw.Append("record", "account")
		jw.EmbedFrom(a)
		if err := writeLine(&jw); err != nil {
			return fmt.Errorf("cannot write account %q: %w", a.Name, err)
		}
	}
	for tx := range l.Transactions() {
		var jw jsonObjectWriter
		jw.Append("record", "transaction")
		jw.EmbedFrom(tx)
		if err := writeLine(&jw); err != nil {
			return fmt.Errorf("cannot write transaction %q: %w", tx.ID, err)
		}
	}
	return nil
}

// jaccount mirrors the account line for decoding.
type jaccount struct {
	ID        ID          `json:"id"`
	Name      string      `json:"name"`
	Currency  string      `json:"currency"`
	Type      AccountType `json:"type"`
	Active    bool        `json:"active"`
	System    bool        `json:"system"`
	CreatedAt string      `json:"createdAt"`
}

// jentry mirrors the entry object for decoding.
type jentry struct {
	ID       ID              `json:"id"`
	Type     EntryType       `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Account  ID              `json:"account"`
}

// jtransaction mirrors the transaction line for decoding.
type jtransaction struct {
	ID           ID                   `json:"id"`
	Date         Date                 `json:"date"`
	Description  string               `json:"description"`
	Reference    string               `json:"reference"`
	CreatedAt    string               `json:"createdAt"`
	Recurring    bool                 `json:"recurring"`
	Status       ReconciliationStatus `json:"status"`
	ReconciledOn Date                 `json:"reconciledOn"`
	Entries      []jentry             `json:"entries"`
	Recurrence   *RecurrenceRule      `json:"recurrence"`
	Attachments  []Attachment         `json:"attachments"`
}

// DecodeBackup reads a backup written by EncodeBackup and rebuilds the
// ledger. It rejects unknown format versions rather than guessing, and
// stores unbalanced transactions as-is: integrity is surfaced through
// Transaction.IsBalanced, never repaired silently.
func DecodeBackup(r io.Reader) (*Ledger, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty backup: %w", scanner.Err())
	}
	var header backupHeader
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, fmt.Errorf("cannot parse backup header: %w", err)
	}
	if header.Version != backupVersion {
		return nil, fmt.Errorf("unsupported backup version %d, want %d", header.Version, backupVersion)
	}

	l := NewLedger()
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var identifier struct {
			Record string `json:"record"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record in line %q: %w", string(line), err)
		}

		switch identifier.Record {
		case "account":
			var ja jaccount
			if err := json.Unmarshal(line, &ja); err != nil {
				return nil, fmt.Errorf("cannot parse account line %q: %w", string(line), err)
			}
			created, err := parseTimestamp(ja.CreatedAt)
			if err != nil {
				return nil, err
			}
			a := &Account{
				ID:        ja.ID,
				Name:      ja.Name,
				Currency:  ja.Currency,
				Type:      ja.Type,
				Active:    ja.Active,
				System:    ja.System,
				CreatedAt: created,
			}
			if err := l.AddAccount(a); err != nil {
				return nil, err
			}

		case "transaction":
			var jt jtransaction
			if err := json.Unmarshal(line, &jt); err != nil {
				return nil, fmt.Errorf("cannot parse transaction line %q: %w", string(line), err)
			}
			created, err := parseTimestamp(jt.CreatedAt)
			if err != nil {
				return nil, err
			}
			tx := &Transaction{
				ID:           jt.ID,
				Date:         jt.Date,
				Description:  jt.Description,
				Reference:    jt.Reference,
				CreatedAt:    created,
				Recurring:    jt.Recurring,
				Status:       jt.Status,
				ReconciledOn: jt.ReconciledOn,
				Recurrence:   jt.Recurrence,
				Attachments:  jt.Attachments,
			}
			if tx.Status == "" {
				tx.Status = Unreconciled
			}
			for _, je := range jt.Entries {
				tx.Entries = append(tx.Entries, Entry{
					ID:          je.ID,
					Type:        je.Type,
					Amount:      M(je.Amount, je.Currency),
					AccountID:   je.Account,
					Transaction: tx.ID,
				})
			}
			if err := l.Append(tx); err != nil {
				return nil, err
			}
			if tx.Reference != "" {
				l.imported[tx.Reference] = tx.ID
			}

		default:
			return nil, fmt.Errorf("unknown record kind %q in line %q", identifier.Record, string(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read backup: %w", err)
	}
	return l, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
