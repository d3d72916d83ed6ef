// Package moneybook is a personal-finance calculation core.
//
// It models a double-entry ledger (accounts, entries, transactions) and
// provides pure computation engines over entity snapshots: account
// balances and income/expense aggregates, recurrence scheduling, loan
// amortization under four policies, and budget envelopes.
//
// The package performs no I/O and keeps no global state: persistence,
// presentation and synchronization are external collaborators that load
// snapshots, call into the engines, and store whatever they return.
// Recomputation from any consistent snapshot is deterministic, so the
// engines can be re-invoked after every external mutation.
//
// All monetary arithmetic is exact base-10 fixed point; see Money.
package moneybook
