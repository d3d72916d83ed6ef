package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/moneybook"
	"github.com/etnz/moneybook/renderer"
	"github.com/google/subcommands"
)

// accountsCmd lists accounts with balances, or adds a new account.
type accountsCmd struct {
	add      string
	typ      string
	currency string
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and balances, or add an account" }
func (*accountsCmd) Usage() string {
	return `mbk accounts [-add <name> -type <type> [-c <currency>]]

  Without flags, displays every account with its class and balance.
  With -add, registers a new account of the given type.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Name of a new account to create.")
	f.StringVar(&c.typ, "type", string(moneybook.Category), "Account type for -add (checking, savings, cash, investment, creditCard, loan, salary, otherIncome, category).")
	f.StringVar(&c.currency, "c", "EUR", "Currency code for -add.")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedgerFile()
	if err != nil {
		return fail("Error decoding ledger %q: %v", *ledgerFile, err)
	}

	if c.add != "" {
		typ, err := moneybook.ParseAccountType(c.typ)
		if err != nil {
			return fail("Error: %v", err)
		}
		if err := ledger.AddAccount(moneybook.NewAccount(c.add, c.currency, typ)); err != nil {
			return fail("Error adding account: %v", err)
		}
		if err := encodeLedgerFile(ledger); err != nil {
			return fail("Error writing ledger %q: %v", *ledgerFile, err)
		}
		fmt.Printf("Successfully added %s account %q\n", typ, c.add)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.BalancesMarkdown(ledger))
	return subcommands.ExitSuccess
}
