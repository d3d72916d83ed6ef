package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/moneybook"
	"github.com/google/subcommands"
)

// txCmd records one balanced transaction.
type txCmd struct {
	date        string
	from        string
	to          string
	amount      string
	description string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "record a balanced transaction" }
func (*txCmd) Usage() string {
	return `mbk tx -from <account> -to <account> -a <amount> [-d <date>] [-m <description>]

  Records one transaction debiting the -to account and crediting the
  -from account, always as a balanced debit/credit pair. For an expense,
  -from is the funding account and -to the category.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", moneybook.Today().String(), "Date of the transaction.")
	f.StringVar(&c.from, "from", "", "Account name the money comes from (credited).")
	f.StringVar(&c.to, "to", "", "Account name the money goes to (debited).")
	f.StringVar(&c.amount, "a", "", "Amount, as a decimal like 12.34.")
	f.StringVar(&c.description, "m", "", "Free-text description.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := moneybook.ParseDate(c.date)
	if err != nil {
		return fail("Error parsing date: %v", err)
	}

	ledger, err := decodeLedgerFile()
	if err != nil {
		return fail("Error decoding ledger %q: %v", *ledgerFile, err)
	}

	from := ledger.AccountByName(c.from)
	if from == nil {
		return fail("Error: unknown account %q", c.from)
	}
	to := ledger.AccountByName(c.to)
	if to == nil {
		return fail("Error: unknown account %q", c.to)
	}
	amount, err := moneybook.ParseMoney(c.amount, from.Currency)
	if err != nil {
		return fail("Error parsing amount: %v", err)
	}

	tx := moneybook.NewSimpleTransaction(on, c.description, to.ID, from.ID, amount)
	if err := ledger.Append(tx); err != nil {
		return fail("Error appending transaction: %v", err)
	}
	if err := encodeLedgerFile(ledger); err != nil {
		return fail("Error writing ledger %q: %v", *ledgerFile, err)
	}

	fmt.Printf("Successfully recorded %s from %q to %q on %s\n", amount, from.Name, to.Name, on)
	return subcommands.ExitSuccess
}
