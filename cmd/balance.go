package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/moneybook"
	"github.com/etnz/moneybook/renderer"
	"github.com/google/subcommands"
)

// balanceCmd displays the balance of one account.
type balanceCmd struct {
	account string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the balance of one account" }
func (*balanceCmd) Usage() string {
	return `mbk balance -account <name>

  Displays the account balance, honoring the account class's normal
  balance convention. Recurrence templates are excluded.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name to report on.")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedgerFile()
	if err != nil {
		return fail("Error decoding ledger %q: %v", *ledgerFile, err)
	}
	a := ledger.AccountByName(c.account)
	if a == nil {
		return fail("Error: unknown account %q", c.account)
	}
	fmt.Printf("%s: %s\n", a.Name, ledger.Balance(a.ID))
	return subcommands.ExitSuccess
}

// summaryCmd displays balances, net worth and period income/expenses.
type summaryCmd struct {
	date   string
	period string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display balances, net worth and period totals" }
func (*summaryCmd) Usage() string {
	return `mbk summary [-d <date>] [-p <period>]

  Displays every account balance, the net worth, and income/expense
  totals over the period containing the given date.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", moneybook.Today().String(), "Date inside the period to summarize.")
	f.StringVar(&c.period, "p", "monthly", "Period to summarize (weekly, monthly, quarterly, yearly).")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := moneybook.ParseDate(c.date)
	if err != nil {
		return fail("Error parsing date: %v", err)
	}
	period, err := moneybook.ParsePeriod(c.period)
	if err != nil {
		return fail("Error: %v", err)
	}
	ledger, err := decodeLedgerFile()
	if err != nil {
		return fail("Error decoding ledger %q: %v", *ledgerFile, err)
	}

	md := renderer.BalancesMarkdown(ledger) + "\n" +
		renderer.SummaryMarkdown(ledger, moneybook.NewRange(on, period))
	printMarkdown(md)
	return subcommands.ExitSuccess
}
