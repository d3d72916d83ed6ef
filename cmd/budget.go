package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/moneybook"
	"github.com/etnz/moneybook/renderer"
	"github.com/google/subcommands"
)

// budgetCmd reviews spending against envelope allocations.
type budgetCmd struct {
	period    string
	start     string
	envelopes envelopeList
}

// envelopeList parses repeated -e "Category=Amount" flags.
type envelopeList []struct{ name, amount string }

func (l *envelopeList) String() string { return "" }
func (l *envelopeList) Set(s string) error {
	name, amount, _ := strings.Cut(s, "=")
	*l = append(*l, struct{ name, amount string }{name, amount})
	return nil
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "review spending against envelope allocations" }
func (*budgetCmd) Usage() string {
	return `mbk budget [-p <period>] [-start <date>] -e "Category=Amount" [-e ...]

  Builds a budget over the given period with one envelope per -e flag
  and reviews the category spending recorded in the ledger against it.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", string(moneybook.MonthlyBudget), "Budget period (weekly, monthly).")
	f.StringVar(&c.start, "start", moneybook.Today().StartOf(moneybook.Monthly).String(), "Start date of the budget period.")
	f.Var(&c.envelopes, "e", "Envelope as \"CategoryAccount=Amount\"; repeatable.")
}

func (c *budgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := moneybook.ParseDate(c.start)
	if err != nil {
		return fail("Error parsing start date: %v", err)
	}
	ledger, err := decodeLedgerFile()
	if err != nil {
		return fail("Error decoding ledger %q: %v", *ledgerFile, err)
	}

	budget := &moneybook.Budget{
		ID:     moneybook.NewID(),
		Name:   c.period,
		Period: moneybook.BudgetPeriod(c.period),
		Start:  start,
	}
	for _, e := range c.envelopes {
		a := ledger.AccountByName(e.name)
		if a == nil {
			return fail("Error: unknown account %q", e.name)
		}
		amount, err := moneybook.ParseMoney(e.amount, a.Currency)
		if err != nil {
			return fail("Error parsing envelope amount %q: %v", e.amount, err)
		}
		budget.Envelopes = append(budget.Envelopes, &moneybook.Envelope{
			ID:        moneybook.NewID(),
			AccountID: a.ID,
			Budgeted:  amount,
		})
	}

	printMarkdown(renderer.BudgetMarkdown(ledger, budget))
	return subcommands.ExitSuccess
}
