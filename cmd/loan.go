package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneybook"
	"github.com/etnz/moneybook/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// loanFlags holds the parameters shared by the loan subcommands.
type loanFlags struct {
	name      string
	principal string
	rate      string
	payments  int
	made      int
	frequency string
	amort     string
	start     string
	currency  string
}

func (c *loanFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "loan", "Loan name, for display.")
	f.StringVar(&c.principal, "principal", "", "Principal amount, as a decimal like 120000.")
	f.StringVar(&c.rate, "rate", "0", "Annual interest rate in percent, like 3.5.")
	f.IntVar(&c.payments, "payments", 0, "Total number of payments.")
	f.IntVar(&c.made, "made", 0, "Payments already made, for loans tracked mid-life.")
	f.StringVar(&c.frequency, "freq", string(moneybook.MonthlyPayments), "Payment frequency (monthly, quarterly, semiannual, annual).")
	f.StringVar(&c.amort, "type", string(moneybook.French), "Amortization type (french, italian, german, american).")
	f.StringVar(&c.start, "start", moneybook.Today().String(), "Start date of the loan.")
	f.StringVar(&c.currency, "c", "EUR", "Currency code.")
}

// loan builds the Loan value from the flags.
func (c *loanFlags) loan() (*moneybook.Loan, error) {
	principal, err := decimal.NewFromString(c.principal)
	if err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return nil, err
	}
	amort, err := moneybook.ParseAmortizationType(c.amort)
	if err != nil {
		return nil, err
	}
	start, err := moneybook.ParseDate(c.start)
	if err != nil {
		return nil, err
	}
	return &moneybook.Loan{
		ID:            moneybook.NewID(),
		Name:          c.name,
		RateType:      moneybook.FixedRate,
		Frequency:     moneybook.PaymentFrequency(c.frequency),
		Amortization:  amort,
		Principal:     principal,
		AnnualRate:    rate,
		TotalPayments: c.payments,
		Start:         start,
		Existing:      c.made > 0,
		PaymentsMade:  c.made,
		Currency:      c.currency,
	}, nil
}

// loanCmd displays a loan's full amortization schedule.
type loanCmd struct {
	loanFlags
	remaining bool
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "display a loan amortization schedule" }
func (*loanCmd) Usage() string {
	return `mbk loan -principal <amount> -rate <pct> -payments <n> [-type <amortization>] [-made <k> -remaining]

  Computes the per-period payment and the full amortization table for
  the chosen amortization policy. With -remaining, only the rows still
  due after the -made payments are shown.
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.BoolVar(&c.remaining, "remaining", false, "Show only the rows still due, replaying -made payments.")
}

func (c *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loan, err := c.loan()
	if err != nil {
		return fail("Error: %v", err)
	}
	rows := loan.Schedule()
	if c.remaining {
		rows = loan.ScheduleRemaining()
	}
	printMarkdown(renderer.ScheduleMarkdown(loan.Name, rows))
	return subcommands.ExitSuccess
}

// earlyRepayCmd simulates a lump extra payment.
type earlyRepayCmd struct {
	loanFlags
	extra   string
	penalty string
}

func (*earlyRepayCmd) Name() string     { return "early-repay" }
func (*earlyRepayCmd) Synopsis() string { return "simulate an early lump repayment" }
func (*earlyRepayCmd) Usage() string {
	return `mbk early-repay -principal <amount> -rate <pct> -payments <n> -made <k> -extra <amount> [-penalty <pct>]

  Compares the interest left to pay with and without a lump extra
  payment against the current remaining balance, keeping the original
  payment amount and finishing early.
`
}

func (c *earlyRepayCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.StringVar(&c.extra, "extra", "", "Extra lump payment amount.")
	f.StringVar(&c.penalty, "penalty", "0", "Early repayment penalty in percent of the extra amount.")
}

func (c *earlyRepayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loan, err := c.loan()
	if err != nil {
		return fail("Error: %v", err)
	}
	extra, err := decimal.NewFromString(c.extra)
	if err != nil {
		return fail("Error parsing extra amount: %v", err)
	}
	penalty, err := decimal.NewFromString(c.penalty)
	if err != nil {
		return fail("Error parsing penalty: %v", err)
	}
	res := moneybook.SimulateEarlyRepayment(loan, extra, penalty)
	printMarkdown(renderer.EarlyRepaymentMarkdown(loan.Name, res, loan.Currency))
	return subcommands.ExitSuccess
}

// rateScenariosCmd recomputes the loan under a ladder of rate deltas.
type rateScenariosCmd struct{ loanFlags }

func (*rateScenariosCmd) Name() string     { return "rate-scenarios" }
func (*rateScenariosCmd) Synopsis() string { return "simulate the loan under rate shifts" }
func (*rateScenariosCmd) Usage() string {
	return `mbk rate-scenarios -principal <amount> -rate <pct> -payments <n>

  Recomputes payment and total interest for rate deltas from -1 to +2
  percentage points, flooring the rate at zero.
`
}

func (c *rateScenariosCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *rateScenariosCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loan, err := c.loan()
	if err != nil {
		return fail("Error: %v", err)
	}
	printMarkdown(renderer.ScenariosMarkdown(loan.Name, moneybook.SimulateRateScenarios(loan), loan.Currency))
	return subcommands.ExitSuccess
}
