package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneybook"
	"github.com/google/subcommands"
)

// exportCmd writes the ledger as a backup snapshot.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as a backup snapshot" }
func (*exportCmd) Usage() string {
	return `mbk export [-o <file>]

  Writes the whole entity graph in the versioned backup format, with
  amounts as exact decimal strings. Defaults to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedgerFile()
	if err != nil {
		return fail("Error decoding ledger %q: %v", *ledgerFile, err)
	}

	out := os.Stdout
	if c.output != "" {
		out, err = os.Create(c.output)
		if err != nil {
			return fail("Error creating %q: %v", c.output, err)
		}
		defer out.Close()
	}
	if err := moneybook.EncodeBackup(out, ledger); err != nil {
		return fail("Error exporting: %v", err)
	}
	return subcommands.ExitSuccess
}

// importCmd restores the ledger from a backup snapshot.
type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restore the ledger from a backup snapshot" }
func (*importCmd) Usage() string {
	return `mbk import -i <file>

  Reads a backup snapshot and replaces the ledger file with it. Balances
  recomputed from the imported graph are identical to the exported ones.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Backup file to import.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := os.Open(c.input)
	if err != nil {
		return fail("Error opening %q: %v", c.input, err)
	}
	defer in.Close()

	ledger, err := moneybook.DecodeBackup(in)
	if err != nil {
		return fail("Error importing: %v", err)
	}
	for tx := range ledger.Transactions() {
		if !tx.Recurring && !tx.IsBalanced() {
			fmt.Fprintf(os.Stderr, "warning: transaction %q on %s is unbalanced\n", tx.ID, tx.Date)
		}
	}
	if err := encodeLedgerFile(ledger); err != nil {
		return fail("Error writing ledger %q: %v", *ledgerFile, err)
	}
	fmt.Printf("Successfully imported %q into %s\n", c.input, *ledgerFile)
	return subcommands.ExitSuccess
}
