// Package cmd implements the CLI application to manage a moneybook ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/moneybook"
	"github.com/google/subcommands"
)

// Commands lists every subcommand for registration by the main package.
var Commands = []subcommands.Command{
	&accountsCmd{},
	&txCmd{},
	&balanceCmd{},
	&summaryCmd{},
	&loanCmd{},
	&earlyRepayCmd{},
	&rateScenariosCmd{},
	&scheduleCmd{},
	&budgetCmd{},
	&exportCmd{},
	&importCmd{},
	&quoteCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "moneybook.jsonl", "Path to the ledger file (JSONL backup format)")

// decodeLedgerFile loads the app ledger file, returning an empty ledger
// if the file does not exist yet.
func decodeLedgerFile() (*moneybook.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return moneybook.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return moneybook.DecodeBackup(f)
}

// encodeLedgerFile writes the whole ledger back to the app ledger file.
func encodeLedgerFile(l *moneybook.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return moneybook.EncodeBackup(f, l)
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure exit status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
