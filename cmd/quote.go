package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/moneybook"
	"github.com/etnz/moneybook/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// quoteCmd fetches a market quote and optionally values a position with it.
type quoteCmd struct {
	url      string
	path     string
	currency string
	cost     float64
	units    float64
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch a market quote from a JSON endpoint" }
func (*quoteCmd) Usage() string {
	return `mbk quote -url <url> -path <jsonpath> [-c <currency>] [-cost <amount> -units <n>]

  Fetches the endpoint, extracts the price with the JSONPath expression,
  and prints it. With -cost and -units it also values the position.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "JSON endpoint to query.")
	f.StringVar(&c.path, "path", "", "JSONPath expression extracting the price.")
	f.StringVar(&c.currency, "c", "EUR", "Quote currency.")
	f.Float64Var(&c.cost, "cost", 0, "Position cost basis.")
	f.Float64Var(&c.units, "units", 0, "Position units held.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.url == "" || c.path == "" {
		return fail("Both -url and -path are required.")
	}
	src := moneybook.QuoteSource{URL: c.url, Path: c.path, Currency: c.currency}
	client := &http.Client{Timeout: 30 * time.Second}
	quote, err := src.Fetch(client)
	if err != nil {
		return fail("Error fetching quote: %v", err)
	}

	if c.units == 0 {
		printMarkdown(fmt.Sprintf("Quote: **%s %s**\n", quote.Price, quote.Currency))
		return subcommands.ExitSuccess
	}
	cost := moneybook.M(c.cost, c.currency)
	units := decimal.NewFromFloat(c.units)
	pos := moneybook.ValuePosition(cost, units, &quote)
	printMarkdown(renderer.PositionMarkdown(cost, c.units, pos))
	return subcommands.ExitSuccess
}
