package moneybook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// QuoteSource fetches a current price from an HTTP JSON endpoint,
// extracting the value with a jsonpath expression. It adapts arbitrary
// provider payloads to the QuoteFunc contract without a parser per
// provider.
type QuoteSource struct {
	URL      string // endpoint, with the symbol already interpolated
	Path     string // jsonpath to the latest price, e.g. "$.quote.last"
	Currency string
}

// Fetch retrieves and extracts the quote.
func (s QuoteSource) Fetch(client *http.Client) (Quote, error) {
	var jobj any
	if err := jwget(client, s.URL, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error in wget %q: %w", s.URL, err)
	}
	jval, err := jsonpath.Get(s.Path, jobj)
	if err != nil {
		return Quote{}, fmt.Errorf("error extracting %q: %w", s.Path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	price, err := jsonNumber(jval)
	if err != nil {
		return Quote{}, fmt.Errorf("error extracting %q: %w", s.Path, err)
	}
	return Quote{Price: price, Currency: s.Currency}, nil
}

// jsonNumber converts a decoded JSON value into an exact decimal. Some
// providers return prices as strings, sometimes with a decimal comma.
func jsonNumber(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return decimal.Zero, fmt.Errorf("value is an invalid string %q: %w", v, err)
		}
		return decimal.NewFromString(s)
	default:
		return decimal.Zero, fmt.Errorf("value %v is neither a number nor a string", jval)
	}
}

// jwget gets the content at addr and decodes the JSON response into v.
func jwget(client *http.Client, addr string, v any) error {
	if client == nil {
		client = new(http.Client)
	}
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("invalid response status %s", resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
