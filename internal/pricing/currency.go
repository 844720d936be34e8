package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"AUD": "A$",
	"CAD": "CA$",
	"CHF": "CHF ",
	"KZT": "₸",
	"RUB": "₽",
}

// FormatCurrency renders an amount in en-US style with the currency symbol,
// thousands separators and exactly two decimal places, e.g.
// FormatCurrency(1234.5, "USD") == "$1,234.50". Unknown codes fall back to
// "CODE 1,234.50". An empty code means USD.
func FormatCurrency(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := symbol + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// ParseCurrency extracts a numeric amount from a formatted currency string.
// All characters other than digits, periods and minus signs are stripped
// before parsing; any failure yields 0.
func ParseCurrency(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
