package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fraction digits a stored amount keeps.
const AmountPlaces = 2

// CheckAmountScale rejects amounts with more fraction digits than the
// ledger stores. Trailing zeros are allowed ("1.500").
func CheckAmountScale(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(AmountPlaces)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", ErrValidation, d.String(), AmountPlaces)
	}
	return nil
}

// ParseAmount parses a decimal amount such as "12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	if err := CheckAmountScale(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// FormatAmount renders the magnitude of d with thousands separators and at
// most two fraction digits, e.g. 1234.5 -> "1,234.5".
func FormatAmount(d decimal.Decimal) string {
	s := d.Abs().Round(2).String()

	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// SignedAmount renders a ledger amount as seen by one party: "-" for a
// debit, "+" otherwise, followed by the magnitude and currency code.
func SignedAmount(d decimal.Decimal, debit bool) string {
	sign := "+"
	if debit {
		sign = "-"
	}
	return sign + FormatAmount(d) + " " + CurrencyCode
}
