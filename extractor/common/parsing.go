package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ParseAmount parses a captured amount string into a decimal, stripping
// thousands separators. The result is always non-negative; anything that is
// not a plain decimal after comma removal (e.g. "12.34.56") is an error.
func ParseAmount(text string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if !amountRegex.MatchString(clean) {
		return decimal.Zero, fmt.Errorf("not a valid amount: %q", text)
	}
	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// MatchesCard reports whether captured trailing digits identify a registered
// card. Some banks print only the last three digits, so the captured value is
// compared against the suffix of the stored last-four.
func MatchesCard(card Card, capturedDigits string) bool {
	if capturedDigits == "" || card.LastFourDigits == "" {
		return false
	}
	return strings.HasSuffix(card.LastFourDigits, capturedDigits)
}
