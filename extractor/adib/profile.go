// Package adib holds the notification formats sent by Abu Dhabi Islamic Bank.
package adib

import (
	"regexp"

	"github.com/haithamq/finsort/extractor/common"
)

// Profile returns the ADIB bank profile. ADIB purchase alerts print the card
// ending with three digits ("*298") and carry the available balance inline.
// Rules are ordered most-specific first; the generic fallback must stay last.
func Profile() common.BankProfile {
	return common.BankProfile{
		Name:         "ADIB",
		SenderTokens: []string{"adib"},
		Rules: []common.Rule{
			{
				Name:      "card_purchase",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`Trx\. of (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) on your card ending \*?(?P<card>\d{3,4}) at (?P<merchant>.+?)(?:,\s*(?:UAE|U\.A\.E\.?))? is (?P<status>Approved|Declined)(?:\. Avl\. card bal is (?P<bal>[\d,]+(?:\.\d{1,2})?))?`),
			},
			{
				Name:          "atm_withdrawal",
				Direction:     common.DirectionDebit,
				MerchantLabel: "ATM Withdrawal",
				Pattern:       regexp.MustCompile(`Cash withdrawal of (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) from your (?:card|account) ending \*?(?P<card>\d{3,4})(?:.*?Avl\. bal is (?P<bal>[\d,]+(?:\.\d{1,2})?))?`),
			},
			{
				Name:          "account_credit",
				Direction:     common.DirectionCredit,
				MerchantLabel: "Account Credit",
				Pattern:       regexp.MustCompile(`(?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) has been credited to your (?:account|card) ending \*?(?P<card>\d{3,4})(?: from (?P<merchant>[^.]+))?`),
			},
			{
				Name:      "generic_purchase",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`(?P<cur>AED|USD|EUR|GBP|SAR)\s?(?P<amt>[\d,]+(?:\.\d{1,2})?).*?\bat (?P<merchant>[A-Z][A-Z0-9 .&'-]+)`),
			},
		},
	}
}
