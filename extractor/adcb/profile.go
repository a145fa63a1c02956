// Package adcb holds the notification formats sent by Abu Dhabi Commercial Bank.
package adcb

import (
	"regexp"

	"github.com/haithamq/finsort/extractor/common"
)

func Profile() common.BankProfile {
	return common.BankProfile{
		Name:         "ADCB",
		SenderTokens: []string{"abu dhabi commercial", "adcb"},
		Rules: []common.Rule{
			{
				Name:      "card_usage",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`Your ADCB (?:Credit|Debit) Card (?:X+|\*+)?(?P<card>\d{3,4}) was used for (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) at (?P<merchant>.+?) on \d{2}/\d{2}/\d{4}(?:\. Available (?:limit|balance) (?:[A-Z]{3})\s?(?P<bal>[\d,]+(?:\.\d{1,2})?))?`),
			},
			{
				Name:          "account_credit",
				Direction:     common.DirectionCredit,
				MerchantLabel: "Account Credit",
				Pattern:       regexp.MustCompile(`(?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) (?:has been )?credited to your ADCB account (?:X+|\*+)?(?P<card>\d{3,4})(?: from (?P<merchant>[^.]+))?`),
			},
		},
	}
}
