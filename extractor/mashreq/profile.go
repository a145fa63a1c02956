// Package mashreq holds the notification formats sent by Mashreq Bank.
package mashreq

import (
	"regexp"

	"github.com/haithamq/finsort/extractor/common"
)

func Profile() common.BankProfile {
	return common.BankProfile{
		Name:         "Mashreq",
		SenderTokens: []string{"mashreq"},
		Rules: []common.Rule{
			{
				Name:      "card_purchase",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`Thank you for using your Mashreq card ending (?P<card>\d{3,4}) for (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) at (?P<merchant>.+?) on \d{2}[-/]\d{2}[-/]\d{2,4}`),
			},
			{
				Name:      "declined_transaction",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`Your Mashreq card transaction (?:of|for) (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) at (?P<merchant>[^.]+?) was (?P<status>[Dd]eclined)`),
			},
			{
				Name:          "account_credit",
				Direction:     common.DirectionCredit,
				MerchantLabel: "Account Credit",
				Pattern:       regexp.MustCompile(`(?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) has been received in your Mashreq account(?: ending (?P<card>\d{3,4}))?(?: from (?P<merchant>[^.]+))?`),
			},
		},
	}
}
