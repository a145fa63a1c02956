// Package enbd holds the notification formats sent by Emirates NBD.
package enbd

import (
	"regexp"

	"github.com/haithamq/finsort/extractor/common"
)

func Profile() common.BankProfile {
	return common.BankProfile{
		Name:         "Emirates NBD",
		SenderTokens: []string{"emirates nbd", "emiratesnbd", "enbd"},
		Rules: []common.Rule{
			{
				Name:      "card_purchase",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`Purchase of (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) with (?:Debit|Credit) Card ending (?P<card>\d{3,4}) at (?P<merchant>[^.]+)\.(?:\s*Avl Bal (?:[A-Z]{3})\s?(?P<bal>[\d,]+(?:\.\d{1,2})?))?`),
			},
			{
				Name:      "declined_transaction",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`Your transaction of (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) at (?P<merchant>[^.]+?) (?:was|has been) (?P<status>[Dd]eclined)`),
			},
			{
				Name:          "atm_withdrawal",
				Direction:     common.DirectionDebit,
				MerchantLabel: "ATM Withdrawal",
				Pattern:       regexp.MustCompile(`You have withdrawn (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) from ATM using card ending (?P<card>\d{3,4})`),
			},
			{
				Name:          "account_credit",
				Direction:     common.DirectionCredit,
				MerchantLabel: "Account Credit",
				Pattern:       regexp.MustCompile(`(?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) has been credited to your acc(?:oun)?t ending (?P<card>\d{3,4})(?: from (?P<merchant>[^.]+))?`),
			},
		},
	}
}
