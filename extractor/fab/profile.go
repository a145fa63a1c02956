// Package fab holds the notification formats sent by First Abu Dhabi Bank.
package fab

import (
	"regexp"

	"github.com/haithamq/finsort/extractor/common"
)

func Profile() common.BankProfile {
	return common.BankProfile{
		Name:         "FAB",
		SenderTokens: []string{"first abu dhabi", "fabbank", "fab"},
		Rules: []common.Rule{
			{
				Name:      "card_purchase",
				Direction: common.DirectionDebit,
				Pattern:   regexp.MustCompile(`(?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) was spent on your FAB card ending (?:with )?(?P<card>\d{3,4}) at (?P<merchant>[^.]+)\.(?:\s*Available balance (?:is )?(?:[A-Z]{3})\s?(?P<bal>[\d,]+(?:\.\d{1,2})?))?`),
			},
			{
				Name:      "refund",
				Direction: common.DirectionCredit,
				Pattern:   regexp.MustCompile(`A refund of (?P<cur>[A-Z]{3})\s?(?P<amt>[\d,]+(?:\.\d{1,2})?) from (?P<merchant>[^.]+?) (?:has been|was) credited to your card ending (?P<card>\d{3,4})`),
			},
		},
	}
}
