package extractor

import (
	"strings"

	"github.com/haithamq/finsort/extractor/adcb"
	"github.com/haithamq/finsort/extractor/adib"
	"github.com/haithamq/finsort/extractor/common"
	"github.com/haithamq/finsort/extractor/enbd"
	"github.com/haithamq/finsort/extractor/fab"
	"github.com/haithamq/finsort/extractor/mashreq"
)

// banks is the canonical bank table, assembled once at process start from the
// per-bank profile packages. Iteration order is fixed.
var banks = []common.BankProfile{
	adib.Profile(),
	enbd.Profile(),
	fab.Profile(),
	adcb.Profile(),
	mashreq.Profile(),
}

// Banks returns the canonical bank table.
func Banks() []common.BankProfile {
	return banks
}

// IdentifyBank maps a raw sender address or SMS sender id to a known bank.
// Returns nil when no bank matches; that is not an error, it just means the
// message is not a recognized bank notification.
func IdentifyBank(sender string) *common.BankProfile {
	normalized := strings.ToLower(sender)
	for i := range banks {
		for _, token := range banks[i].SenderTokens {
			if strings.Contains(normalized, token) {
				return &banks[i]
			}
		}
	}
	return nil
}

// Extract applies the bank's rules in list order against the message body and
// returns the first match. A recognized bank with unparsable content returns
// nil; formats vary and false negatives are tolerated.
func Extract(body string, bank *common.BankProfile) *common.Extraction {
	for _, rule := range bank.Rules {
		if extraction, ok := rule.Apply(body); ok {
			return &extraction
		}
	}
	return nil
}
