package common

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownMerchant is used when a rule matches but captures no merchant text.
// It is a valid low-confidence result, not a failure.
const UnknownMerchant = "Unknown Merchant"

// ErrDuplicate is returned by store Insert implementations that guard the
// duplicate window at the storage layer and suppressed the write.
var ErrDuplicate = errors.New("duplicate transaction")

type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

type Source string

const (
	SourceSMS    Source = "sms"
	SourceEmail  Source = "email"
	SourceManual Source = "manual"
)

// Rejection is a non-error pipeline outcome. Rejections are expected and
// frequent; none of them should be surfaced to the end user as a failure.
type Rejection string

const (
	RejectUnrecognizedBank     Rejection = "unrecognized_bank"
	RejectNoPatternMatch       Rejection = "no_pattern_match"
	RejectDuplicateTransaction Rejection = "duplicate_transaction"
)

// Message is one inbound notification exactly as delivered by the mail/SMS
// transport: raw sender id and decoded plaintext body.
type Message struct {
	Sender string `json:"sender"`
	Body   string `json:"body"`
	UserID string `json:"user_id"`
	Source Source `json:"source"`
}

// Rule is one regex pattern tried against a message body. Rules are listed
// most-specific first; the first rule that matches wins and no further rules
// are attempted. Field values come from named capture groups:
//
//	amt      amount, required (thousands separators allowed)
//	cur      3-letter currency code
//	card     3-4 trailing card/account digits
//	merchant free merchant text
//	status   Approved|Declined
//	bal      available balance
type Rule struct {
	Name      string
	Pattern   *regexp.Regexp
	Direction Direction
	// MerchantLabel is used when the pattern has no merchant group,
	// e.g. "ATM Withdrawal".
	MerchantLabel string
}

// BankProfile is the static configuration for one bank: the tokens that
// identify its sender ids and the ordered rule list for its message formats.
type BankProfile struct {
	Name         string
	SenderTokens []string
	Rules        []Rule
}

// Extraction is the unvalidated field set produced by a matching rule,
// before categorization and persistence.
type Extraction struct {
	Amount       decimal.Decimal
	Currency     string
	Merchant     string
	CardLastFour string
	Direction    Direction
	Approved     bool
	Balance      *decimal.Decimal
}

// Card is one registered card as returned by the card directory.
type Card struct {
	ID             string `json:"id"`
	LastFourDigits string `json:"last_four_digits"`
	Label          string `json:"label,omitempty"`
}

// Transaction is the persisted record assembled from an extraction.
// Amount is always >= 0; Direction carries the sign. Declined transactions
// are stored with Approved=false as informational records.
type Transaction struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	CardID       *string          `json:"card_id"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	Merchant     string           `json:"merchant"`
	Category     string           `json:"category"`
	Direction    Direction        `json:"direction"`
	OccurredAt   time.Time        `json:"occurred_at"`
	BankName     string           `json:"bank_name,omitempty"`
	CardLastFour string           `json:"card_last_four,omitempty"`
	Balance      *decimal.Decimal `json:"balance,omitempty"`
	Approved     bool             `json:"approved"`
	SourceText   string           `json:"source_text"`
	Source       Source           `json:"source"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Apply evaluates the rule against a message body. The second return value is
// false when the pattern does not match or a captured numeric field is
// malformed; a malformed amount is treated as "rule did not match" so the
// caller falls through to the next rule.
func (r Rule) Apply(body string) (Extraction, bool) {
	match := r.Pattern.FindStringSubmatch(body)
	if match == nil {
		return Extraction{}, false
	}

	groups := map[string]string{}
	for i, name := range r.Pattern.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}

	amount, err := ParseAmount(groups["amt"])
	if err != nil {
		return Extraction{}, false
	}

	extraction := Extraction{
		Amount:    amount,
		Direction: r.Direction,
		Approved:  true,
		Merchant:  UnknownMerchant,
	}

	if cur := strings.TrimSpace(groups["cur"]); cur != "" {
		extraction.Currency = strings.ToUpper(cur)
	}
	if merchant := strings.TrimSpace(groups["merchant"]); merchant != "" {
		extraction.Merchant = merchant
	} else if r.MerchantLabel != "" {
		extraction.Merchant = r.MerchantLabel
	}
	if card := groups["card"]; card != "" {
		extraction.CardLastFour = card
	}
	if status := groups["status"]; status != "" {
		extraction.Approved = strings.EqualFold(status, "approved")
	}
	if bal := groups["bal"]; bal != "" {
		// A malformed balance does not invalidate the rule
		if balance, err := ParseAmount(bal); err == nil {
			extraction.Balance = &balance
		}
	}

	return extraction, true
}
