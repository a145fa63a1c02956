package extractor_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/haithamq/finsort/extractor"
	"github.com/haithamq/finsort/extractor/common"
	"github.com/haithamq/finsort/integrations/memory"
)

const adibBody = "Trx. of AED35.40 on your card ending *298 at SMILES FOOD, UAE is Approved. Avl. card bal is 9934.17"

func newPipeline(store extractor.Store, now time.Time) *extractor.Pipeline {
	cfg := extractor.DefaultConfig()
	cfg.Now = func() time.Time { return now }
	return extractor.New(cfg, store)
}

func TestProcess_ADIBPurchase(t *testing.T) {
	store := memory.New()
	store.AddCard("user-1", common.Card{ID: "card-1", LastFourDigits: "0298"})
	pipeline := newPipeline(store, time.Now())

	outcome, err := pipeline.Process(context.Background(), common.Message{
		Sender: "ADIB",
		Body:   adibBody,
		UserID: "user-1",
		Source: common.SourceSMS,
	})

	assert.NoError(t, err)
	assert.Empty(t, outcome.Rejection)
	if assert.NotNil(t, outcome.Transaction) {
		tx := outcome.Transaction
		assert.Equal(t, "ADIB", tx.BankName)
		assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(35.40)))
		assert.Equal(t, "AED", tx.Currency)
		assert.Equal(t, "SMILES FOOD", tx.Merchant)
		assert.Equal(t, "Dining", tx.Category)
		assert.Equal(t, "298", tx.CardLastFour)
		assert.True(t, tx.Approved)
		assert.Equal(t, common.DirectionDebit, tx.Direction)
		if assert.NotNil(t, tx.Balance) {
			assert.True(t, tx.Balance.Equal(decimal.NewFromFloat(9934.17)))
		}
		if assert.NotNil(t, tx.CardID) {
			assert.Equal(t, "card-1", *tx.CardID)
		}
		assert.Equal(t, adibBody, tx.SourceText)
	}
	assert.Len(t, store.Transactions(), 1)
}

func TestProcess_DuplicateWithinWindow(t *testing.T) {
	store := memory.New()
	now := time.Now()
	pipeline := newPipeline(store, now)

	msg := common.Message{Sender: "ADIB", Body: adibBody, UserID: "user-1", Source: common.SourceSMS}

	first, err := pipeline.Process(context.Background(), msg)
	assert.NoError(t, err)
	assert.NotNil(t, first.Transaction)

	// Same event again, 10 seconds later
	later := newPipeline(store, now.Add(10*time.Second))
	second, err := later.Process(context.Background(), msg)
	assert.NoError(t, err)
	assert.Nil(t, second.Transaction)
	assert.Equal(t, common.RejectDuplicateTransaction, second.Rejection)

	assert.Len(t, store.Transactions(), 1)
}

func TestProcess_SameEventOutsideWindow(t *testing.T) {
	store := memory.New()
	now := time.Now()
	msg := common.Message{Sender: "ADIB", Body: adibBody, UserID: "user-1", Source: common.SourceSMS}

	_, err := newPipeline(store, now).Process(context.Background(), msg)
	assert.NoError(t, err)

	outcome, err := newPipeline(store, now.Add(2*time.Minute)).Process(context.Background(), msg)
	assert.NoError(t, err)
	assert.NotNil(t, outcome.Transaction)
	assert.Len(t, store.Transactions(), 2)
}

func TestProcess_UnrecognizedBank(t *testing.T) {
	store := memory.New()
	pipeline := newPipeline(store, time.Now())

	outcome, err := pipeline.Process(context.Background(), common.Message{
		Sender: "unknownbank@example.com",
		Body:   adibBody,
		UserID: "user-1",
		Source: common.SourceEmail,
	})

	assert.NoError(t, err)
	assert.Equal(t, common.RejectUnrecognizedBank, outcome.Rejection)
	assert.Nil(t, outcome.Transaction)
	assert.Empty(t, store.Transactions())
}

func TestProcess_NoPatternMatch(t *testing.T) {
	store := memory.New()
	pipeline := newPipeline(store, time.Now())

	outcome, err := pipeline.Process(context.Background(), common.Message{
		Sender: "ADIB",
		Body:   "Dear customer, our branches will be closed during the holiday.",
		UserID: "user-1",
		Source: common.SourceSMS,
	})

	assert.NoError(t, err)
	assert.Equal(t, common.RejectNoPatternMatch, outcome.Rejection)
	assert.Equal(t, "ADIB", outcome.Bank)
	assert.Empty(t, store.Transactions())
}

func TestProcess_DeclinedIsPersisted(t *testing.T) {
	store := memory.New()
	pipeline := newPipeline(store, time.Now())

	outcome, err := pipeline.Process(context.Background(), common.Message{
		Sender: "ADIB",
		Body:   "Trx. of AED1,250.00 on your card ending *298 at LUXURY WATCHES LLC, UAE is Declined.",
		UserID: "user-1",
		Source: common.SourceSMS,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, outcome.Transaction) {
		assert.False(t, outcome.Transaction.Approved)
		assert.True(t, outcome.Transaction.Amount.Equal(decimal.NewFromInt(1250)))
	}
	assert.Len(t, store.Transactions(), 1)
}

func TestProcess_NoCardMatchLeavesCardIDNil(t *testing.T) {
	store := memory.New()
	store.AddCard("user-1", common.Card{ID: "card-1", LastFourDigits: "9999"})
	pipeline := newPipeline(store, time.Now())

	outcome, err := pipeline.Process(context.Background(), common.Message{
		Sender: "ADIB", Body: adibBody, UserID: "user-1", Source: common.SourceSMS,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, outcome.Transaction) {
		assert.Nil(t, outcome.Transaction.CardID)
		assert.Equal(t, "298", outcome.Transaction.CardLastFour)
	}
}

type failingStore struct {
	*memory.Store
}

func (f *failingStore) Insert(_ context.Context, _ *common.Transaction) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestProcess_PersistenceFailurePropagates(t *testing.T) {
	store := &failingStore{Store: memory.New()}
	pipeline := newPipeline(store, time.Now())

	outcome, err := pipeline.Process(context.Background(), common.Message{
		Sender: "ADIB", Body: adibBody, UserID: "user-1", Source: common.SourceSMS,
	})

	assert.Error(t, err)
	assert.Nil(t, outcome.Transaction)
}

func TestProcess_InsertGuardMapsToDuplicate(t *testing.T) {
	store := memory.New()
	now := time.Now()
	msg := common.Message{Sender: "ADIB", Body: adibBody, UserID: "user-1", Source: common.SourceSMS}

	_, err := newPipeline(store, now).Process(context.Background(), msg)
	assert.NoError(t, err)

	// Insert directly to simulate the store-level guard catching a twin that
	// raced past the read probe.
	_, err = store.Insert(context.Background(), &common.Transaction{
		UserID: "user-1", Amount: decimal.NewFromFloat(35.40), Merchant: "SMILES FOOD", OccurredAt: now.Add(5 * time.Second),
	})
	assert.ErrorIs(t, err, common.ErrDuplicate)
}

func TestIdentifyBank(t *testing.T) {
	cases := []struct {
		sender   string
		expected string
	}{
		{"ADIB", "ADIB"},
		{"alerts@adib.ae", "ADIB"},
		{"EmiratesNBD", "Emirates NBD"},
		{"noreply@emiratesnbd.com", "Emirates NBD"},
		{"FAB", "FAB"},
		{"ADCB-Alert", "ADCB"},
		{"Mashreq", "Mashreq"},
	}
	for _, tc := range cases {
		bank := extractor.IdentifyBank(tc.sender)
		if bank == nil {
			t.Errorf("IdentifyBank(%q) = nil, expected %s", tc.sender, tc.expected)
			continue
		}
		if bank.Name != tc.expected {
			t.Errorf("IdentifyBank(%q) = %s, expected %s", tc.sender, bank.Name, tc.expected)
		}
	}

	if bank := extractor.IdentifyBank("random@unrelated.com"); bank != nil {
		t.Errorf("Expected nil for unknown sender, got %s", bank.Name)
	}
}

func TestExtract_MalformedAmountFallsThrough(t *testing.T) {
	// A synthetic profile whose first rule captures a malformed amount; the
	// extractor must treat it as a miss and use the next rule.
	profile := &common.BankProfile{
		Name: "TEST",
		Rules: []common.Rule{
			{
				Name:      "sloppy",
				Direction: common.DirectionDebit,
				Pattern:   mustRule(`paid (?P<amt>[\d.,]+) dirhams`),
			},
			{
				Name:      "fallback",
				Direction: common.DirectionDebit,
				Pattern:   mustRule(`ref (?P<amt>[\d,]+\.\d{2})$`),
			},
		},
	}

	x := extractor.Extract("paid 12.34.56 dirhams ref 12.34", profile)
	if x == nil {
		t.Fatal("Expected fallback rule to match")
	}
	if x.Amount.String() != "12.34" {
		t.Errorf("Expected fallback amount 12.34, got %s", x.Amount.String())
	}

	if got := extractor.Extract("paid 12.34.56 dirhams", profile); got != nil {
		t.Errorf("Expected nil when only the malformed rule matches, got %+v", got)
	}
}

func mustRule(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}
