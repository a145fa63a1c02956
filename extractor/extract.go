// Package extractor turns raw bank notification text into structured
// transaction records: bank identification, field extraction, merchant
// categorization, duplicate suppression and persistence.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haithamq/finsort/extractor/category"
	"github.com/haithamq/finsort/extractor/common"
)

// CardDirectory looks up a user's registered cards for best-effort card
// resolution by trailing digits.
type CardDirectory interface {
	UserCards(ctx context.Context, userID string) ([]common.Card, error)
}

// TransactionStore is the persistence contract of the pipeline. FindRecent is
// the read-only duplicate probe; Insert is the only write in the pipeline and
// may return common.ErrDuplicate when the store suppressed the row itself.
type TransactionStore interface {
	FindRecent(ctx context.Context, userID string, amount decimal.Decimal, merchant string, since time.Time) ([]common.Transaction, error)
	Insert(ctx context.Context, tx *common.Transaction) (string, error)
}

// Store combines the capabilities the pipeline needs from storage.
type Store interface {
	CardDirectory
	TransactionStore
}

// Config holds the pipeline tunables.
type Config struct {
	// DuplicateWindow is how far back the duplicate probe looks for an
	// equivalent record. The same bank event often arrives via both SMS and
	// email within seconds; a tight window separates a resend from a
	// legitimately repeated purchase. Heuristic, not a correctness guarantee.
	DuplicateWindow time.Duration
	// DefaultCurrency is assumed when a bank's rules capture no currency.
	DefaultCurrency string
	Categories      []category.Rule
	Now             func() time.Time
}

func DefaultConfig() Config {
	return Config{
		DuplicateWindow: 60 * time.Second,
		DefaultCurrency: "AED",
		Categories:      category.DefaultRules(),
		Now:             time.Now,
	}
}

// Outcome is the result of processing one message: a persisted transaction or
// a typed rejection. Rejections are expected and benign; only a persistence
// failure is reported as an error.
type Outcome struct {
	Transaction *common.Transaction `json:"transaction,omitempty"`
	Rejection   common.Rejection    `json:"rejection,omitempty"`
	Bank        string              `json:"bank,omitempty"`
}

type Pipeline struct {
	cfg        Config
	store      Store
	classifier *category.Classifier
}

func New(cfg Config, store Store) *Pipeline {
	if cfg.DuplicateWindow <= 0 {
		cfg.DuplicateWindow = 60 * time.Second
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "AED"
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = category.DefaultRules()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Pipeline{
		cfg:        cfg,
		store:      store,
		classifier: category.NewClassifier(cfg.Categories),
	}
}

// Process runs one message through the pipeline. Each invocation is
// independent; no state is shared between messages other than the store.
func (p *Pipeline) Process(ctx context.Context, msg common.Message) (Outcome, error) {
	bank := IdentifyBank(msg.Sender)
	if bank == nil {
		log.Printf("unrecognized sender %q, dropping message", msg.Sender)
		return Outcome{Rejection: common.RejectUnrecognizedBank}, nil
	}

	raw := Extract(msg.Body, bank)
	if raw == nil {
		log.Printf("no %s rule matched, dropping message", bank.Name)
		return Outcome{Rejection: common.RejectNoPatternMatch, Bank: bank.Name}, nil
	}
	if raw.Currency == "" {
		raw.Currency = p.cfg.DefaultCurrency
	}

	now := p.cfg.Now()

	duplicate, err := p.isDuplicate(ctx, msg.UserID, *raw, now)
	if err != nil {
		return Outcome{Bank: bank.Name}, fmt.Errorf("duplicate check: %w", err)
	}
	if duplicate {
		log.Printf("duplicate of %s/%s within window, dropping message", raw.Merchant, raw.Amount)
		return Outcome{Rejection: common.RejectDuplicateTransaction, Bank: bank.Name}, nil
	}

	tx := p.assemble(ctx, msg, bank, *raw, now)

	id, err := p.store.Insert(ctx, tx)
	if errors.Is(err, common.ErrDuplicate) {
		// The store's insert guard caught a concurrent twin after our probe
		return Outcome{Rejection: common.RejectDuplicateTransaction, Bank: bank.Name}, nil
	}
	if err != nil {
		// The only failure surfaced to the caller; not retried here
		return Outcome{Bank: bank.Name}, fmt.Errorf("insert transaction: %w", err)
	}
	tx.ID = id

	return Outcome{Transaction: tx, Bank: bank.Name}, nil
}

// isDuplicate is a read-only probe for an equivalent record: same user, same
// amount, exact merchant string, inside the window.
func (p *Pipeline) isDuplicate(ctx context.Context, userID string, raw common.Extraction, now time.Time) (bool, error) {
	since := now.Add(-p.cfg.DuplicateWindow)
	existing, err := p.store.FindRecent(ctx, userID, raw.Amount, raw.Merchant, since)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

// assemble builds the canonical transaction record: category from the
// merchant text and a best-effort card match by trailing digits against the
// user's registered cards.
func (p *Pipeline) assemble(ctx context.Context, msg common.Message, bank *common.BankProfile, raw common.Extraction, now time.Time) *common.Transaction {
	tx := &common.Transaction{
		ID:           uuid.NewString(),
		UserID:       msg.UserID,
		Amount:       raw.Amount,
		Currency:     raw.Currency,
		Merchant:     raw.Merchant,
		Category:     string(p.classifier.Categorize(raw.Merchant)),
		Direction:    raw.Direction,
		OccurredAt:   now,
		BankName:     bank.Name,
		CardLastFour: raw.CardLastFour,
		Balance:      raw.Balance,
		Approved:     raw.Approved,
		SourceText:   msg.Body,
		Source:       msg.Source,
		CreatedAt:    now,
	}

	if raw.CardLastFour != "" {
		cards, err := p.store.UserCards(ctx, msg.UserID)
		if err != nil {
			log.Printf("card lookup failed for %s: %v", msg.UserID, err)
		}
		for _, card := range cards {
			if common.MatchesCard(card, raw.CardLastFour) {
				id := card.ID
				tx.CardID = &id
				break
			}
		}
	}

	return tx
}
