// Package memory provides an in-memory store used by tests and by offline
// parsing where no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haithamq/finsort/extractor/common"
)

// Store keeps cards and transactions in process memory. The mutex makes the
// duplicate guard inside Insert atomic with respect to concurrent ingestions.
type Store struct {
	mu           sync.Mutex
	window       time.Duration
	cards        map[string][]common.Card
	transactions []common.Transaction
}

func New() *Store {
	return &Store{
		window: 60 * time.Second,
		cards:  map[string][]common.Card{},
	}
}

// NewWithWindow overrides the insert guard's duplicate window.
func NewWithWindow(window time.Duration) *Store {
	s := New()
	s.window = window
	return s
}

// AddCard registers a card for a user. Missing ids are generated.
func (s *Store) AddCard(userID string, card common.Card) common.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	s.cards[userID] = append(s.cards[userID], card)
	return card
}

func (s *Store) UserCards(_ context.Context, userID string) ([]common.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := make([]common.Card, len(s.cards[userID]))
	copy(cards, s.cards[userID])
	return cards, nil
}

func (s *Store) FindRecent(_ context.Context, userID string, amount decimal.Decimal, merchant string, since time.Time) ([]common.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findRecentLocked(userID, amount, merchant, since), nil
}

func (s *Store) findRecentLocked(userID string, amount decimal.Decimal, merchant string, since time.Time) []common.Transaction {
	var matches []common.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID && tx.Amount.Equal(amount) && tx.Merchant == merchant && !tx.OccurredAt.Before(since) {
			matches = append(matches, tx)
		}
	}
	return matches
}

// Insert stores the transaction. The duplicate window is re-checked under the
// lock so two concurrent ingestions of the same event cannot both insert.
func (s *Store) Insert(_ context.Context, tx *common.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	since := tx.OccurredAt.Add(-s.window)
	if len(s.findRecentLocked(tx.UserID, tx.Amount, tx.Merchant, since)) > 0 {
		return "", common.ErrDuplicate
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.transactions = append(s.transactions, *tx)
	return tx.ID, nil
}

// Transactions returns a copy of everything stored, for tests and output.
func (s *Store) Transactions() []common.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}
