package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/haithamq/finsort/extractor/common"
)

// UserCards returns the user's registered cards.
func (db *DB) UserCards(ctx context.Context, userID string) ([]common.Card, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, last_four, label FROM cards WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []common.Card
	for rows.Next() {
		var card common.Card
		if err := rows.Scan(&card.ID, &card.LastFourDigits, &card.Label); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// AddCard registers a card for a user. Re-registering the same last four
// digits updates the label instead of failing.
func (db *DB) AddCard(ctx context.Context, userID, lastFour, label string) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO cards (user_id, last_four, label)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, last_four) DO UPDATE SET label = EXCLUDED.label
		RETURNING id
	`, userID, lastFour, label).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to add card: %w", err)
	}
	return id, nil
}

// FindRecent is the read-only duplicate probe: same user, equal amount, exact
// merchant string, occurred_at inside the window.
func (db *DB) FindRecent(ctx context.Context, userID string, amount decimal.Decimal, merchant string, since time.Time) ([]common.Transaction, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, amount, currency, merchant, category, direction,
		       occurred_at, approved, source
		FROM transactions
		WHERE user_id = $1 AND amount = $2 AND merchant = $3 AND occurred_at >= $4
	`, userID, amount, merchant, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []common.Transaction
	for rows.Next() {
		var tx common.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Currency, &tx.Merchant,
			&tx.Category, &tx.Direction, &tx.OccurredAt, &tx.Approved, &tx.Source); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// Insert persists a transaction. The write is guarded by the same duplicate
// key as FindRecent in a single statement, so two concurrent ingestions of the
// same event cannot both insert; a suppressed write returns ErrDuplicate.
func (db *DB) Insert(ctx context.Context, tx *common.Transaction) (string, error) {
	since := tx.OccurredAt.Add(-db.DedupeWindow)

	tag, err := db.Pool.Exec(ctx, `
		INSERT INTO transactions (
			id, user_id, card_id, amount, currency, merchant, category, direction,
			occurred_at, bank_name, card_last_four, balance, approved, source_text,
			source, created_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		WHERE NOT EXISTS (
			SELECT 1 FROM transactions
			WHERE user_id = $2 AND amount = $4 AND merchant = $6 AND occurred_at >= $17
		)
	`, tx.ID, tx.UserID, tx.CardID, tx.Amount, tx.Currency, tx.Merchant, tx.Category,
		tx.Direction, tx.OccurredAt, nullIfEmpty(tx.BankName), nullIfEmpty(tx.CardLastFour),
		tx.Balance, tx.Approved, tx.SourceText, tx.Source, tx.CreatedAt, since)
	if err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", common.ErrDuplicate
	}
	return tx.ID, nil
}

// RecentByUser lists a user's latest transactions, newest first.
func (db *DB) RecentByUser(ctx context.Context, userID string, limit int) ([]common.Transaction, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, amount, currency, merchant, category, direction,
		       occurred_at, approved, source
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (common.Transaction, error) {
		var tx common.Transaction
		err := row.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Currency, &tx.Merchant,
			&tx.Category, &tx.Direction, &tx.OccurredAt, &tx.Approved, &tx.Source)
		return tx, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return transactions, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
