package postgres

import (
	"context"
	"fmt"
)

const ddl = `
-- Registered cards, looked up by trailing digits during assembly
CREATE TABLE IF NOT EXISTS cards (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id VARCHAR(64) NOT NULL,
    last_four VARCHAR(4) NOT NULL,
    label VARCHAR(255) DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(user_id, last_four)
);

-- Transactions extracted from bank notifications
CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL,
    card_id UUID REFERENCES cards(id),
    amount NUMERIC(18,2) NOT NULL CHECK (amount >= 0),
    currency VARCHAR(3) NOT NULL,
    merchant TEXT NOT NULL,
    category VARCHAR(32) NOT NULL,
    direction VARCHAR(6) NOT NULL,
    occurred_at TIMESTAMPTZ NOT NULL,
    bank_name VARCHAR(64),
    card_last_four VARCHAR(4),
    balance NUMERIC(18,2),
    approved BOOLEAN NOT NULL DEFAULT true,
    source_text TEXT NOT NULL,
    source VARCHAR(10) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_cards_user_id ON cards(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_occurred ON transactions(occurred_at);

-- Covering index for the duplicate probe and the insert guard
CREATE INDEX IF NOT EXISTS idx_transactions_dedupe
ON transactions(user_id, amount, merchant, occurred_at);
`

// EnsureSchema creates tables if they don't exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
