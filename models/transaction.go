package models

import (
	"time"
)

// TransactionType tags the category of a ledger mutation
type TransactionType string

const (
	TransactionTypeInitial      TransactionType = "initial"
	TransactionTypeAttendance   TransactionType = "attendance"
	TransactionTypeGiftSent     TransactionType = "gift_sent"
	TransactionTypeGiftReceived TransactionType = "gift_received"
	TransactionTypeCashToXP     TransactionType = "cash_to_xp"
	TransactionTypeXPToCash     TransactionType = "xp_to_cash"
	TransactionTypeEnhanceCost  TransactionType = "enhance_cost"
	TransactionTypeAdminAdjust  TransactionType = "admin_adjust"
)

// Transaction is an append-only audit row for a ledger mutation.
// Rows are never updated or deleted; they are purely observational.
type Transaction struct {
	ID           int64           `db:"id"`
	Reference    string          `db:"reference"`
	UserID       int64           `db:"user_id"`
	Type         TransactionType `db:"type"`
	Amount       int64           `db:"amount"`
	BalanceAfter int64           `db:"balance_after"`
	Description  string          `db:"description"`
	CreatedAt    time.Time       `db:"created_at"`
}
