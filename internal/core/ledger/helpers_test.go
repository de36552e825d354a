package ledger_test

import (
	"time"

	"sacco-ledger/internal/core/domain"
)

var t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func tx(id string, typ domain.TransactionType, amount, before, after float64, at time.Time) domain.Transaction {
	return domain.Transaction{
		ID:            id,
		Type:          typ,
		Amount:        amount,
		Status:        domain.StatusCompleted,
		BalanceBefore: before,
		BalanceAfter:  after,
		CreatedAt:     at,
		UserID:        "u1",
	}
}
