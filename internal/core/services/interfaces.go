package services

import (
	"context"

	"sacco-ledger/internal/core/domain"
)

// SnapshotSource computes the figures a snapshot holds. LedgerService implements it.
type SnapshotSource interface {
	CooperativeTotals(ctx context.Context) (domain.CooperativeTotals, error)
	LoanPortfolio(ctx context.Context, filter domain.LoanFilter) (*PortfolioOutput, error)
}

var _ SnapshotSource = (*LedgerService)(nil)
