package repositories

import (
	"context"

	"sacco-ledger/internal/adapters/persistence/models"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -source=interfaces.go

// The ledger tables are READ-ONLY from this service.
// All writes go through the remote stored procedures.

// TransactionRepository defines transaction repository interface
type TransactionRepository interface {
	// List returns the transactions of userID, or of every member when userID is empty
	List(ctx context.Context, userID string) ([]*models.Transaction, error)
}

// AccountRepository defines account repository interface
type AccountRepository interface {
	List(ctx context.Context) ([]*models.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Account, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	List(ctx context.Context) ([]*models.Loan, error)
}

// ProfileRepository defines member profile repository interface
type ProfileRepository interface {
	List(ctx context.Context) ([]*models.MemberProfile, error)
}
