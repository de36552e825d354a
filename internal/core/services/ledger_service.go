package services

import (
	"context"
	"errors"
	"fmt"

	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/ledger"
	"sacco-ledger/internal/pkg/format"
	"sacco-ledger/internal/pkg/pagination"

	"github.com/rs/zerolog"
)

// LedgerService loads ledger records from the store and runs the aggregation engine over them
type LedgerService struct {
	txRepo      repositories.TransactionRepository
	accountRepo repositories.AccountRepository
	loanRepo    repositories.LoanRepository
	profileRepo repositories.ProfileRepository
	currency    string
	log         zerolog.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	txRepo repositories.TransactionRepository,
	accountRepo repositories.AccountRepository,
	loanRepo repositories.LoanRepository,
	profileRepo repositories.ProfileRepository,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		txRepo:      txRepo,
		accountRepo: accountRepo,
		loanRepo:    loanRepo,
		profileRepo: profileRepo,
		currency:    format.DefaultCurrency,
		log:         log.With().Str("component", "ledger").Logger(),
	}
}

// WithCurrency sets the currency code used in formatted figures
func (s *LedgerService) WithCurrency(code string) *LedgerService {
	if code != "" {
		s.currency = code
	}
	return s
}

// ============================================================
// Transactions
// ============================================================

// ListTransactionsOutput is one page of the filtered transaction list
type ListTransactionsOutput struct {
	Transactions []domain.Transaction `json:"transactions"`
	Meta         *pagination.Meta     `json:"meta"`
}

// SummaryOutput is a transaction summary plus presentation strings
type SummaryOutput struct {
	Summary      domain.TransactionSummary `json:"summary"`
	Formatted    map[string]string         `json:"formatted"`
	Unclassified int                       `json:"unclassified"`
}

// ListTransactions returns the filtered, enriched transactions of userID (all members when empty).
// Pending and failed rows stay in the list unless the filter's status excludes them.
func (s *LedgerService) ListTransactions(ctx context.Context, userID string, filter domain.FilterState, params *pagination.Params) (*ListTransactionsOutput, error) {
	txs, err := s.loadTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered, err := ledger.ApplyFilters(txs, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter transactions: %w", err)
	}

	// Newest first for display; an offset past the end gives an empty page
	page := make([]domain.Transaction, 0, params.Limit)
	if params.Offset >= 0 && params.Offset < len(filtered) {
		for i := len(filtered) - 1 - params.Offset; i >= 0 && len(page) < params.Limit; i-- {
			page = append(page, filtered[i])
		}
	}

	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return nil, err
	}

	return &ListTransactionsOutput{
		Transactions: ledger.EnrichTransactions(profiles, page),
		Meta:         pagination.GetMeta(params, int64(len(filtered))),
	}, nil
}

// Summary computes the transaction summary of userID (all members when empty) over completed rows
func (s *LedgerService) Summary(ctx context.Context, userID string, filter domain.FilterState) (*SummaryOutput, error) {
	txs, err := s.loadTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.SummarizeRecords(txs, filter)
}

// SummarizeRecords computes a summary over caller-supplied transactions
func (s *LedgerService) SummarizeRecords(txs []domain.Transaction, filter domain.FilterState) (*SummaryOutput, error) {
	filtered, err := ledger.ApplyFilters(txs, ledger.SummaryFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to filter transactions: %w", err)
	}

	unclassified := s.reportUnclassified(filtered)
	summary := ledger.Summarize(filtered)

	return &SummaryOutput{
		Summary: summary,
		Formatted: map[string]string{
			"opening_balance":  format.CurrencyIn(s.currency, summary.OpeningBalance),
			"closing_balance":  format.CurrencyIn(s.currency, summary.ClosingBalance),
			"total_deposits":   format.CurrencyIn(s.currency, summary.TotalDeposits),
			"total_withdraws":  format.CurrencyIn(s.currency, summary.TotalWithdraws),
			"net_amount":       format.CurrencyIn(s.currency, summary.NetAmount),
			"deposit_percent":  format.Percent(summary.DepositPercent),
			"withdraw_percent": format.Percent(summary.WithdrawPercent),
		},
		Unclassified: unclassified,
	}, nil
}

// ============================================================
// Members
// ============================================================

// MemberOverviewOutput is a member's own balances and flow summary
type MemberOverviewOutput struct {
	Accounts []domain.Account          `json:"accounts"`
	Totals   domain.CooperativeTotals  `json:"totals"`
	Summary  domain.TransactionSummary `json:"summary"`
}

// MemberOverview returns the accounts, active loan position and lifetime summary of one member
func (s *LedgerService) MemberOverview(ctx context.Context, userID string) (*MemberOverviewOutput, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}

	accountRows, err := s.accountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	accounts := make([]domain.Account, len(accountRows))
	for i, row := range accountRows {
		accounts[i] = row.ToDomain()
	}

	loans, err := s.loadLoans(ctx)
	if err != nil {
		return nil, err
	}

	profile := domain.MemberProfile{ID: userID}
	snapshots := ledger.BuildMemberSnapshots([]domain.MemberProfile{profile}, accounts, loans)

	summary, err := s.Summary(ctx, userID, domain.FilterState{})
	if err != nil {
		return nil, err
	}

	return &MemberOverviewOutput{
		Accounts: accounts,
		Totals:   ledger.ComputeTotals(snapshots),
		Summary:  summary.Summary,
	}, nil
}

// ============================================================
// Cooperative
// ============================================================

// PortfolioOutput is the loan book view
type PortfolioOutput struct {
	Stats domain.PortfolioStats `json:"stats"`
	Loans []domain.Loan         `json:"loans"`
}

// CooperativeTotals computes SACCO-wide totals from the current store snapshot
func (s *LedgerService) CooperativeTotals(ctx context.Context) (domain.CooperativeTotals, error) {
	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return domain.CooperativeTotals{}, err
	}

	accountRows, err := s.accountRepo.List(ctx)
	if err != nil {
		return domain.CooperativeTotals{}, fmt.Errorf("failed to load accounts: %w", err)
	}
	accounts := make([]domain.Account, len(accountRows))
	for i, row := range accountRows {
		accounts[i] = row.ToDomain()
	}

	loans, err := s.loadLoans(ctx)
	if err != nil {
		return domain.CooperativeTotals{}, err
	}

	members := ledger.BuildMemberSnapshots(profiles, accounts, loans)
	return ledger.ComputeTotals(members), nil
}

// LoanPortfolio returns the enriched, filtered loan book and its statistics
func (s *LedgerService) LoanPortfolio(ctx context.Context, filter domain.LoanFilter) (*PortfolioOutput, error) {
	loans, err := s.loadLoans(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return nil, err
	}

	return s.PortfolioFromRecords(ledger.EnrichLoans(profiles, loans), filter), nil
}

// PortfolioFromRecords computes portfolio statistics over caller-supplied loans
func (s *LedgerService) PortfolioFromRecords(loans []domain.Loan, filter domain.LoanFilter) *PortfolioOutput {
	filtered := ledger.FilterLoans(loans, filter)
	return &PortfolioOutput{
		Stats: ledger.PortfolioStats(filtered),
		Loans: filtered,
	}
}

// ============================================================
// Loading helpers
// ============================================================

func (s *LedgerService) loadTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	rows, err := s.txRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	txs := make([]domain.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = row.ToDomain()
	}
	return txs, nil
}

func (s *LedgerService) loadLoans(ctx context.Context) ([]domain.Loan, error) {
	rows, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load loans: %w", err)
	}
	loans := make([]domain.Loan, len(rows))
	for i, row := range rows {
		loans[i] = row.ToDomain()
	}
	return loans, nil
}

func (s *LedgerService) loadProfiles(ctx context.Context) ([]domain.MemberProfile, error) {
	rows, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load member profiles: %w", err)
	}
	profiles := make([]domain.MemberProfile, len(rows))
	for i, row := range rows {
		profiles[i] = row.ToDomain()
	}
	return profiles, nil
}

// reportUnclassified logs every transaction outside the classification table and returns the count
func (s *LedgerService) reportUnclassified(txs []domain.Transaction) int {
	errs := ledger.Unclassified(txs)
	for _, err := range errs {
		var cerr *domain.ClassificationError
		if errors.As(err, &cerr) {
			s.log.Warn().
				Str("transaction_id", cerr.TransactionID).
				Str("transaction_type", string(cerr.Type)).
				Msg("transaction type is not classified; it contributes nothing to figures")
		}
	}
	return len(errs)
}
