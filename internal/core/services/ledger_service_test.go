package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	mock_repositories "sacco-ledger/internal/adapters/persistence/repositories/mocks"
	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/pagination"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMocks struct {
	tx      *mock_repositories.MockTransactionRepository
	account *mock_repositories.MockAccountRepository
	loan    *mock_repositories.MockLoanRepository
	profile *mock_repositories.MockProfileRepository
}

func newLedgerService(t *testing.T) (*services.LedgerService, repoMocks) {
	ctrl := gomock.NewController(t)
	m := repoMocks{
		tx:      mock_repositories.NewMockTransactionRepository(ctrl),
		account: mock_repositories.NewMockAccountRepository(ctrl),
		loan:    mock_repositories.NewMockLoanRepository(ctrl),
		profile: mock_repositories.NewMockProfileRepository(ctrl),
	}
	svc := services.NewLedgerService(m.tx, m.account, m.loan, m.profile, zerolog.Nop())
	return svc, m
}

var base = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func txRow(id, typ, status string, amount, before, after float64, at time.Time) *models.Transaction {
	return &models.Transaction{
		ID:              id,
		TransactionType: typ,
		Status:          status,
		Amount:          amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		UserID:          "u1",
		CreatedAt:       at,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestLedgerService_Summary(t *testing.T) {
	svc, m := newLedgerService(t)
	ctx := context.Background()

	m.tx.EXPECT().List(ctx, "u1").Return([]*models.Transaction{
		txRow("t1", "Savings_Deposit", "Completed", 1000, 0, 1000, base),
		txRow("t2", "Savings_Withdraw", "Completed", 400, 1000, 600, base.Add(time.Hour)),
		txRow("t3", "Savings_Deposit", "Pending", 900, 600, 1500, base.Add(2*time.Hour)),
		txRow("t4", "General_Transaction", "Completed", 5, 600, 605, base.Add(-time.Hour)),
	}, nil)

	out, err := svc.Summary(ctx, "u1", domain.FilterState{})

	require.NoError(t, err)
	assert.Equal(t, 600.0, out.Summary.ClosingBalance)
	assert.Equal(t, 600.0, out.Summary.OpeningBalance, "opening balance comes from the earliest completed row")
	assert.Equal(t, 1000.0, out.Summary.TotalDeposits)
	assert.Equal(t, 400.0, out.Summary.TotalWithdraws)
	assert.Equal(t, 1, out.Unclassified)
	assert.Equal(t, "UGX 600", out.Formatted["net_amount"])
	assert.Equal(t, "71.4%", out.Formatted["deposit_percent"])
}

func TestLedgerService_Summary_RepositoryError(t *testing.T) {
	svc, m := newLedgerService(t)
	dbErr := errors.New("connection refused")
	m.tx.EXPECT().List(gomock.Any(), "").Return(nil, dbErr)

	out, err := svc.Summary(context.Background(), "", domain.FilterState{})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, dbErr)
}

func TestLedgerService_Summary_InvalidFilter(t *testing.T) {
	svc, m := newLedgerService(t)
	m.tx.EXPECT().List(gomock.Any(), "u1").Return(nil, nil)

	_, err := svc.Summary(context.Background(), "u1", domain.FilterState{Category: "pensions"})

	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestLedgerService_ListTransactions(t *testing.T) {
	svc, m := newLedgerService(t)
	ctx := context.Background()

	m.tx.EXPECT().List(ctx, "").Return([]*models.Transaction{
		txRow("t1", "Savings_Deposit", "Completed", 1000, 0, 1000, base),
		txRow("t2", "Loan_Disbursement", "Completed", 500, 1000, 1500, base.Add(time.Hour)),
		txRow("t3", "Savings_Withdraw", "Pending", 100, 1500, 1400, base.Add(2*time.Hour)),
		txRow("t4", "Savings_Deposit", "Failed", 100, 1400, 1500, base.Add(3*time.Hour)),
	}, nil)
	m.profile.EXPECT().List(ctx).Return([]*models.MemberProfile{
		{ID: "u1", FirstName: "Amina", LastName: "Nakato", MembershipNo: ptr("SAC-001")},
	}, nil)

	params := &pagination.Params{Page: 1, Limit: 2, Offset: 0}
	out, err := svc.ListTransactions(ctx, "", domain.FilterState{Category: domain.CategorySavings}, params)

	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, "t4", out.Transactions[0].ID, "newest first")
	assert.Equal(t, "t3", out.Transactions[1].ID)
	assert.Equal(t, "Amina Nakato", out.Transactions[0].UserName)
	assert.Equal(t, "SAC-001", out.Transactions[0].MembershipNo)
	assert.Equal(t, int64(3), out.Meta.Total)
	assert.Equal(t, 2, out.Meta.TotalPages)
	assert.True(t, out.Meta.HasNext)
}

func TestLedgerService_ListTransactions_SecondPage(t *testing.T) {
	svc, m := newLedgerService(t)

	m.tx.EXPECT().List(gomock.Any(), "u1").Return([]*models.Transaction{
		txRow("t1", "Savings_Deposit", "Completed", 1, 0, 1, base),
		txRow("t2", "Savings_Deposit", "Completed", 1, 1, 2, base.Add(time.Hour)),
		txRow("t3", "Savings_Deposit", "Completed", 1, 2, 3, base.Add(2*time.Hour)),
	}, nil)
	m.profile.EXPECT().List(gomock.Any()).Return(nil, nil)

	out, err := svc.ListTransactions(context.Background(), "u1", domain.FilterState{}, &pagination.Params{Page: 2, Limit: 2, Offset: 2})

	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "t1", out.Transactions[0].ID)
	assert.Empty(t, out.Transactions[0].UserName, "no profiles loaded means no enrichment")
	assert.False(t, out.Meta.HasNext)
}

func TestLedgerService_CooperativeTotals(t *testing.T) {
	svc, m := newLedgerService(t)
	ctx := context.Background()

	m.profile.EXPECT().List(ctx).Return([]*models.MemberProfile{
		{ID: "m1"},
		{ID: "m2"},
	}, nil)
	m.account.EXPECT().List(ctx).Return([]*models.Account{
		{UserID: "m1", AccountType: "Savings", Balance: 5000},
		{UserID: "m2", AccountType: "Savings", Balance: 3000},
	}, nil)
	m.loan.EXPECT().List(ctx).Return([]*models.Loan{
		{
			ID:                 "l1",
			UserID:             "m2",
			Status:             "Approved",
			PrincipalAmount:    ptr(2000.0),
			OutstandingBalance: ptr(1500.0),
			TotalPayable:       ptr(2400.0),
		},
	}, nil)

	got, err := svc.CooperativeTotals(ctx)

	require.NoError(t, err)
	assert.Equal(t, 10400.0, got.TotalSaccoValue)
	assert.Equal(t, 8000.0, got.TotalSavings)
	assert.Equal(t, 1500.0, got.TotalOutstandingLoans)
	assert.Equal(t, 1, got.TotalActiveLoan)
	assert.Equal(t, 8900.0, got.CashAtHand)
}

func TestLedgerService_CooperativeTotals_AccountError(t *testing.T) {
	svc, m := newLedgerService(t)
	m.profile.EXPECT().List(gomock.Any()).Return(nil, nil)
	m.account.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := svc.CooperativeTotals(context.Background())

	assert.ErrorContains(t, err, "failed to load accounts")
}

func TestLedgerService_LoanPortfolio(t *testing.T) {
	svc, m := newLedgerService(t)
	ctx := context.Background()

	m.loan.EXPECT().List(ctx).Return([]*models.Loan{
		{ID: "l1", UserID: "u1", Status: "Approved", PrincipalAmount: ptr(1000.0), OutstandingBalance: ptr(1000.0), DaysInArrears: ptr(5)},
		{ID: "l2", UserID: "u2", Status: "Approved", PrincipalAmount: ptr(1000.0), OutstandingBalance: ptr(0.0)},
		{ID: "l3", UserID: "u2", Status: "Rejected", PrincipalAmount: ptr(9000.0)},
	}, nil)
	m.profile.EXPECT().List(ctx).Return([]*models.MemberProfile{
		{ID: "u1", FirstName: "Amina", LastName: "Nakato"},
	}, nil)

	out, err := svc.LoanPortfolio(ctx, domain.LoanFilter{Status: "Approved"})

	require.NoError(t, err)
	assert.Equal(t, 2000.0, out.Stats.Principal)
	assert.Equal(t, 1000.0, out.Stats.Outstanding)
	assert.Equal(t, 1, out.Stats.ArrearsCount)
	assert.Equal(t, 50.0, out.Stats.RepaymentRate)
	require.Len(t, out.Loans, 2)
	assert.Equal(t, "Amina Nakato", out.Loans[0].UserName)
	assert.Equal(t, "Unknown Member", out.Loans[1].UserName)
}

func TestLedgerService_MemberOverview(t *testing.T) {
	svc, m := newLedgerService(t)
	ctx := context.Background()

	m.account.EXPECT().ListByUser(ctx, "u1").Return([]*models.Account{
		{UserID: "u1", AccountType: "Savings", Balance: 600},
		{UserID: "u1", AccountType: "Shares", Balance: 200},
	}, nil)
	m.loan.EXPECT().List(ctx).Return([]*models.Loan{
		{ID: "l1", UserID: "u1", Status: "Approved", TotalPayable: ptr(1200.0), OutstandingBalance: ptr(1000.0)},
		{ID: "l2", UserID: "u9", Status: "Approved", TotalPayable: ptr(5000.0)},
	}, nil)
	m.tx.EXPECT().List(ctx, "u1").Return([]*models.Transaction{
		txRow("t1", "Savings_Deposit", "Completed", 600, 0, 600, base),
	}, nil)

	out, err := svc.MemberOverview(ctx, "u1")

	require.NoError(t, err)
	assert.Len(t, out.Accounts, 2)
	assert.Equal(t, 600.0, out.Totals.TotalSavings)
	assert.Equal(t, 1, out.Totals.TotalActiveLoan)
	assert.Equal(t, 1000.0, out.Totals.TotalOutstandingLoans)
	assert.Equal(t, 600.0, out.Summary.ClosingBalance)
}

func TestLedgerService_MemberOverview_RequiresUser(t *testing.T) {
	svc, _ := newLedgerService(t)

	_, err := svc.MemberOverview(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerService_ListTransactions_PageBeyondEnd(t *testing.T) {
	tests := []struct {
		name   string
		params *pagination.Params
	}{
		{"huge page", pagination.NewParams(math.MaxInt, 100)},
		{"offset past end", &pagination.Params{Page: 5, Limit: 2, Offset: 8}},
		{"negative offset", &pagination.Params{Page: 1, Limit: 2, Offset: -200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newLedgerService(t)
			m.tx.EXPECT().List(gomock.Any(), "u1").Return([]*models.Transaction{
				txRow("t1", "Savings_Deposit", "Completed", 1, 0, 1, base),
			}, nil)
			m.profile.EXPECT().List(gomock.Any()).Return(nil, nil)

			out, err := svc.ListTransactions(context.Background(), "u1", domain.FilterState{}, tt.params)

			require.NoError(t, err)
			assert.Empty(t, out.Transactions)
			assert.Equal(t, int64(1), out.Meta.Total)
		})
	}
}
