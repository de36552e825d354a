package ledger_test

import (
	"errors"
	"testing"

	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_TotalOverKnownTypes(t *testing.T) {
	for _, typ := range domain.KnownTransactionTypes {
		t.Run(string(typ), func(t *testing.T) {
			d, err := ledger.Classify(typ)
			require.NoError(t, err)
			assert.Contains(t, []domain.Direction{domain.Credit, domain.Debit}, d)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		typ  domain.TransactionType
		want domain.Direction
	}{
		{domain.TypeSavingsDeposit, domain.Credit},
		{domain.TypeSharePurchase, domain.Credit},
		{domain.TypeLoanRepayment, domain.Credit},
		{domain.TypeInterestPosting, domain.Credit},
		{domain.TypeFee, domain.Credit},
		{domain.TypeSavingsWithdraw, domain.Debit},
		{domain.TypeLoanDisbursement, domain.Debit},
		{domain.TypePenalty, domain.Debit},
	}
	for _, tt := range tests {
		got, err := ledger.Classify(tt.typ)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.typ)
	}
}

func TestClassify_UnknownTypeFailsLoudly(t *testing.T) {
	for _, typ := range []domain.TransactionType{domain.TypeGeneral, domain.TypeUnknown, "Dividend", ""} {
		d, err := ledger.Classify(typ)
		assert.Empty(t, d)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownTransactionType))

		var cerr *domain.ClassificationError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, typ, cerr.Type)
	}
}

func TestUnclassified(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "t1", Type: domain.TypeSavingsDeposit},
		{ID: "t2", Type: domain.TypeGeneral},
		{ID: "t3", Type: "Dividend"},
	}

	errs := ledger.Unclassified(txs)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "t2")
	assert.Contains(t, errs[1].Error(), "Dividend")
	assert.Empty(t, ledger.Unclassified(nil))
}
