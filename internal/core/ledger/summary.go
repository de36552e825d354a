package ledger

import (
	"slices"

	"sacco-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Inflow and outflow lists of the summary calculator. They differ from the
// classification table: Penalty counts as an inflow here.
var (
	depositTypes = map[domain.TransactionType]bool{
		domain.TypeLoanRepayment:  true,
		domain.TypeSavingsDeposit: true,
		domain.TypeSharePurchase:  true,
		domain.TypeFee:            true,
		domain.TypePenalty:        true,
	}
	withdrawTypes = map[domain.TransactionType]bool{
		domain.TypeSavingsWithdraw:  true,
		domain.TypeLoanDisbursement: true,
	}
)

// Summarize computes opening/closing balance and the deposit/withdraw split of txs.
// Input order is irrelevant; txs is sorted on a copy by created_at.
func Summarize(txs []domain.Transaction) domain.TransactionSummary {
	if len(txs) == 0 {
		return domain.TransactionSummary{}
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b domain.Transaction) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	deposits := decimal.Zero
	withdraws := decimal.Zero
	count := 0
	for _, tx := range sorted {
		if tx.Status != domain.StatusCompleted {
			continue
		}
		switch {
		case depositTypes[tx.Type]:
			deposits = deposits.Add(money(tx.Amount))
			count++
		case withdrawTypes[tx.Type]:
			withdraws = withdraws.Add(money(tx.Amount))
			count++
		}
	}

	flow := deposits.Add(withdraws)
	return domain.TransactionSummary{
		OpeningBalance:   money(sorted[0].BalanceBefore).InexactFloat64(),
		ClosingBalance:   money(sorted[len(sorted)-1].BalanceAfter).InexactFloat64(),
		TotalDeposits:    deposits.InexactFloat64(),
		TotalWithdraws:   withdraws.InexactFloat64(),
		NetAmount:        deposits.Sub(withdraws).InexactFloat64(),
		DepositPercent:   percentOf(deposits, flow),
		WithdrawPercent:  percentOf(withdraws, flow),
		TransactionCount: count,
	}
}
