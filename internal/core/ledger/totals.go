package ledger

import (
	"sacco-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ComputeTotals aggregates the cooperative cash and loan position over members
func ComputeTotals(members []domain.MemberSnapshot) domain.CooperativeTotals {
	var (
		saccoValue  = decimal.Zero
		savings     = decimal.Zero
		outstanding = decimal.Zero
		payable     = decimal.Zero
		principal   = decimal.Zero
		activeLoans int
	)

	for _, m := range members {
		for _, acc := range m.Accounts {
			balance := money(acc.Balance)
			saccoValue = saccoValue.Add(balance)
			if acc.AccountType == domain.AccountSavings {
				savings = savings.Add(balance)
			}
		}

		loan := m.ActiveLoan
		if loan == nil || !loan.IsActive() {
			continue
		}
		activeLoans++
		saccoValue = saccoValue.Add(money(loan.TotalPayable))
		payable = payable.Add(money(loan.TotalPayable))
		outstanding = outstanding.Add(money(loan.OutstandingBalance))
		principal = principal.Add(money(loan.Principal))
	}

	return domain.CooperativeTotals{
		TotalSaccoValue:       saccoValue.InexactFloat64(),
		TotalSavings:          savings.InexactFloat64(),
		TotalOutstandingLoans: outstanding.InexactFloat64(),
		TotalPayableLoans:     payable.InexactFloat64(),
		TotalPrincipal:        principal.InexactFloat64(),
		TotalActiveLoan:       activeLoans,
		CashAtHand:            saccoValue.Sub(outstanding).InexactFloat64(),
		TotalRepaidLoan:       payable.Sub(outstanding).InexactFloat64(),
		MemberCount:           len(members),
	}
}
