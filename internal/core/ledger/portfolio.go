package ledger

import (
	"strings"

	"sacco-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// PortfolioStats computes principal, outstanding, arrears count and repayment rate of loans
func PortfolioStats(loans []domain.Loan) domain.PortfolioStats {
	principal := decimal.Zero
	outstanding := decimal.Zero
	stats := domain.PortfolioStats{
		LoanCount: len(loans),
		ByRisk:    make(map[domain.RiskCategory]int),
	}

	for _, loan := range loans {
		principal = principal.Add(money(loan.Principal))
		outstanding = outstanding.Add(money(loan.OutstandingBalance))
		if loan.DaysInArrears > 0 {
			stats.ArrearsCount++
		}
		if loan.RiskCategory != "" {
			stats.ByRisk[loan.RiskCategory]++
		}
	}

	stats.Principal = principal.InexactFloat64()
	stats.Outstanding = outstanding.InexactFloat64()
	if principal.IsPositive() {
		stats.RepaymentRate = principal.Sub(outstanding).Div(principal).Mul(hundred).InexactFloat64()
	}
	return stats
}

// FilterLoans narrows a loan book by status, risk category, arrears and search text.
// Search matches id, user id, membership number and user name, case-insensitively.
func FilterLoans(loans []domain.Loan, f domain.LoanFilter) []domain.Loan {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Loan, 0, len(loans))
	for _, loan := range loans {
		if f.Status != "" && f.Status != domain.FilterAll && loan.Status != f.Status {
			continue
		}
		if f.RiskCategory != "" && f.RiskCategory != domain.FilterAll && loan.RiskCategory != f.RiskCategory {
			continue
		}
		if f.ArrearsOnly && loan.DaysInArrears <= 0 {
			continue
		}
		if q != "" && !containsAny(q, loan.ID, loan.UserID, loan.MembershipNo, loan.UserName) {
			continue
		}
		out = append(out, loan)
	}
	return out
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
