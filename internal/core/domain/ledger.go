package domain

import "time"

// Category is a business-domain grouping of transaction types
type Category string

const (
	CategoryAll     Category = "all"
	CategorySavings Category = "savings"
	CategoryLoans   Category = "loans"
	CategoryShares  Category = "shares"
)

// Filter value meaning "no restriction" for direction and status
const FilterAll = "all"

// FilterState carries the per-query transaction filters.
// Empty fields mean no restriction.
type FilterState struct {
	Category        Category  `json:"category"`
	Direction       string    `json:"direction"`
	Status          string    `json:"status"`
	Search          string    `json:"search"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DateRangeActive bool      `json:"date_range_active"`
}

// LoanFilter narrows a loan book before statistics are computed
type LoanFilter struct {
	Status       string       `json:"status"`
	RiskCategory RiskCategory `json:"risk_category"`
	Search       string       `json:"search"`
	ArrearsOnly  bool         `json:"arrears_only"`
}

// TransactionSummary is the result of the transaction summary calculator
type TransactionSummary struct {
	OpeningBalance   float64 `json:"opening_balance"`
	ClosingBalance   float64 `json:"closing_balance"`
	TotalDeposits    float64 `json:"total_deposits"`
	TotalWithdraws   float64 `json:"total_withdraws"`
	NetAmount        float64 `json:"net_amount"`
	DepositPercent   float64 `json:"deposit_percent"`
	WithdrawPercent  float64 `json:"withdraw_percent"`
	TransactionCount int     `json:"transaction_count"`
}

// CooperativeTotals is the SACCO-wide cash and loan book position
type CooperativeTotals struct {
	TotalSaccoValue       float64 `json:"total_sacco_value"`
	TotalSavings          float64 `json:"total_savings"`
	TotalOutstandingLoans float64 `json:"total_outstanding_loans"`
	TotalPayableLoans     float64 `json:"total_payable_loans"`
	TotalPrincipal        float64 `json:"total_principal"`
	TotalActiveLoan       int     `json:"total_active_loan"`
	CashAtHand            float64 `json:"cash_at_hand"`
	TotalRepaidLoan       float64 `json:"total_repaid_loan"`
	MemberCount           int     `json:"member_count"`
}

// PortfolioStats summarises a (filtered) loan book
type PortfolioStats struct {
	Principal     float64              `json:"principal"`
	Outstanding   float64              `json:"outstanding"`
	ArrearsCount  int                  `json:"arrears_count"`
	RepaymentRate float64              `json:"repayment_rate"`
	LoanCount     int                  `json:"loan_count"`
	ByRisk        map[RiskCategory]int `json:"by_risk"`
}
