package domain

import (
	"encoding/json"
	"time"
)

// TransactionType identifies the business event behind a transaction
type TransactionType string

const (
	TypeSavingsDeposit   TransactionType = "Savings_Deposit"
	TypeSavingsWithdraw  TransactionType = "Savings_Withdraw"
	TypeSharePurchase    TransactionType = "Share_Purchase"
	TypeLoanDisbursement TransactionType = "Loan_Disbursement"
	TypeLoanRepayment    TransactionType = "Loan_Repayment"
	TypeInterestPosting  TransactionType = "Interest_Posting"
	TypePenalty          TransactionType = "Penalty"
	TypeFee              TransactionType = "Fee"

	// Fallbacks written by the store when the source type is missing.
	TypeGeneral TransactionType = "General_Transaction"
	TypeUnknown TransactionType = "Unknown_Type"
)

// KnownTransactionTypes is the closed set the classification table covers
var KnownTransactionTypes = []TransactionType{
	TypeSavingsDeposit,
	TypeSavingsWithdraw,
	TypeSharePurchase,
	TypeLoanDisbursement,
	TypeLoanRepayment,
	TypeInterestPosting,
	TypePenalty,
	TypeFee,
}

// Direction is the cash-flow effect of a transaction
type Direction string

const (
	Credit Direction = "Credit"
	Debit  Direction = "Debit"
)

// TransactionStatus is the posting state of a transaction
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "Completed"
	StatusPending   TransactionStatus = "Pending"
	StatusFailed    TransactionStatus = "Failed"
)

// AccountType is a member balance bucket
type AccountType string

const (
	AccountSavings      AccountType = "Savings"
	AccountShares       AccountType = "Shares"
	AccountFixedDeposit AccountType = "Fixed_Deposit"
)

// Loan statuses referenced by the engine
const (
	LoanStatusApproved  = "Approved"
	LoanStatusCompleted = "Completed"
)

// RiskCategory is a loan credit-quality class
type RiskCategory string

const (
	RiskPerforming  RiskCategory = "Performing"
	RiskWatch       RiskCategory = "Watch"
	RiskSubstandard RiskCategory = "Substandard"
	RiskDoubtful    RiskCategory = "Doubtful"
	RiskLoss        RiskCategory = "Loss"
)

// RiskCategories lists risk classes from best to worst
var RiskCategories = []RiskCategory{RiskPerforming, RiskWatch, RiskSubstandard, RiskDoubtful, RiskLoss}

// Rank orders risk categories, Performing being 0. Unknown values rank -1.
func (r RiskCategory) Rank() int {
	for i, c := range RiskCategories {
		if c == r {
			return i
		}
	}
	return -1
}

// Transaction is an immutable financial event read from the store
type Transaction struct {
	ID                string            `json:"id"`
	Type              TransactionType   `json:"transaction_type"`
	Direction         Direction         `json:"direction"`
	Amount            float64           `json:"amount"`
	Status            TransactionStatus `json:"status"`
	BalanceBefore     float64           `json:"balance_before"`
	BalanceAfter      float64           `json:"balance_after"`
	CreatedAt         time.Time         `json:"created_at"`
	UserID            string            `json:"user_id"`
	ExternalReference string            `json:"external_reference,omitempty"`
	ReferenceID       string            `json:"reference_id,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	ProofURL          string            `json:"proof_url,omitempty"`
	PaymentMethod     string            `json:"payment_method,omitempty"`

	// Attached by enrichment
	UserName     string `json:"user_name,omitempty"`
	MembershipNo string `json:"membership_no,omitempty"`
}

// Account is one balance bucket of one member
type Account struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	AccountType AccountType `json:"account_type"`
	Balance     float64     `json:"balance"`
}

// Loan is a member loan snapshot.
// principal/principal_amount and outstanding_balance/balance_due are the same values under two wire names.
type Loan struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"user_id"`
	Principal          float64      `json:"principal"`
	OutstandingBalance float64      `json:"outstanding_balance"`
	TotalPayable       float64      `json:"total_payable"`
	Status             string       `json:"status"`
	RiskCategory       RiskCategory `json:"risk_category"`
	DaysInArrears      int          `json:"days_in_arrears"`
	CreatedAt          time.Time    `json:"created_at"`

	// Attached by enrichment
	UserName     string `json:"user_name,omitempty"`
	MembershipNo string `json:"membership_no,omitempty"`
}

// UnmarshalJSON accepts both wire names for principal and outstanding balance
func (l *Loan) UnmarshalJSON(data []byte) error {
	type plain Loan
	aux := struct {
		*plain
		PrincipalAmount float64 `json:"principal_amount"`
		BalanceDue      float64 `json:"balance_due"`
	}{plain: (*plain)(l)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if l.Principal == 0 {
		l.Principal = aux.PrincipalAmount
	}
	if l.OutstandingBalance == 0 {
		l.OutstandingBalance = aux.BalanceDue
	}
	return nil
}

// IsActive reports whether the loan counts as the member's active loan.
// The second clause is redundant with the first; it is kept as the store defines it.
func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusApproved && l.Status != LoanStatusCompleted
}

// MemberProfile is the identity record of a member
type MemberProfile struct {
	ID           string `json:"id"`
	AuthUserID   string `json:"auth_user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MembershipNo string `json:"membership_no"`
}

// Key returns the identity used to join accounts, loans and transactions
func (p *MemberProfile) Key() string {
	if p.AuthUserID != "" {
		return p.AuthUserID
	}
	return p.ID
}

// MemberSnapshot joins a profile with its accounts and at most one active loan
type MemberSnapshot struct {
	Profile    MemberProfile `json:"profile"`
	Accounts   []Account     `json:"accounts"`
	ActiveLoan *Loan         `json:"active_loan,omitempty"`
}
