package models

import (
	"time"

	"sacco-ledger/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Ledger tables (read only - written by the remote procedures)
// ============================================================

// Transaction represents the transactions table
type Transaction struct {
	ID                string    `gorm:"primaryKey;size:64" json:"id"`
	TransactionType   string    `gorm:"size:40;index" json:"transaction_type"`
	Direction         string    `gorm:"size:10" json:"direction"`
	Amount            float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Status            string    `gorm:"size:20;index" json:"status"`
	BalanceBefore     float64   `gorm:"type:decimal(18,2)" json:"balance_before"`
	BalanceAfter      float64   `gorm:"type:decimal(18,2)" json:"balance_after"`
	UserID            string    `gorm:"size:64;index" json:"user_id"`
	ExternalReference *string   `gorm:"size:100" json:"external_reference"`
	ReferenceID       *string   `gorm:"size:100" json:"reference_id"`
	Notes             *string   `gorm:"type:text" json:"notes"`
	ProofURL          *string   `gorm:"size:500" json:"proof_url"`
	PaymentMethod     *string   `gorm:"size:40" json:"payment_method"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ToDomain converts the row into a domain transaction
func (t *Transaction) ToDomain() domain.Transaction {
	return domain.Transaction{
		ID:                t.ID,
		Type:              domain.TransactionType(t.TransactionType),
		Direction:         domain.Direction(t.Direction),
		Amount:            t.Amount,
		Status:            domain.TransactionStatus(t.Status),
		BalanceBefore:     t.BalanceBefore,
		BalanceAfter:      t.BalanceAfter,
		CreatedAt:         t.CreatedAt,
		UserID:            t.UserID,
		ExternalReference: deref(t.ExternalReference),
		ReferenceID:       deref(t.ReferenceID),
		Notes:             deref(t.Notes),
		ProofURL:          deref(t.ProofURL),
		PaymentMethod:     deref(t.PaymentMethod),
	}
}

// Account represents the accounts table
type Account struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id"`
	UserID      string  `gorm:"size:64;index" json:"user_id"`
	AccountType string  `gorm:"size:20" json:"account_type"`
	Balance     float64 `gorm:"type:decimal(18,2)" json:"balance"`
}

func (Account) TableName() string {
	return "accounts"
}

// ToDomain converts the row into a domain account
func (a *Account) ToDomain() domain.Account {
	return domain.Account{
		ID:          a.ID,
		UserID:      a.UserID,
		AccountType: domain.AccountType(a.AccountType),
		Balance:     a.Balance,
	}
}

// Loan represents the loans table
type Loan struct {
	ID                 string    `gorm:"primaryKey;size:64" json:"id"`
	UserID             string    `gorm:"size:64;index" json:"user_id"`
	PrincipalAmount    *float64  `gorm:"column:principal_amount;type:decimal(18,2)" json:"principal_amount"`
	OutstandingBalance *float64  `gorm:"column:outstanding_balance;type:decimal(18,2)" json:"outstanding_balance"`
	TotalPayable       *float64  `gorm:"type:decimal(18,2)" json:"total_payable"`
	Status             string    `gorm:"size:20;index" json:"status"`
	RiskCategory       *string   `gorm:"size:20" json:"risk_category"`
	DaysInArrears      *int      `json:"days_in_arrears"`
	CreatedAt          time.Time `json:"created_at"`
}

func (Loan) TableName() string {
	return "loans"
}

// ToDomain converts the row into a domain loan, NULL numerics becoming zero
func (l *Loan) ToDomain() domain.Loan {
	loan := domain.Loan{
		ID:                 l.ID,
		UserID:             l.UserID,
		Principal:          derefFloat(l.PrincipalAmount),
		OutstandingBalance: derefFloat(l.OutstandingBalance),
		TotalPayable:       derefFloat(l.TotalPayable),
		Status:             l.Status,
		RiskCategory:       domain.RiskCategory(deref(l.RiskCategory)),
		CreatedAt:          l.CreatedAt,
	}
	if l.DaysInArrears != nil {
		loan.DaysInArrears = *l.DaysInArrears
	}
	return loan
}

// MemberProfile represents the member_profiles table
type MemberProfile struct {
	ID           string  `gorm:"primaryKey;size:64" json:"id"`
	AuthUserID   *string `gorm:"size:64;index" json:"auth_user_id"`
	FirstName    string  `gorm:"size:100" json:"first_name"`
	LastName     string  `gorm:"size:100" json:"last_name"`
	MembershipNo *string `gorm:"size:30;index" json:"membership_no"`
}

func (MemberProfile) TableName() string {
	return "member_profiles"
}

// ToDomain converts the row into a domain profile
func (p *MemberProfile) ToDomain() domain.MemberProfile {
	return domain.MemberProfile{
		ID:           p.ID,
		AuthUserID:   deref(p.AuthUserID),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		MembershipNo: deref(p.MembershipNo),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// AutoMigrate creates the ledger tables for local development.
// In production the tables belong to the remote store and are never migrated from here.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Transaction{},
		&Account{},
		&Loan{},
		&MemberProfile{},
	)
}
