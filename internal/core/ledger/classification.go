package ledger

import "sacco-ledger/internal/core/domain"

// directions maps every known transaction type to its cash-flow effect.
// Penalty is a debit here; the summary calculator keeps its own inflow list.
var directions = map[domain.TransactionType]domain.Direction{
	domain.TypeSavingsDeposit:   domain.Credit,
	domain.TypeSharePurchase:    domain.Credit,
	domain.TypeLoanRepayment:    domain.Credit,
	domain.TypeInterestPosting:  domain.Credit,
	domain.TypeFee:              domain.Credit,
	domain.TypeSavingsWithdraw:  domain.Debit,
	domain.TypeLoanDisbursement: domain.Debit,
	domain.TypePenalty:          domain.Debit,
}

// Classify returns the direction of a transaction type
func Classify(t domain.TransactionType) (domain.Direction, error) {
	d, ok := directions[t]
	if !ok {
		return "", &domain.ClassificationError{Type: t}
	}
	return d, nil
}

// Unclassified returns one ClassificationError per transaction whose type is not in the table
func Unclassified(txs []domain.Transaction) []error {
	var errs []error
	for _, tx := range txs {
		if _, ok := directions[tx.Type]; !ok {
			errs = append(errs, &domain.ClassificationError{TransactionID: tx.ID, Type: tx.Type})
		}
	}
	return errs
}
