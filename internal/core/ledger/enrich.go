package ledger

import (
	"strings"

	"sacco-ledger/internal/core/domain"
)

// Defaults attached when a record's user id has no profile
const (
	UnknownMemberName = "Unknown Member"
	UnknownMemberNo   = "N/A"
)

type memberLabel struct {
	name         string
	membershipNo string
}

// Enrich returns a copy of records with display name and membership number attached.
// If either side is empty the records slice is returned as is.
func Enrich[T any](profiles []domain.MemberProfile, records []T, userID func(T) string, attach func(T, string, string) T) []T {
	if len(profiles) == 0 || len(records) == 0 {
		return records
	}

	lookup := make(map[string]memberLabel, len(profiles))
	for _, p := range profiles {
		// A matched profile without names is labelled by its membership number, then its id
		name := strings.TrimSpace(p.FirstName + " " + p.LastName)
		if name == "" {
			name = p.MembershipNo
		}
		if name == "" {
			name = p.ID
		}
		no := p.MembershipNo
		if no == "" {
			no = UnknownMemberNo
		}
		lookup[p.Key()] = memberLabel{name: name, membershipNo: no}
	}

	out := make([]T, len(records))
	for i, r := range records {
		label, ok := lookup[userID(r)]
		if !ok {
			label = memberLabel{name: UnknownMemberName, membershipNo: UnknownMemberNo}
		}
		out[i] = attach(r, label.name, label.membershipNo)
	}
	return out
}

// EnrichTransactions attaches member labels to transactions
func EnrichTransactions(profiles []domain.MemberProfile, txs []domain.Transaction) []domain.Transaction {
	return Enrich(profiles, txs,
		func(tx domain.Transaction) string { return tx.UserID },
		func(tx domain.Transaction, name, no string) domain.Transaction {
			tx.UserName = name
			tx.MembershipNo = no
			return tx
		})
}

// EnrichLoans attaches member labels to loans
func EnrichLoans(profiles []domain.MemberProfile, loans []domain.Loan) []domain.Loan {
	return Enrich(profiles, loans,
		func(l domain.Loan) string { return l.UserID },
		func(l domain.Loan, name, no string) domain.Loan {
			l.UserName = name
			l.MembershipNo = no
			return l
		})
}
