package ledger

import "sacco-ledger/internal/core/domain"

// BuildMemberSnapshots joins profiles with their accounts and first active loan.
// Accounts and loans whose user id matches no profile are ignored.
func BuildMemberSnapshots(profiles []domain.MemberProfile, accounts []domain.Account, loans []domain.Loan) []domain.MemberSnapshot {
	byUser := make(map[string][]domain.Account, len(profiles))
	for _, a := range accounts {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	activeLoan := make(map[string]*domain.Loan, len(loans))
	for i := range loans {
		loan := loans[i]
		if !loan.IsActive() {
			continue
		}
		if _, seen := activeLoan[loan.UserID]; !seen {
			activeLoan[loan.UserID] = &loan
		}
	}

	snapshots := make([]domain.MemberSnapshot, 0, len(profiles))
	for _, p := range profiles {
		key := p.Key()
		snapshots = append(snapshots, domain.MemberSnapshot{
			Profile:    p,
			Accounts:   byUser[key],
			ActiveLoan: activeLoan[key],
		})
	}
	return snapshots
}
