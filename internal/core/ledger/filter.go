package ledger

import (
	"fmt"
	"strings"
	"time"

	"sacco-ledger/internal/core/domain"
)

// categoryTypes lists the transaction types each business category shows
var categoryTypes = map[domain.Category]map[domain.TransactionType]bool{
	domain.CategorySavings: {
		domain.TypeSavingsDeposit:  true,
		domain.TypeSavingsWithdraw: true,
		domain.TypeInterestPosting: true,
	},
	domain.CategoryLoans: {
		domain.TypeLoanDisbursement: true,
		domain.TypeLoanRepayment:    true,
		domain.TypePenalty:          true,
	},
	domain.CategoryShares: {
		domain.TypeSharePurchase: true,
	},
}

// stage is one named predicate of the filter pipeline
type stage struct {
	name string
	keep func(domain.Transaction) bool
}

// ValidateFilter checks the enumerated fields of a filter state
func ValidateFilter(f domain.FilterState) error {
	switch f.Category {
	case "", domain.CategoryAll, domain.CategorySavings, domain.CategoryLoans, domain.CategoryShares:
	default:
		return fmt.Errorf("%w: category %q", domain.ErrInvalidFilter, f.Category)
	}

	switch domain.Direction(f.Direction) {
	case "", domain.FilterAll, domain.Credit, domain.Debit:
	default:
		return fmt.Errorf("%w: direction %q", domain.ErrInvalidFilter, f.Direction)
	}

	switch domain.TransactionStatus(f.Status) {
	case "", domain.FilterAll, domain.StatusCompleted, domain.StatusPending, domain.StatusFailed:
	default:
		return fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, f.Status)
	}

	if f.DateRangeActive && !f.Start.IsZero() && !f.End.IsZero() && dayEnd(f.End).Before(dayStart(f.Start)) {
		return fmt.Errorf("%w: start %s is after end %s", domain.ErrInvalidFilter,
			f.Start.Format(time.DateOnly), f.End.Format(time.DateOnly))
	}
	return nil
}

// SummaryFilter returns a copy of f restricted to completed transactions
func SummaryFilter(f domain.FilterState) domain.FilterState {
	f.Status = string(domain.StatusCompleted)
	return f
}

// ApplyFilters narrows txs by category, status, search text and date range, in that order.
// The result keeps input order and never aliases the input slice.
// Malformed records are dropped. A failure inside a stage is returned as *domain.AggregationError.
func ApplyFilters(txs []domain.Transaction, f domain.FilterState) ([]domain.Transaction, error) {
	if err := ValidateFilter(f); err != nil {
		return nil, err
	}
	return applyStages(txs, pipeline(f))
}

// applyStages drops malformed records then runs stages in order.
// A panic inside a stage becomes an *domain.AggregationError naming that stage.
func applyStages(txs []domain.Transaction, stages []stage) (out []domain.Transaction, err error) {
	current := "sanitize"
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &domain.AggregationError{Stage: current, Cause: fmt.Errorf("%v", r)}
		}
	}()

	out = make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if wellFormed(tx) {
			out = append(out, tx)
		}
	}

	for _, s := range stages {
		current = s.name
		kept := make([]domain.Transaction, 0, len(out))
		for _, tx := range out {
			if s.keep(tx) {
				kept = append(kept, tx)
			}
		}
		out = kept
	}
	return out, nil
}

func pipeline(f domain.FilterState) []stage {
	return []stage{
		{name: "category", keep: categoryPredicate(f.Category, f.Direction)},
		{name: "status", keep: statusPredicate(f.Status)},
		{name: "search", keep: searchPredicate(f.Search)},
		{name: "date_range", keep: dateRangePredicate(f)},
	}
}

func wellFormed(tx domain.Transaction) bool {
	return tx.ID != "" && tx.Type != "" && !tx.CreatedAt.IsZero()
}

func categoryPredicate(c domain.Category, direction string) func(domain.Transaction) bool {
	types := categoryTypes[c]
	return func(tx domain.Transaction) bool {
		if types != nil && !types[tx.Type] {
			return false
		}
		if direction == "" || direction == domain.FilterAll {
			return true
		}
		d, err := Classify(tx.Type)
		return err == nil && string(d) == direction
	}
}

func statusPredicate(status string) func(domain.Transaction) bool {
	return func(tx domain.Transaction) bool {
		return status == "" || status == domain.FilterAll || string(tx.Status) == status
	}
}

func searchPredicate(query string) func(domain.Transaction) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(tx domain.Transaction) bool {
		if q == "" {
			return true
		}
		for _, field := range []string{tx.ExternalReference, tx.ReferenceID, tx.ID, tx.Notes} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
}

func dateRangePredicate(f domain.FilterState) func(domain.Transaction) bool {
	if !f.DateRangeActive {
		return func(domain.Transaction) bool { return true }
	}
	var from, to time.Time
	if !f.Start.IsZero() {
		from = dayStart(f.Start)
	}
	if !f.End.IsZero() {
		to = dayEnd(f.End)
	}
	return func(tx domain.Transaction) bool {
		if !from.IsZero() && tx.CreatedAt.Before(from) {
			return false
		}
		if !to.IsZero() && tx.CreatedAt.After(to) {
			return false
		}
		return true
	}
}

// dayStart is 00:00:00.000 of t's day in t's location
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayEnd is 23:59:59.999 of t's day in t's location
func dayEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
