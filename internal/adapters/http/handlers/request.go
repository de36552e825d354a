package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/ledger"
	"sacco-ledger/internal/pkg/jwt"
	"sacco-ledger/internal/pkg/logger"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// filterRequest is the transaction filter as sent in a query string or JSON body.
// Dates are YYYY-MM-DD; the range is active when either bound is present.
type filterRequest struct {
	Category  string `query:"category" json:"category"`
	Direction string `query:"direction" json:"direction"`
	Status    string `query:"status" json:"status"`
	Search    string `query:"search" json:"search"`
	Start     string `query:"start" json:"start"`
	End       string `query:"end" json:"end"`
}

func (r filterRequest) toFilter() (domain.FilterState, error) {
	f := domain.FilterState{
		Category:  domain.Category(strings.ToLower(strings.TrimSpace(r.Category))),
		Direction: strings.TrimSpace(r.Direction),
		Status:    strings.TrimSpace(r.Status),
		Search:    r.Search,
	}

	var err error
	if f.Start, err = parseDate("start", r.Start); err != nil {
		return domain.FilterState{}, err
	}
	if f.End, err = parseDate("end", r.End); err != nil {
		return domain.FilterState{}, err
	}
	f.DateRangeActive = !f.Start.IsZero() || !f.End.IsZero()

	// Reject before touching the store
	if err := ledger.ValidateFilter(f); err != nil {
		return domain.FilterState{}, err
	}
	return f, nil
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInvalidFilter, field)
	}
	return t, nil
}

// loanFilterRequest is the loan book filter as sent in a query string or JSON body
type loanFilterRequest struct {
	Status  string `query:"status" json:"status"`
	Risk    string `query:"risk" json:"risk"`
	Search  string `query:"search" json:"search"`
	Arrears bool   `query:"arrears" json:"arrears"`
}

func (r loanFilterRequest) toFilter() (domain.LoanFilter, error) {
	risk := domain.RiskCategory(strings.TrimSpace(r.Risk))
	if risk != "" && risk != domain.FilterAll && risk.Rank() < 0 {
		return domain.LoanFilter{}, fmt.Errorf("%w: unknown risk category %q", domain.ErrInvalidFilter, r.Risk)
	}
	return domain.LoanFilter{
		Status:       strings.TrimSpace(r.Status),
		RiskCategory: risk,
		Search:       r.Search,
		ArrearsOnly:  r.Arrears,
	}, nil
}

// scopeUserID returns the member whose ledger the request may read.
// Admins may name any member through ?user_id= or leave it empty for all members.
func scopeUserID(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("claims").(*jwt.Claims)
	if !ok || claims.UserID == "" {
		return "", domain.ErrUnauthorized
	}
	if claims.IsAdmin() {
		return strings.TrimSpace(c.Query("user_id")), nil
	}
	return claims.UserID, nil
}

// handleLedgerError maps engine and store failures onto the response envelope
func handleLedgerError(c *fiber.Ctx, err error, fallback string) error {
	log := logger.FromContext(c.UserContext())
	switch {
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrAggregationFailed):
		log.Error().Err(err).Msg("ledger aggregation failed")
		return response.InternalServerError(c, "Ledger aggregation failed")
	default:
		log.Error().Err(err).Msg(fallback)
		return response.InternalServerError(c, fallback)
	}
}
