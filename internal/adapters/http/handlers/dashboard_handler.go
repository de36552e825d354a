package handlers

import (
	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/format"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles cooperative dashboard endpoints
type DashboardHandler struct {
	ledgerService *services.LedgerService
	snapshots     *services.SnapshotService
	currency      string
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(ledgerService *services.LedgerService, snapshots *services.SnapshotService, currency string) *DashboardHandler {
	if currency == "" {
		currency = format.DefaultCurrency
	}
	return &DashboardHandler{
		ledgerService: ledgerService,
		snapshots:     snapshots,
		currency:      currency,
	}
}

// TotalsResponse is the cooperative position with presentation strings
type TotalsResponse struct {
	services.Snapshot
	Formatted map[string]string `json:"formatted"`
}

// GetTotals returns the cooperative totals
// @Summary Cooperative totals
// @Description Latest scheduled snapshot of SACCO value, savings, loans and cash at hand (Admin only)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param fresh query bool false "Recompute instead of serving the latest snapshot"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/totals [get]
func (h *DashboardHandler) GetTotals(c *fiber.Ctx) error {
	snap, ok := h.snapshots.Latest()
	if !ok || c.QueryBool("fresh") {
		fresh, err := h.snapshots.Refresh(c.UserContext())
		if err != nil {
			return handleLedgerError(c, err, "Failed to compute cooperative totals")
		}
		snap = *fresh
	}

	t := snap.Totals
	return response.Success(c, "Cooperative totals retrieved successfully", TotalsResponse{
		Snapshot: snap,
		Formatted: map[string]string{
			"total_sacco_value":       format.CurrencyIn(h.currency, t.TotalSaccoValue),
			"total_savings":           format.CurrencyIn(h.currency, t.TotalSavings),
			"total_outstanding_loans": format.CurrencyIn(h.currency, t.TotalOutstandingLoans),
			"total_payable_loans":     format.CurrencyIn(h.currency, t.TotalPayableLoans),
			"cash_at_hand":            format.CurrencyIn(h.currency, t.CashAtHand),
			"total_repaid_loan":       format.CurrencyIn(h.currency, t.TotalRepaidLoan),
			"repayment_rate":          format.Percent(snap.Portfolio.RepaymentRate),
			"computed_at":             format.DateTime(snap.ComputedAt),
		},
	})
}

// GetPortfolio returns the filtered loan book and its statistics
// @Summary Loan portfolio
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param status query string false "Loan status"
// @Param risk query string false "Performing | Watch | Substandard | Doubtful | Loss"
// @Param search query string false "Loan id, member number or name"
// @Param arrears query bool false "Only loans in arrears"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/portfolio [get]
func (h *DashboardHandler) GetPortfolio(c *fiber.Ctx) error {
	var req loanFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}
	filter, err := req.toFilter()
	if err != nil {
		return handleLedgerError(c, err, "Failed to get loan portfolio")
	}

	out, err := h.ledgerService.LoanPortfolio(c.UserContext(), filter)
	if err != nil {
		return handleLedgerError(c, err, "Failed to get loan portfolio")
	}

	return response.Success(c, "Loan portfolio retrieved successfully", out)
}

// PortfolioRequest is a caller-supplied loan book
type PortfolioRequest struct {
	Loans  []domain.Loan     `json:"loans"`
	Filter loanFilterRequest `json:"filter"`
}

// ComputePortfolio computes statistics over posted loans without touching the store
// @Summary Portfolio statistics of posted loans
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PortfolioRequest true "Loans and filter"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/portfolio [post]
func (h *DashboardHandler) ComputePortfolio(c *fiber.Ctx) error {
	var req PortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	filter, err := req.Filter.toFilter()
	if err != nil {
		return handleLedgerError(c, err, "Failed to compute portfolio")
	}

	return response.Success(c, "Portfolio computed successfully", h.ledgerService.PortfolioFromRecords(req.Loans, filter))
}
