package handlers

import (
	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/pagination"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LedgerHandler handles member ledger endpoints
type LedgerHandler struct {
	ledgerService *services.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// ListTransactions returns the filtered transaction list, newest first
// @Summary List transactions
// @Description Filtered, enriched and paginated transactions. Members see their own rows.
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param category query string false "all | savings | loans | shares"
// @Param direction query string false "all | Credit | Debit"
// @Param status query string false "all | Completed | Pending | Failed"
// @Param search query string false "Reference, id or notes"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Param user_id query string false "Member id (admin only)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /ledger/transactions [get]
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	userID, err := scopeUserID(c)
	if err != nil {
		return handleLedgerError(c, err, "Failed to list transactions")
	}

	var req filterRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}
	filter, err := req.toFilter()
	if err != nil {
		return handleLedgerError(c, err, "Failed to list transactions")
	}

	out, err := h.ledgerService.ListTransactions(c.UserContext(), userID, filter, pagination.GetParams(c))
	if err != nil {
		return handleLedgerError(c, err, "Failed to list transactions")
	}

	return response.Paginated(c, "Transactions retrieved successfully", out.Transactions, out.Meta)
}

// GetSummary returns the transaction summary over completed rows
// @Summary Transaction summary
// @Description Opening/closing balance and inflow/outflow split over the filtered completed transactions
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "all | savings | loans | shares"
// @Param search query string false "Reference, id or notes"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /ledger/summary [get]
func (h *LedgerHandler) GetSummary(c *fiber.Ctx) error {
	userID, err := scopeUserID(c)
	if err != nil {
		return handleLedgerError(c, err, "Failed to compute summary")
	}

	var req filterRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}
	filter, err := req.toFilter()
	if err != nil {
		return handleLedgerError(c, err, "Failed to compute summary")
	}

	out, err := h.ledgerService.Summary(c.UserContext(), userID, filter)
	if err != nil {
		return handleLedgerError(c, err, "Failed to compute summary")
	}

	return response.Success(c, "Summary computed successfully", out)
}

// SummarizeRequest is a caller-supplied transaction set
type SummarizeRequest struct {
	Transactions []domain.Transaction `json:"transactions"`
	Filter       filterRequest        `json:"filter"`
}

// Summarize computes a summary over posted transactions without touching the store
// @Summary Summarize posted transactions
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SummarizeRequest true "Transactions and filter"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /ledger/summary [post]
func (h *LedgerHandler) Summarize(c *fiber.Ctx) error {
	var req SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	filter, err := req.Filter.toFilter()
	if err != nil {
		return handleLedgerError(c, err, "Failed to compute summary")
	}

	out, err := h.ledgerService.SummarizeRecords(req.Transactions, filter)
	if err != nil {
		return handleLedgerError(c, err, "Failed to compute summary")
	}

	return response.Success(c, "Summary computed successfully", out)
}

// GetMyOverview returns the caller's accounts, loan position and lifetime summary
// @Summary My ledger overview
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /ledger/me [get]
func (h *LedgerHandler) GetMyOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	out, err := h.ledgerService.MemberOverview(c.UserContext(), userID)
	if err != nil {
		return handleLedgerError(c, err, "Failed to get member overview")
	}

	return response.Success(c, "Member overview retrieved successfully", out)
}
