package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRequest_ToFilter(t *testing.T) {
	f, err := filterRequest{Category: " Savings ", Direction: "Credit", Start: "2024-01-01"}.toFilter()
	require.NoError(t, err)

	assert.Equal(t, domain.CategorySavings, f.Category)
	assert.Equal(t, "Credit", f.Direction)
	assert.True(t, f.DateRangeActive, "one bound is enough to activate the range")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.Start)
	assert.True(t, f.End.IsZero())
}

func TestFilterRequest_NoDates(t *testing.T) {
	f, err := filterRequest{}.toFilter()
	require.NoError(t, err)
	assert.False(t, f.DateRangeActive)
}

func TestFilterRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  filterRequest
	}{
		{"bad start", filterRequest{Start: "2024/01/01"}},
		{"bad end", filterRequest{End: "yesterday"}},
		{"inverted", filterRequest{Start: "2024-02-01", End: "2024-01-31"}},
		{"direction", filterRequest{Direction: "Sideways"}},
		{"status", filterRequest{Status: "Reversed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.toFilter()
			assert.ErrorIs(t, err, domain.ErrInvalidFilter)
		})
	}
}

func TestLoanFilterRequest_ToFilter(t *testing.T) {
	f, err := loanFilterRequest{Status: "Approved", Risk: "Doubtful", Arrears: true}.toFilter()
	require.NoError(t, err)
	assert.Equal(t, domain.RiskDoubtful, f.RiskCategory)
	assert.True(t, f.ArrearsOnly)

	_, err = loanFilterRequest{Risk: "all"}.toFilter()
	assert.NoError(t, err)

	_, err = loanFilterRequest{Risk: "Great"}.toFilter()
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestHandleLedgerError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid filter",
			err:        fmt.Errorf("failed to filter transactions: %w", fmt.Errorf("%w: category %q", domain.ErrInvalidFilter, "x")),
			wantStatus: fiber.StatusBadRequest,
			wantBody:   "invalid filter",
		},
		{
			name:       "aggregation failure",
			err:        fmt.Errorf("failed to filter transactions: %w", &domain.AggregationError{Stage: "search", Cause: errors.New("boom")}),
			wantStatus: fiber.StatusInternalServerError,
			wantBody:   "Ledger aggregation failed",
		},
		{
			name:       "unauthorized",
			err:        domain.ErrUnauthorized,
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   "Unauthorized",
		},
		{
			name:       "store failure",
			err:        errors.New("failed to load loans: timeout"),
			wantStatus: fiber.StatusInternalServerError,
			wantBody:   "fallback message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return handleLedgerError(c, tt.err, "fallback message")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}

func TestScopeUserID(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		role    string
		query   string
		want    string
		wantErr bool
	}{
		{name: "member", userID: "u1", role: jwt.RoleMember, query: "?user_id=u2", want: "u1"},
		{name: "admin picks member", userID: "a1", role: jwt.RoleAdmin, query: "?user_id=u2", want: "u2"},
		{name: "admin sees all", userID: "a1", role: jwt.RoleAdmin, want: ""},
		{name: "anonymous", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got string
			var gotErr error
			app.Get("/", func(c *fiber.Ctx) error {
				if tt.userID != "" {
					c.Locals("claims", &jwt.Claims{UserID: tt.userID, Role: tt.role})
				}
				got, gotErr = scopeUserID(c)
				return nil
			})

			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil), -1)
			require.NoError(t, err)

			if tt.wantErr {
				assert.ErrorIs(t, gotErr, domain.ErrUnauthorized)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
