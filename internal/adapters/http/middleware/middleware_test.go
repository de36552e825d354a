package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"sacco-ledger/internal/pkg/jwt"
	"sacco-ledger/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(zerolog.Nop()))
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Equal(t, c.Locals("requestID"), c.GetRespHeader(RequestIDHeader))
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err)

	given := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, given)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, given, resp.Header.Get(RequestIDHeader))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(RequestIDHeader))
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "s"
	app := fiber.New()
	app.Use(AuthMiddleware(secret))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userID").(string) + "|" + c.Locals("role").(string))
	})
	app.Get("/admin", AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	member, err := jwt.GenerateAccessToken("u1", "SAC-1", jwt.RoleMember, secret, 5)
	require.NoError(t, err)
	expired, err := jwt.GenerateAccessToken("u1", "SAC-1", jwt.RoleMember, secret, -5)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		want   int
	}{
		{name: "no token", path: "/", want: fiber.StatusUnauthorized},
		{name: "header", path: "/", header: "Bearer " + member, want: fiber.StatusOK},
		{name: "cookie", path: "/", cookie: member, want: fiber.StatusOK},
		{name: "expired", path: "/", header: "Bearer " + expired, want: fiber.StatusUnauthorized},
		{name: "wrong scheme", path: "/", header: "Basic " + member, want: fiber.StatusUnauthorized},
		{name: "member on admin route", path: "/admin", header: "Bearer " + member, want: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", "access_token="+tt.cookie)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_EnrichesRequestLogger(t *testing.T) {
	const secret = "s"
	app := fiber.New()
	app.Use(RequestID(zerolog.Nop()))
	app.Use(AuthMiddleware(secret))

	var ctxLogger zerolog.Logger
	app.Get("/", func(c *fiber.Ctx) error {
		ctxLogger = logger.FromContext(c.UserContext())
		return nil
	})

	tok, err := jwt.GenerateAccessToken("u1", "SAC-1", jwt.RoleAdmin, secret, 5)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	_, err = app.Test(req, -1)
	require.NoError(t, err)

	// Nop parent keeps the derived logger disabled
	assert.Equal(t, zerolog.Disabled, ctxLogger.GetLevel())
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/private", PrivateCacheHeaders(90*time.Second), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/missing", PrivateCacheHeaders(90*time.Second), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/none", NoCacheHeaders(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "private, max-age=90", resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil), -1)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest("GET", "/none", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))
}

func TestAuthMiddleware_StoresClaims(t *testing.T) {
	const secret = "s"
	app := fiber.New()
	app.Use(AuthMiddleware(secret))

	var claims *jwt.Claims
	app.Get("/", func(c *fiber.Ctx) error {
		claims, _ = c.Locals("claims").(*jwt.Claims)
		return nil
	})

	tok, err := jwt.GenerateAccessToken("a1", "SAC-9", jwt.RoleAdmin, secret, 5)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	_, err = app.Test(req, -1)
	require.NoError(t, err)

	require.NotNil(t, claims)
	assert.Equal(t, "a1", claims.UserID)
	assert.Equal(t, "SAC-9", claims.MembNo)
	assert.True(t, claims.IsAdmin())
}
