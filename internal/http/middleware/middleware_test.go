package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/config"
)

type envelope struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})
}

func TestRecovery(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(Recovery())

	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/panic", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotEmpty(t, body.RequestID)

	resp, _ = app.Test(httptest.NewRequest("GET", "/ok", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func signToken(t *testing.T, ownerID, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   ownerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuth(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret-key"}

	valid := signToken(t, "u1", cfg.JWTSecret, time.Hour)
	expired := signToken(t, "u1", cfg.JWTSecret, -time.Minute)
	otherKey := signToken(t, "u1", "other", time.Hour)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	app := fiber.New()
	app.Use(RequestID())
	app.Use(Auth(cfg))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(OwnerID(c))
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", authHeader: "Bearer " + valid, wantStatus: fiber.StatusOK, wantBody: "u1"},
		{name: "missing header", wantStatus: fiber.StatusUnauthorized},
		{name: "invalid format", authHeader: valid, wantStatus: fiber.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer invalid.token.here", wantStatus: fiber.StatusUnauthorized},
		{name: "expired token", authHeader: "Bearer " + expired, wantStatus: fiber.StatusUnauthorized},
		{name: "wrong key", authHeader: "Bearer " + otherKey, wantStatus: fiber.StatusUnauthorized},
		{name: "no subject", authHeader: "Bearer " + noSubject, wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.authHeader)
			}
			resp, _ := app.Test(req)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			buf := new(bytes.Buffer)
			buf.ReadFrom(resp.Body)
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, tt.wantBody, buf.String())
				return
			}
			var body envelope
			require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
			assert.Equal(t, "UNAUTHENTICATED", body.Error.Code)
		})
	}
}

func TestInternalToken(t *testing.T) {
	newApp := func(token string) *fiber.App {
		app := fiber.New()
		app.Use(InternalToken(token))
		app.Patch("/x", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
		return app
	}

	tests := []struct {
		name       string
		configured string
		sent       string
		wantStatus int
	}{
		{name: "matching token", configured: "s3cret", sent: "s3cret", wantStatus: fiber.StatusNoContent},
		{name: "wrong token", configured: "s3cret", sent: "nope", wantStatus: fiber.StatusUnauthorized},
		{name: "missing token", configured: "s3cret", wantStatus: fiber.StatusUnauthorized},
		{name: "unconfigured rejects all", configured: "", sent: "", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PATCH", "/x", nil)
			if tt.sent != "" {
				req.Header.Set(InternalTokenHeader, tt.sent)
			}
			resp, _ := newApp(tt.configured).Test(req)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
