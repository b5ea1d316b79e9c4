package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"realtyapi/internal/config"
	"realtyapi/internal/logger"
)

const (
	// OwnerIDLocalKey holds the authenticated owner uid in Fiber locals.
	OwnerIDLocalKey = "owner_id"
	// InternalTokenHeader carries the shared secret of internal callers.
	InternalTokenHeader = "X-Internal-Token"
)

var errEmptySubject = errors.New("token has no subject")

// Auth validates the bearer token and exposes its subject as the owner id.
// Requests without a valid token get 401 UNAUTHENTICATED.
func Auth(cfg config.AuthConfig) fiber.Handler {
	secret := []byte(cfg.JWTSecret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" || len(secret) == 0 {
			return abort(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		ownerID, err := parseSubject(parser, strings.TrimSpace(raw), secret)
		if err != nil {
			logger.Debug(c.UserContext(), "bearer token rejected", "error", err)
			return abort(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		c.Locals(OwnerIDLocalKey, ownerID)
		c.SetUserContext(logger.WithOwnerID(c.UserContext(), ownerID))
		return c.Next()
	}
}

func parseSubject(p *jwt.Parser, raw string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := p.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return "", errEmptySubject
	}
	return claims.Subject, nil
}

// OwnerID returns the uid stored by Auth, or "" when the request is anonymous.
func OwnerID(c *fiber.Ctx) string {
	uid, _ := c.Locals(OwnerIDLocalKey).(string)
	return uid
}

// InternalToken admits requests presenting the configured shared token.
// An empty configured token rejects every request.
func InternalToken(token string) fiber.Handler {
	want := []byte(token)
	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(InternalTokenHeader))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			return abort(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}
		return c.Next()
	}
}
