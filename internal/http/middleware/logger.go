package middleware

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/logger"
)

// Logger is a middleware that logs each HTTP request in JSON format to stdout.
func Logger(loc *time.Location) fiber.Handler {
	return LoggerWithWriter(os.Stdout, loc)
}

// LoggerWithWriter logs one JSON record per request to w.
// Fields: ts, request_id, method, path, status, latency (milliseconds).
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	log := logger.New(w, logger.Config{Level: "info", Format: "json"}, loc)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		attrs := []any{
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", float64(time.Since(start).Microseconds()) / 1000,
		}
		if uid := OwnerID(c); uid != "" {
			attrs = append(attrs, "owner_id", uid)
		}
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(c.UserContext(), level, "http request", attrs...)

		return err
	}
}
