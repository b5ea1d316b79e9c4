package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type badRequest struct {
	code    string
	message string
}

func (b *badRequest) write(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, b.code, b.message)
}

// pageParams reads limit and offset; range clamping is left to the services.
func pageParams(c *fiber.Ctx) (int, int, *badRequest) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, &badRequest{"INVALID_LIMIT", "invalid limit"}
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, &badRequest{"INVALID_OFFSET", "invalid offset"}
	}
	return limit, offset, nil
}
