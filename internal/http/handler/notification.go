package handler

import (
	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/http/middleware"
	"realtyapi/internal/service"
)

// ListNotifications returns the caller's notifications, newest first.
//
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.NotificationListResult
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/v1/notifications [get]
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, bad := pageParams(c)
		if bad != nil {
			return bad.write(c)
		}
		res, err := svc.List(c.UserContext(), middleware.OwnerID(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
