package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"realtyapi/internal/http/middleware"
	"realtyapi/internal/service"
)

type verificationRequest struct {
	Status string `json:"status"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

// ListDocuments lists the caller's documents with limit & offset.
//
// @Summary List documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Failure 400 {object} errorPayload
// @Router /api/v1/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
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

// UploadDocument stores a multipart file (field name: file) as pending verification.
//
// @Summary Upload document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "document"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Router /api/v1/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), middleware.OwnerID(c), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns one of the caller's documents.
//
// @Summary Get document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "document id"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Router /api/v1/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return invalidID(c)
		}
		doc, err := svc.Get(c.UserContext(), middleware.OwnerID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument returns a short-lived download link.
//
// @Summary Document download link
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "document id"
// @Success 200 {object} downloadResponse
// @Failure 404 {object} errorPayload
// @Router /api/v1/documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return invalidID(c)
		}
		u, err := svc.DownloadURL(c.UserContext(), middleware.OwnerID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(downloadResponse{URL: u})
	}
}

// DeleteDocument removes one of the caller's documents.
//
// @Summary Delete document
// @Tags documents
// @Security BearerAuth
// @Param id path string true "document id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/v1/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), middleware.OwnerID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UpdateVerificationStatus records a verification result reported by the
// verification pipeline and returns the before/after change.
//
// @Summary Record verification result
// @Tags internal
// @Accept json
// @Produce json
// @Param X-Internal-Token header string true "shared token"
// @Param id path string true "document id"
// @Param body body verificationRequest true "new status"
// @Success 200 {object} model.DocumentChange
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /internal/documents/{id}/verification [patch]
func UpdateVerificationStatus(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return invalidID(c)
		}
		var req verificationRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		change, err := svc.UpdateVerificationStatus(c.UserContext(), id, req.Status)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(change)
	}
}

func documentID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}
