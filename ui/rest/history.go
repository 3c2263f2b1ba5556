package rest

import (
	"context"

	"github.com/gofiber/fiber/v2"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	"github.com/postline/postline/pkg/utils"
)

// IHistoryReader is the read side of the upload audit trail.
type IHistoryReader interface {
	ListUploads(ctx context.Context, p domainPlatform.Platform, limit int) ([]domainSchedule.UploadRecord, error)
}

// History exposes the publish audit trail kept by the dispatcher.
type History struct {
	Reader IHistoryReader
}

func InitRestHistory(app fiber.Router, reader IHistoryReader) History {
	handler := History{Reader: reader}
	app.Get("/api/history/:platform", handler.List)
	return handler
}

func (h *History) List(c *fiber.Ctx) error {
	p, err := domainPlatform.Parse(c.Params("platform"))
	if err != nil {
		return c.Status(400).JSON(utils.ResponseData{
			Status:  400,
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	}

	records, err := h.Reader.ListUploads(c.UserContext(), p, c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(500).JSON(utils.ResponseData{
			Status:  500,
			Code:    "INTERNAL_SERVER_ERROR",
			Message: err.Error(),
		})
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Upload history retrieved",
		Results: records,
	})
}
