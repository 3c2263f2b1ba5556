package rest

import (
	"github.com/gofiber/fiber/v2"

	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
	"github.com/postline/postline/pkg/utils"
)

// Schedule exposes read-only views over the schedule store so operators can
// watch a long dispatcher run without touching the JSON files directly.
type Schedule struct {
	Store domainSchedule.Store
}

func InitRestSchedule(app fiber.Router, store domainSchedule.Store) Schedule {
	handler := Schedule{Store: store}

	group := app.Group("/api/schedules")
	group.Get("/", handler.List)
	group.Get("/:name", handler.Get)

	return handler
}

func (h *Schedule) List(c *fiber.Ctx) error {
	docs, err := h.Store.List()
	if err != nil {
		return c.Status(500).JSON(utils.ResponseData{
			Status:  500,
			Code:    "INTERNAL_SERVER_ERROR",
			Message: err.Error(),
		})
	}

	type summary struct {
		Name     string `json:"name"`
		Platform string `json:"platform"`
		Total    int    `json:"total"`
		Pending  int    `json:"pending"`
	}
	summaries := make([]summary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, summary{
			Name:     domainSchedule.DocumentName(doc.CSVPath),
			Platform: doc.Platform.String(),
			Total:    len(doc.Posts),
			Pending:  doc.PendingCount(),
		})
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Schedule documents retrieved",
		Results: summaries,
	})
}

func (h *Schedule) Get(c *fiber.Ctx) error {
	name := c.Params("name")

	doc, err := h.Store.Get(name)
	if err != nil {
		status := 500
		code := "INTERNAL_SERVER_ERROR"
		if generic, ok := err.(pkgError.GenericError); ok {
			status = generic.StatusCode()
			code = generic.ErrCode()
		}
		return c.Status(status).JSON(utils.ResponseData{
			Status:  status,
			Code:    code,
			Message: err.Error(),
		})
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Schedule document retrieved",
		Results: doc,
	})
}
