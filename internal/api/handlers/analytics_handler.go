package handlers

import (
	"github.com/gofiber/fiber/v2"

	"smmagent/internal/service"
)

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: s}
}

func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	return c.Status(fiber.StatusOK).JSON(h.s.Overview(startDate, endDate))
}

func (h *AnalyticsHandler) PlatformAnalytics(c *fiber.Ctx) error {
	platform := c.Params("platform")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	analytics, err := h.s.Platforms(platform, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(analytics)
}

func (h *AnalyticsHandler) TopPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	sortBy := c.Query("sort_by", "engagement")
	return c.Status(fiber.StatusOK).JSON(h.s.Posts(limit, sortBy))
}

func (h *AnalyticsHandler) Trends(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	return c.Status(fiber.StatusOK).JSON(h.s.Trends(days))
}

func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	metric := c.Params("metric")

	performance, err := h.s.Performance(metric)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(performance)
}
