package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"smmagent/internal/repository"
	"smmagent/internal/service"
	"smmagent/internal/transfer"
)

type ContentHandler struct {
	s service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{s: s}
}

func (h *ContentHandler) GenerateContent(c *fiber.Ctx) error {
	var req transfer.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	content, err := h.s.GenerateContent(c.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(content)
}

func (h *ContentHandler) GeneratePosts(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	count := c.QueryInt("count", 5)
	tone := c.Query("tone", "professional")

	posts, err := h.s.GeneratePosts(c.Context(), productID, count, tone)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *ContentHandler) GenerateImages(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	count := c.QueryInt("count", 3)

	images, err := h.s.GenerateImages(c.Context(), productID, count)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"images": images})
}

func (h *ContentHandler) GenerateVideoScripts(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	count := c.QueryInt("count", 2)

	scripts, err := h.s.GenerateVideoScripts(c.Context(), productID, count)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"video_scripts": scripts})
}

func (h *ContentHandler) OptimizeContent(c *fiber.Ctx) error {
	var req transfer.OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.Post == nil || req.Platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "post and platform are required",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.s.OptimizeForPlatform(req.Post, req.Platform))
}

func (h *ContentHandler) AnalyzeContent(c *fiber.Ctx) error {
	var req transfer.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.Post == nil || req.Post.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "post text is required",
		})
	}

	analysis, err := h.s.Analyze(c.Context(), req.Post.Text)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(analysis)
}

func (h *ContentHandler) GenerateCalendar(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	days := c.QueryInt("days", 30)
	postsPerDay := c.QueryInt("posts_per_day", 1)

	calendar, err := h.s.Calendar(c.Context(), productID, days, postsPerDay)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"calendar": calendar})
}
