package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"smmagent/internal/platforms"
	"smmagent/internal/scheduler"
	"smmagent/internal/service"
	"smmagent/internal/transfer"
)

type SocialHandler struct {
	ds    service.DispatchService
	sched *scheduler.Scheduler
}

func NewSocialHandler(ds service.DispatchService, sched *scheduler.Scheduler) *SocialHandler {
	return &SocialHandler{ds: ds, sched: sched}
}

func (h *SocialHandler) PublishPost(c *fiber.Ctx) error {
	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	outcomes, err := h.ds.Publish(c.Context(), req.Post, req.Platforms)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"results": outcomes})
}

func (h *SocialHandler) SchedulePosts(c *fiber.Ctx) error {
	var req transfer.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	result, err := h.sched.SchedulePosts(req.Posts, req.ScheduleType, req.Platforms)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SocialHandler) StartScheduler(c *fiber.Ctx) error {
	h.sched.Start()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "running",
		"pending": h.sched.PendingCount(),
	})
}

func (h *SocialHandler) StopScheduler(c *fiber.Ctx) error {
	h.sched.Stop()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "stopped",
		"pending": h.sched.PendingCount(),
	})
}

func (h *SocialHandler) SchedulerStatus(c *fiber.Ctx) error {
	status := "stopped"
	if h.sched.Running() {
		status = "running"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  status,
		"pending": h.sched.PendingCount(),
	})
}

func (h *SocialHandler) GetPostAnalytics(c *fiber.Ctx) error {
	platform := c.Params("platform")
	postID := c.Params("post_id")

	analytics, err := h.ds.GetAnalytics(c.Context(), platform, postID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(analytics)
}

func (h *SocialHandler) DeletePost(c *fiber.Ctx) error {
	platform := c.Params("platform")
	postID := c.Params("post_id")

	if err := h.ds.DeletePost(c.Context(), platform, postID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": postID})
}

func (h *SocialHandler) UpdatePost(c *fiber.Ctx) error {
	platform := c.Params("platform")
	postID := c.Params("post_id")

	var req transfer.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := h.ds.UpdatePost(c.Context(), platform, postID, req.NewText); err != nil {
		if errors.Is(err, platforms.ErrEditNotSupported) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"updated": postID})
}

func (h *SocialHandler) ListPlatforms(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"platforms": h.ds.SupportedPlatforms(),
	})
}

func (h *SocialHandler) TestConnection(c *fiber.Ctx) error {
	platform := c.Params("platform")
	ok := h.ds.TestConnection(c.Context(), platform)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"platform":  platform,
		"connected": ok,
	})
}
