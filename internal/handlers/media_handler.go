package handlers

import (
	"log"

	"montra/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MediaHandler exposes the direct-invocation entry point of the derivative
// pipeline.
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// RegisterRoutes registers the media routes with the Fiber app.
func (h *MediaHandler) RegisterRoutes(router fiber.Router) {
	mediaRoutes := router.Group("/media")
	mediaRoutes.Post("/process", h.HandleProcess)
}

// ProcessRequest represents the request body for direct processing.
type ProcessRequest struct {
	BlobURL string `json:"blob_url"`
}

// HandleProcess fetches an existing original by URL or name and runs the
// same transforms as the event-triggered path, returning the derivative
// URLs. Names carrying a derivative suffix are skipped without effect.
func (h *MediaHandler) HandleProcess(c *fiber.Ctx) error {
	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing process request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.BlobURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "blob_url is required",
		})
	}

	result, err := h.mediaService.ProcessByReference(c.UserContext(), req.BlobURL)
	if err != nil {
		log.Printf("Error processing %s: %v", req.BlobURL, err)
		return errorResponse(c, "Image processing failed", err)
	}

	if result.Skipped {
		return c.JSON(fiber.Map{
			"message": "Blob is already a derivative, nothing to do",
			"result":  result,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Image processed successfully",
		"result":  result,
	})
}
