package handlers

import (
	"errors"
	"log"

	"shopadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles standalone image uploads.
type UploadHandler struct {
	service *services.ImageService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.ImageService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

// HandleUpload uploads every "images" part and records the URL list.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	files, err := imageFiles(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	set, err := h.service.UploadImages(c.UserContext(), files)
	if err != nil {
		if errors.Is(err, services.ErrNoFiles) {
			return respondError(c, fiber.StatusBadRequest, "No files received")
		}
		log.Printf("Error uploading images: %v", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Images uploaded successfully",
		"data":    set,
	})
}
