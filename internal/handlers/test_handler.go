package handlers

import (
	"errors"
	"fmt"
	"log"

	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TestHandler exposes the scratch records used to try the store out.
type TestHandler struct {
	service *services.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(service *services.TestService) *TestHandler {
	return &TestHandler{service: service}
}

// RegisterRoutes registers the test record routes with the Fiber app.
func (h *TestHandler) RegisterRoutes(router fiber.Router) {
	testRoutes := router.Group("/test")
	testRoutes.Get("/", h.HandleList)
	testRoutes.Post("/", h.HandleCreate)
	testRoutes.Get("/:id", h.HandleGet)
	testRoutes.Put("/:id", h.HandleUpdate)
	testRoutes.Delete("/:id", h.HandleDelete)
}

func (h *TestHandler) HandleList(c *fiber.Ctx) error {
	records, err := h.service.List(c.UserContext())
	if err != nil {
		log.Printf("Error listing test records: %v", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}
	return respondData(c, fiber.StatusOK, records)
}

func (h *TestHandler) HandleGet(c *fiber.Ctx) error {
	record, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.failure(c, err)
	}
	return respondData(c, fiber.StatusOK, record)
}

// HandleCreate stores the JSON object body as a new record.
func (h *TestHandler) HandleCreate(c *fiber.Ctx) error {
	fields, err := decodeObject(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	record, err := h.service.Create(c.UserContext(), fields)
	if err != nil {
		log.Printf("Error creating test record: %v", err)
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	return respondData(c, fiber.StatusCreated, record)
}

// HandleUpdate merges the JSON object body into the record.
func (h *TestHandler) HandleUpdate(c *fiber.Ctx) error {
	patch, err := decodeObject(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	record, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return h.failure(c, err)
	}
	return respondData(c, fiber.StatusOK, record)
}

func (h *TestHandler) HandleDelete(c *fiber.Ctx) error {
	record, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.failure(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Test deleted successfully",
		"data":    record,
	})
}

func (h *TestHandler) failure(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return respondError(c, fiber.StatusNotFound, "Test not found")
	}
	log.Printf("Error handling test record %s: %v", c.Params("id"), err)
	return respondError(c, fiber.StatusInternalServerError, err.Error())
}

// decodeObject reads a JSON object body. Anything else, including a JSON
// null, is rejected.
func decodeObject(c *fiber.Ctx) (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if fields == nil {
		return nil, errors.New("invalid JSON body: expected an object")
	}
	return fields, nil
}
