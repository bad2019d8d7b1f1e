package handlers

import (
	"strings"

	"shopadmin/internal/media"

	"github.com/gofiber/fiber/v2"
)

// respondData writes the success envelope.
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// respondError writes the failure envelope.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// imageFiles reads the repeated "images" parts of a multipart request. A
// request that is not multipart carries no files.
func imageFiles(c *fiber.Ctx) ([]media.File, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	return media.ReadMultipart(form.File["images"])
}

// formGetter adapts fiber's FormValue to the signature form parsers take.
func formGetter(c *fiber.Ctx) func(string) string {
	return func(key string) string {
		return c.FormValue(key)
	}
}
