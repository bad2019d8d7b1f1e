package handlers

import (
	"bytes"
	"errors"
	"log"
	"time"

	"shopadmin/internal/media"
	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	// Must precede /:id.
	productRoutes.Get("/export", h.HandleExportProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products, newest first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	return respondData(c, fiber.StatusOK, products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(c.UserContext(), productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleCreateProduct creates a product from a multipart form.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, files, err := h.readProductForm(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(c.UserContext(), input, files)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	return respondData(c, fiber.StatusCreated, product)
}

// HandleUpdateProduct overwrites a product. Images are replaced only when
// the form carries new files.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	input, files, err := h.readProductForm(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateProduct(c.UserContext(), productID, input, files)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("Error updating product %s: %v", productID, err)
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("Error deleting product %s: %v", productID, err)
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	return respondData(c, fiber.StatusOK, fiber.Map{})
}

// HandleExportProducts streams every product as an xlsx attachment.
func (h *ProductHandler) HandleExportProducts(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportProducts(c.UserContext(), &buf); err != nil {
		log.Printf("Error exporting products: %v", err)
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Attachment(services.ExportFilename(time.Now()))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func (h *ProductHandler) readProductForm(c *fiber.Ctx) (services.ProductInput, []media.File, error) {
	input, err := services.ParseProductForm(formGetter(c))
	if err != nil {
		return input, nil, err
	}
	files, err := imageFiles(c)
	if err != nil {
		return input, nil, err
	}
	return input, files, nil
}
