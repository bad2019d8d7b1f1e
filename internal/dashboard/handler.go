package dashboard

import (
	"bytes"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"shopadmin/internal/media"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

var errImageRequired = errors.New("select at least one image")

// page is the data every template receives.
type page struct {
	Title     string
	Nav       string
	Notice    string
	Error     string
	Now       time.Time
	List      ListView
	Product   *models.Product
	Form      *productForm
	Modal     *Modal
	ImageSets []models.ImageSet
	Uploaded  *models.ImageSet
}

// productForm holds the values shown in the create/update form.
type productForm struct {
	ID        string
	Action    string
	Cancel    string
	Name      string
	Price     string
	Quantity  string
	Color     string
	Details   string
	Images    []string
	Staged    []StagedImage
	MaxImages int
	MaxBytes  int
}

// Handler serves the server-rendered dashboard.
type Handler struct {
	products *services.ProductService
	images   *services.ImageService
	renderer *Renderer
	maxBytes int
}

// NewHandler creates a new dashboard Handler. maxBytes is the request body
// limit shown next to the file inputs.
func NewHandler(products *services.ProductService, images *services.ImageService, maxBytes int) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{
		products: products,
		images:   images,
		renderer: renderer,
		maxBytes: maxBytes,
	}, nil
}

// RegisterRoutes registers the dashboard pages with the Fiber app.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard/products", fiber.StatusFound)
	})

	dash := router.Group("/dashboard")
	dash.Get("/products", h.HandleList)
	dash.Get("/products/new", h.HandleNew)
	dash.Post("/products", h.HandleCreate)
	dash.Get("/products/:id", h.HandleView)
	dash.Get("/products/:id/edit", h.HandleEdit)
	dash.Post("/products/:id", h.HandleUpdate)
	dash.Get("/products/:id/delete", h.HandleConfirmDelete)
	dash.Post("/products/:id/delete", h.HandleDelete)
	dash.Get("/images", h.HandleImages)
	dash.Post("/images", h.HandleUploadImages)
}

// HandleList renders the product table.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	products, err := h.products.GetAllProducts(c.UserContext())
	if err != nil {
		log.Printf("Error loading products for dashboard: %v", err)
	}
	p := page{Title: "Products", Nav: "products", List: NewListView().Resolve(products, err)}
	if c.Query("deleted") != "" {
		p.Notice = "Product deleted."
	}
	return h.render(c, fiber.StatusOK, "products.html", p)
}

// HandleView renders one product.
func (h *Handler) HandleView(c *fiber.Ctx) error {
	product, err := h.products.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.productError(c, err)
	}
	p := page{Title: product.Name, Nav: "products", Product: product, Modal: OpenModal(ActionView)}
	if c.Query("saved") != "" {
		p.Notice = "Product saved."
	}
	return h.render(c, fiber.StatusOK, "product.html", p)
}

// HandleNew renders an empty product form.
func (h *Handler) HandleNew(c *fiber.Ctx) error {
	form := h.newForm("", nil)
	return h.render(c, fiber.StatusOK, "form.html", page{Title: "Add product", Nav: "new", Form: form, Modal: OpenModal(ActionCreate)})
}

// HandleEdit renders the form filled with a stored product.
func (h *Handler) HandleEdit(c *fiber.Ctx) error {
	product, err := h.products.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.productError(c, err)
	}
	form := h.newForm(product.ID, product)
	return h.render(c, fiber.StatusOK, "form.html", page{Title: "Edit " + product.Name, Nav: "products", Form: form, Modal: OpenModal(ActionUpdate)})
}

// HandleCreate stores a product from the form. The form requires at least
// one image.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	return h.submitProduct(c, "")
}

// HandleUpdate saves the form over a stored product. Stored images are kept
// when no file is picked; a product left with no image at all is rejected.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	return h.submitProduct(c, c.Params("id"))
}

func (h *Handler) submitProduct(c *fiber.Ctx, id string) error {
	ctx := c.UserContext()
	action, title, nav := ActionCreate, "Add product", "new"
	var existing *models.Product
	if id != "" {
		action, nav = ActionUpdate, "products"
		product, err := h.products.GetProductByID(ctx, id)
		if err != nil {
			return h.productError(c, err)
		}
		existing = product
		title = "Edit " + product.Name
	}
	modal := OpenModal(action)
	if err := modal.Submit(); err != nil {
		return err
	}

	form := h.newForm(id, existing)
	form.Name = c.FormValue("name")
	form.Price = c.FormValue("price")
	form.Quantity = c.FormValue("quantity")
	form.Color = c.FormValue("color")
	form.Details = c.FormValue("details")

	fail := func(status int, err error) error {
		if tErr := modal.Fail(err); tErr != nil {
			return tErr
		}
		return h.render(c, status, "form.html", page{Title: title, Nav: nav, Form: form, Modal: modal})
	}

	selection := &ImageSelection{}
	files, err := pickedFiles(c)
	if err != nil {
		return fail(fiber.StatusBadRequest, err)
	}
	if err := selection.Stage(files...); err != nil {
		return fail(fiber.StatusBadRequest, err)
	}
	form.Staged = selection.Staged()

	input, err := services.ParseProductForm(func(key string) string { return c.FormValue(key) })
	if err != nil {
		return fail(fiber.StatusBadRequest, err)
	}

	if selection.Len() == 0 && (existing == nil || len(existing.Images) == 0) {
		return fail(fiber.StatusBadRequest, errImageRequired)
	}

	var product *models.Product
	if id == "" {
		product, err = h.products.CreateProduct(ctx, input, selection.Files())
	} else {
		product, err = h.products.UpdateProduct(ctx, id, input, selection.Files())
	}
	if err != nil {
		log.Printf("Error saving product from dashboard: %v", err)
		if errors.Is(err, repositories.ErrNotFound) {
			return fail(fiber.StatusNotFound, err)
		}
		return fail(fiber.StatusBadRequest, err)
	}

	if err := modal.Succeed(); err != nil {
		return err
	}
	selection.Reset()
	return c.Redirect("/dashboard/products/"+product.ID+"?saved=1", fiber.StatusSeeOther)
}

// HandleConfirmDelete asks before deleting a product.
func (h *Handler) HandleConfirmDelete(c *fiber.Ctx) error {
	product, err := h.products.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.productError(c, err)
	}
	return h.render(c, fiber.StatusOK, "delete.html", page{Title: "Delete " + product.Name, Nav: "products", Product: product, Modal: OpenModal(ActionDelete)})
}

// HandleDelete deletes a product and returns to the list.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")
	modal := OpenModal(ActionDelete)
	if err := modal.Submit(); err != nil {
		return err
	}

	if err := h.products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return h.productError(c, err)
		}
		log.Printf("Error deleting product %s from dashboard: %v", id, err)
		if tErr := modal.Fail(err); tErr != nil {
			return tErr
		}
		product, getErr := h.products.GetProductByID(ctx, id)
		if getErr != nil {
			return h.productError(c, getErr)
		}
		return h.render(c, fiber.StatusBadRequest, "delete.html", page{Title: "Delete " + product.Name, Nav: "products", Product: product, Modal: modal})
	}

	if err := modal.Succeed(); err != nil {
		return err
	}
	return c.Redirect("/dashboard/products?deleted=1", fiber.StatusSeeOther)
}

// HandleImages renders the standalone upload page.
func (h *Handler) HandleImages(c *fiber.Ctx) error {
	return h.renderImages(c, fiber.StatusOK, nil, nil)
}

// HandleUploadImages uploads the picked files and shows the stored URLs.
func (h *Handler) HandleUploadImages(c *fiber.Ctx) error {
	files, err := pickedFiles(c)
	if err != nil {
		return h.renderImages(c, fiber.StatusBadRequest, nil, err)
	}
	set, err := h.images.UploadImages(c.UserContext(), files)
	if err != nil {
		log.Printf("Error uploading images from dashboard: %v", err)
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrNoFiles) {
			status = fiber.StatusBadRequest
		}
		return h.renderImages(c, status, nil, err)
	}
	return h.renderImages(c, fiber.StatusOK, set, nil)
}

func (h *Handler) renderImages(c *fiber.Ctx, status int, uploaded *models.ImageSet, uploadErr error) error {
	p := page{Title: "Image uploads", Nav: "images", Uploaded: uploaded}
	if uploaded != nil {
		p.Notice = "Images uploaded successfully."
	}
	if uploadErr != nil {
		p.Error = uploadErr.Error()
	}
	sets, err := h.images.ListImageSets(c.UserContext())
	if err != nil {
		log.Printf("Error listing image uploads: %v", err)
		if p.Error == "" {
			p.Error = err.Error()
		}
	}
	p.ImageSets = sets
	return h.render(c, status, "images.html", p)
}

func (h *Handler) newForm(id string, product *models.Product) *productForm {
	form := &productForm{
		ID:        id,
		Action:    "/dashboard/products",
		Cancel:    "/dashboard/products",
		Quantity:  "1",
		Color:     models.DefaultColor,
		MaxImages: MaxImages,
		MaxBytes:  h.maxBytes,
	}
	if id != "" {
		form.Action = "/dashboard/products/" + id
		form.Cancel = "/dashboard/products/" + id
	}
	if product != nil {
		form.Name = product.Name
		form.Price = product.Price.String()
		form.Quantity = strconv.Itoa(product.Quantity)
		form.Color = product.Color
		form.Details = product.Details
		form.Images = product.Images
	}
	return form
}

func (h *Handler) productError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return h.render(c, fiber.StatusNotFound, "not_found.html", page{Title: "Not found", Nav: "products", Error: "Product not found"})
	}
	log.Printf("Error loading product %s for dashboard: %v", c.Params("id"), err)
	return h.render(c, fiber.StatusInternalServerError, "not_found.html", page{Title: "Error", Nav: "products", Error: err.Error()})
}

func (h *Handler) render(c *fiber.Ctx, status int, name string, p page) error {
	p.Now = time.Now()
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, p); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// pickedFiles reads the non-empty "images" parts of a multipart form.
func pickedFiles(c *fiber.Ctx) ([]media.File, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files, err := media.ReadMultipart(form.File["images"])
	if err != nil {
		return nil, err
	}
	picked := files[:0]
	for _, f := range files {
		if f.Size > 0 {
			picked = append(picked, f)
		}
	}
	return picked, nil
}
