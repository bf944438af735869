package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/oliweira/back-mrg/internal/models"
	"github.com/oliweira/back-mrg/internal/services"
)

// Error messages returned to clients.
const (
	msgInvalidBody   = "Corpo da requisição inválido."
	msgMissingFields = "Nome, preço e quantidade são obrigatórios."
	msgNotFound      = "Produto não encontrado."
	msgListFailed    = "Erro interno do servidor ao buscar produtos."
	msgCreateFailed  = "Erro interno do servidor ao criar produto."
	msgUpdateFailed  = "Erro interno do servidor ao atualizar produto."
	msgDeleteFailed  = "Erro interno do servidor ao deletar produto."
)

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

// RegisterRoutes registers the product routes on router, which is expected to
// be mounted at the products base path.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleListProducts)
	router.Post("/", h.HandleCreateProduct)
	router.Put("/:id", h.HandleUpdateProduct)
	router.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns every product.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, msgListFailed)
	}

	log.Printf("GET %s called. Returning %d products.", c.Path(), len(products))
	return c.JSON(products)
}

// HandleCreateProduct creates a product from the request body and echoes the
// accepted input back with its new id.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	created, err := h.service.CreateProduct(c.UserContext(), &input)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  msgMissingFields,
				"fields": validationErr.Fields,
			})
		}
		log.Printf("Error creating product: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, msgCreateFailed)
	}

	log.Printf("Product created with ID: %d", created.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct replaces the product identified by the :id path parameter.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return errorResponse(c, fiber.StatusNotFound, msgNotFound)
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing update request body for product %d: %v", id, err)
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), id, &product)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, msgNotFound)
		}
		log.Printf("Error updating product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, msgUpdateFailed)
	}

	log.Printf("Product updated: %d", id)
	return c.JSON(updated)
}

// HandleDeleteProduct removes the product identified by the :id path parameter.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return errorResponse(c, fiber.StatusNotFound, msgNotFound)
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, msgNotFound)
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, msgDeleteFailed)
	}

	log.Printf("Product deleted: %d", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// productID parses the :id parameter. An id that is not an integer cannot match
// any row, so callers answer it with 404.
func productID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
