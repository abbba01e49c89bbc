package handlers

import (
	"loja/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleGetProducts)
	products.Post("/", h.HandleCreateProduct)
	products.Get("/available", h.HandleGetAvailableProducts)
	products.Get("/categories", h.HandleGetCategories)
	products.Get("/search", h.HandleSearchProducts)
	products.Get("/category/:category", h.HandleGetProductsByCategory)
	products.Get("/:id", h.HandleGetProductByID)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
	products.Post("/:id/stock/add", h.HandleAddStock)
	products.Post("/:id/stock/remove", h.HandleRemoveStock)
	products.Post("/:id/activate", h.HandleActivateProduct)
	products.Post("/:id/deactivate", h.HandleDeactivateProduct)
}

// HandleGetProducts retrieves the whole catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productListResponse(products))
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productResponse(product))
}

// HandleGetProductsByCategory retrieves every product in a category.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.service.GetProductsByCategory(c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productListResponse(products))
}

// HandleSearchProducts searches the catalog by name (?name=).
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "query parameter 'name' is required",
		})
	}

	products, err := h.service.SearchProductsByName(name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productListResponse(products))
}

// HandleGetAvailableProducts retrieves active products with stock.
func (h *ProductHandler) HandleGetAvailableProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAvailableProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productListResponse(products))
}

// HandleGetCategories retrieves the distinct catalog categories.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreateProduct adds a new product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	price, err := req.Price.toDomain()
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.CreateProduct(req.Name, req.Description, price, req.StockQuantity, req.Category)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(productResponse(product))
}

// HandleUpdateProduct overwrites a product's catalog data.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	price, err := req.Price.toDomain()
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.UpdateProduct(c.Params("id"), req.Name, req.Description, price, req.StockQuantity, req.Category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productResponse(product))
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddStock increments a product's stock.
func (h *ProductHandler) HandleAddStock(c *fiber.Ctx) error {
	var req StockRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.AddStock(c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productResponse(product))
}

// HandleRemoveStock decrements a product's stock.
func (h *ProductHandler) HandleRemoveStock(c *fiber.Ctx) error {
	var req StockRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.RemoveStock(c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productResponse(product))
}

// HandleActivateProduct puts a product back on sale.
func (h *ProductHandler) HandleActivateProduct(c *fiber.Ctx) error {
	product, err := h.service.ActivateProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productResponse(product))
}

// HandleDeactivateProduct takes a product off sale.
func (h *ProductHandler) HandleDeactivateProduct(c *fiber.Ctx) error {
	product, err := h.service.DeactivateProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productResponse(product))
}
