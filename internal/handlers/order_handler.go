package handlers

import (
	"loja/internal/models"
	"loja/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleGetOrders)
	orders.Post("/", h.HandleCreateOrder)
	orders.Get("/customer/:customerId", h.HandleGetOrdersByCustomer)
	orders.Get("/:id", h.HandleGetOrderByID)
	orders.Post("/:id/items", h.HandleAddItem)
	orders.Delete("/:id/items/:itemId", h.HandleRemoveItem)
	orders.Post("/:id/confirm", h.HandleConfirmOrder)
	orders.Post("/:id/cancel", h.HandleCancelOrder)
	orders.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders retrieves all orders, optionally filtered by ?status=.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		orders, err := h.service.GetOrdersByStatus(status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(orderListResponse(orders))
	}

	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderListResponse(orders))
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// HandleGetOrdersByCustomer retrieves a customer's orders, optionally
// filtered by ?status=.
func (h *OrderHandler) HandleGetOrdersByCustomer(c *fiber.Ctx) error {
	customerID := c.Params("customerId")

	if status := c.Query("status"); status != "" {
		orders, err := h.service.GetOrdersByCustomerAndStatus(customerID, status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(orderListResponse(orders))
	}

	orders, err := h.service.GetOrdersByCustomer(customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderListResponse(orders))
}

// HandleCreateOrder creates a new empty order for a customer.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	address, err := req.DeliveryAddress.toDomain()
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.service.CreateOrder(req.CustomerID, address)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
}

// HandleAddItem adds a product to the order.
func (h *OrderHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	order, err := h.service.AddItem(c.Params("id"), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// HandleRemoveItem removes an item from the order.
func (h *OrderHandler) HandleRemoveItem(c *fiber.Ctx) error {
	order, err := h.service.RemoveItem(c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// HandleConfirmOrder confirms a pending order.
func (h *OrderHandler) HandleConfirmOrder(c *fiber.Ctx) error {
	order, err := h.service.Confirm(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// HandleCancelOrder cancels the order and restores product stock.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.service.Cancel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// HandleUpdateOrderStatus advances the order along the fulfilment path
// (PREPARING, SHIPPED, DELIVERED). Confirmation and cancellation have their
// own endpoints.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	orderID := c.Params("id")
	var order *models.Order
	switch status {
	case models.OrderStatusPreparing:
		order, err = h.service.StartPreparing(orderID)
	case models.OrderStatusShipped:
		order, err = h.service.Ship(orderID)
	case models.OrderStatusDelivered:
		order, err = h.service.Deliver(orderID)
	default:
		return respondError(c, models.NewValidationError(
			"status %s cannot be set directly; use the confirm or cancel endpoints", status))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}
