package handlers

import (
	"loja/internal/models"
	"loja/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customers := router.Group("/customers")
	customers.Get("/", h.HandleGetCustomers)
	customers.Post("/", h.HandleRegisterCustomer)
	customers.Get("/:id", h.HandleGetCustomerByID)
	customers.Put("/:id", h.HandleUpdateCustomer)
	customers.Post("/:id/activate", h.HandleActivateCustomer)
	customers.Post("/:id/deactivate", h.HandleDeactivateCustomer)
}

// HandleGetCustomers retrieves all customers, or one by ?email=.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		customer, err := h.service.GetCustomerByEmail(email)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(customerResponse(customer))
	}

	customers, err := h.service.GetAllCustomers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customerListResponse(customers))
}

// HandleGetCustomerByID retrieves a single customer.
func (h *CustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	customer, err := h.service.GetCustomerByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customerResponse(customer))
}

// HandleRegisterCustomer creates a new customer account.
func (h *CustomerHandler) HandleRegisterCustomer(c *fiber.Ctx) error {
	var req CustomerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	address, err := addressFromRequest(req.Address)
	if err != nil {
		return respondError(c, err)
	}

	customer, err := h.service.RegisterCustomer(req.FirstName, req.LastName, req.Email, req.Phone, address)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customerResponse(customer))
}

// HandleUpdateCustomer overwrites a customer's personal data.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	var req CustomerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	address, err := addressFromRequest(req.Address)
	if err != nil {
		return respondError(c, err)
	}

	customer, err := h.service.UpdateCustomer(c.Params("id"), req.FirstName, req.LastName, req.Email, req.Phone, address)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customerResponse(customer))
}

// HandleActivateCustomer re-enables a customer account.
func (h *CustomerHandler) HandleActivateCustomer(c *fiber.Ctx) error {
	customer, err := h.service.ActivateCustomer(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customerResponse(customer))
}

// HandleDeactivateCustomer disables a customer account.
func (h *CustomerHandler) HandleDeactivateCustomer(c *fiber.Ctx) error {
	customer, err := h.service.DeactivateCustomer(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customerResponse(customer))
}

func addressFromRequest(req *AddressRequest) (*models.Address, error) {
	if req == nil {
		return nil, nil
	}
	address, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	return &address, nil
}
