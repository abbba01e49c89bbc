package handlers

import (
	"log"

	"loja/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Request DTOs. Shape validation (presence, format) happens here via the
// validator; business rules stay in the domain.

type MoneyRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" validate:"required,len=3"`
}

type AddressRequest struct {
	Street       string `json:"street" validate:"required"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	ZipCode      string `json:"zip_code" validate:"required"`
	Country      string `json:"country"`
}

type ProductRequest struct {
	Name          string       `json:"name" validate:"required"`
	Description   string       `json:"description" validate:"required"`
	Price         MoneyRequest `json:"price" validate:"required"`
	StockQuantity int          `json:"stock_quantity" validate:"gte=0"`
	Category      string       `json:"category" validate:"required"`
}

type StockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerID      string         `json:"customer_id" validate:"required"`
	DeliveryAddress AddressRequest `json:"delivery_address" validate:"required"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CustomerRequest struct {
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Phone     string          `json:"phone"`
	Address   *AddressRequest `json:"address"`
}

func (r MoneyRequest) toDomain() (models.Money, error) {
	return models.NewMoneyFromFloat(r.Amount, r.Currency)
}

func (r AddressRequest) toDomain() (models.Address, error) {
	return models.NewAddress(r.Street, r.Number, r.Complement, r.Neighborhood,
		r.City, r.State, r.ZipCode, r.Country)
}

// Response DTOs. Money is rendered as a fixed two-decimal string plus
// currency, so clients never see float drift.

type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type ProductResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Price         MoneyResponse `json:"price"`
	StockQuantity int           `json:"stock_quantity"`
	Category      string        `json:"category"`
	Active        bool          `json:"active"`
	Available     bool          `json:"available"`
}

type OrderItemResponse struct {
	ID          string        `json:"id"`
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Quantity    int           `json:"quantity"`
	TotalPrice  MoneyResponse `json:"total_price"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	Items           []OrderItemResponse `json:"items"`
	DeliveryAddress models.Address      `json:"delivery_address"`
	Status          string              `json:"status"`
	TotalAmount     MoneyResponse       `json:"total_amount"`
}

type CustomerResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Address   *models.Address `json:"address,omitempty"`
	Active    bool            `json:"active"`
}

func moneyResponse(m models.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount.StringFixed(2), Currency: m.Currency}
}

func productResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         moneyResponse(p.Price),
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		Active:        p.Active,
		Available:     p.IsAvailable(),
	}
}

func productListResponse(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productResponse(&products[i]))
	}
	return out
}

func orderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   moneyResponse(item.UnitPrice),
			Quantity:    item.Quantity,
			TotalPrice:  moneyResponse(item.TotalPrice),
		})
	}
	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Items:           items,
		DeliveryAddress: o.DeliveryAddress,
		Status:          o.Status.String(),
		TotalAmount:     moneyResponse(o.TotalAmount),
	}
}

func orderListResponse(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderResponse(&orders[i]))
	}
	return out
}

func customerResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email.String(),
		Phone:     c.Phone,
		Address:   c.Address,
		Active:    c.Active,
	}
}

func customerListResponse(customers []models.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, customerResponse(&customers[i]))
	}
	return out
}

// parseBody binds and shape-validates the request body.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return models.NewValidationError("invalid request body: %v", err)
	}
	if err := validate.Struct(dest); err != nil {
		return models.NewValidationError("invalid request body: %v", err)
	}
	return nil
}

// respondError maps the domain error taxonomy onto HTTP statuses:
// NotFound 404, Validation 400, IllegalState 409, anything else 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case models.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case models.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case models.IsIllegalState(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
		})
	}
}
