package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer represents a registered customer of the store. Phone and address
// are optional; only active customers can place orders.
type Customer struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     Email     `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer creates an active customer with a fresh ID and timestamps.
func NewCustomer(firstName, lastName string, email Email, phone string, address *Address) (*Customer, error) {
	now := time.Now()
	customer := &Customer{
		ID:        uuid.New().String(),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := customer.UpdateInfo(firstName, lastName, email, phone, address); err != nil {
		return nil, err
	}
	return customer, nil
}

// ReconstructCustomer rebuilds a customer from stored state.
func ReconstructCustomer(id, firstName, lastName string, email Email, phone string,
	address *Address, active bool, createdAt, updatedAt time.Time) *Customer {
	return &Customer{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Address:   address,
		Active:    active,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// UpdateInfo re-validates and overwrites the customer's personal data.
func (c *Customer) UpdateInfo(firstName, lastName string, email Email, phone string, address *Address) error {
	if strings.TrimSpace(firstName) == "" {
		return NewValidationError("first name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return NewValidationError("last name cannot be empty")
	}
	if email == "" {
		return NewValidationError("email cannot be empty")
	}

	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateEmail replaces the customer's e-mail address.
func (c *Customer) UpdateEmail(newEmail Email) error {
	if newEmail == "" {
		return NewValidationError("email cannot be empty")
	}
	c.Email = newEmail
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateAddress replaces the customer's default address (nil clears it).
func (c *Customer) UpdateAddress(newAddress *Address) {
	c.Address = newAddress
	c.UpdatedAt = time.Now()
}

// UpdatePhone replaces the customer's phone number (blank clears it).
func (c *Customer) UpdatePhone(newPhone string) {
	c.Phone = strings.TrimSpace(newPhone)
	c.UpdatedAt = time.Now()
}

// Activate re-enables the customer account.
func (c *Customer) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}

// Deactivate disables the account; inactive customers cannot place orders.
func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CanPlaceOrders reports whether the customer may create new orders.
func (c *Customer) CanPlaceOrders() bool {
	return c.Active
}
