package services

import (
	"loja/internal/models"
	"loja/internal/repositories"
)

// CustomerService handles customer registration and account management.
type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// RegisterCustomer creates a new active customer. E-mail addresses are
// unique.
func (s *CustomerService) RegisterCustomer(firstName, lastName, email, phone string,
	address *models.Address) (*models.Customer, error) {
	parsedEmail, err := models.NewEmail(email)
	if err != nil {
		return nil, err
	}
	exists, err := s.customerRepo.ExistsByEmail(parsedEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("customer with email '%s' already exists", parsedEmail)
	}

	customer, err := models.NewCustomer(firstName, lastName, parsedEmail, phone, address)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer overwrites the customer's personal data. Changing the
// e-mail re-checks uniqueness.
func (s *CustomerService) UpdateCustomer(id, firstName, lastName, email, phone string,
	address *models.Address) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	parsedEmail, err := models.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if parsedEmail != customer.Email {
		exists, err := s.customerRepo.ExistsByEmail(parsedEmail)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, models.NewValidationError("customer with email '%s' already exists", parsedEmail)
		}
	}

	if err := customer.UpdateInfo(firstName, lastName, parsedEmail, phone, address); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ActivateCustomer re-enables the customer account.
func (s *CustomerService) ActivateCustomer(id string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	customer.Activate()
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeactivateCustomer disables the account; inactive customers cannot place
// orders.
func (s *CustomerService) DeactivateCustomer(id string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	customer.Deactivate()
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetAllCustomers retrieves every customer.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.customerRepo.GetAll()
}

// GetCustomerByID retrieves a single customer.
func (s *CustomerService) GetCustomerByID(id string) (*models.Customer, error) {
	return s.customerRepo.GetByID(id)
}

// GetCustomerByEmail retrieves a customer by e-mail address.
func (s *CustomerService) GetCustomerByEmail(email string) (*models.Customer, error) {
	parsedEmail, err := models.NewEmail(email)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.GetByEmail(parsedEmail)
}
