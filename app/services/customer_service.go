package services

import (
	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/validate"
)

// CreateCustomerInput is the payload for creating a customer.
type CreateCustomerInput struct {
	FirstName    string `json:"first_name"    validate:"required,max=100"`
	LastName     string `json:"last_name"     validate:"required,max=100"`
	Email        string `json:"email"         validate:"required,email,max=255"`
	Phone        string `json:"phone"         validate:"nullable,max=20"`
	AddressLine1 string `json:"address_line1" validate:"nullable,max=200"`
	AddressLine2 string `json:"address_line2" validate:"nullable,max=200"`
	City         string `json:"city"          validate:"nullable,max=100"`
	State        string `json:"state"         validate:"nullable,max=50"`
	PostalCode   string `json:"postal_code"   validate:"nullable,max=20"`
	Country      string `json:"country"       validate:"nullable,max=50"`
}

// UpdateCustomerInput is the partial-update payload; nil fields are
// left unchanged.
type UpdateCustomerInput struct {
	FirstName    *string `json:"first_name"    validate:"min=1,max=100"`
	LastName     *string `json:"last_name"     validate:"min=1,max=100"`
	Email        *string `json:"email"         validate:"email,max=255"`
	Phone        *string `json:"phone"         validate:"max=20"`
	AddressLine1 *string `json:"address_line1" validate:"max=200"`
	AddressLine2 *string `json:"address_line2" validate:"max=200"`
	City         *string `json:"city"          validate:"max=100"`
	State        *string `json:"state"         validate:"max=50"`
	PostalCode   *string `json:"postal_code"   validate:"max=20"`
	Country      *string `json:"country"       validate:"max=50"`
}

// CustomerService implements customer management.
type CustomerService struct {
	repo repositories.CustomerRepository
}

func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) List() ([]models.Customer, error) {
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

func (s *CustomerService) Get(id uint) (models.Customer, error) {
	return s.repo.Find(id)
}

func (s *CustomerService) Create(in CreateCustomerInput) (models.Customer, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Customer{}, apperr.Validation(errs)
	}
	c := models.Customer{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
	}
	if c.Country == "" {
		c.Country = "USA"
	}
	if err := s.repo.Create(&c); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Update(id uint, in UpdateCustomerInput) (models.Customer, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Customer{}, apperr.Validation(errs)
	}
	c, err := s.repo.Find(id)
	if err != nil {
		return models.Customer{}, err
	}
	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.AddressLine1 != nil {
		c.AddressLine1 = *in.AddressLine1
	}
	if in.AddressLine2 != nil {
		c.AddressLine2 = *in.AddressLine2
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.State != nil {
		c.State = *in.State
	}
	if in.PostalCode != nil {
		c.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		c.Country = *in.Country
	}
	if err := s.repo.Update(&c); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Delete(id uint) error {
	return s.repo.Delete(id)
}
