package services

import (
	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/validate"
)

// CreateSupplierInput is the payload for creating a supplier.
type CreateSupplierInput struct {
	Name          string `json:"name"           validate:"required,max=200"`
	ContactPerson string `json:"contact_person" validate:"nullable,max=100"`
	Email         string `json:"email"          validate:"required,email,max=255"`
	Phone         string `json:"phone"          validate:"nullable,max=20"`
	AddressLine1  string `json:"address_line1"  validate:"nullable,max=200"`
	AddressLine2  string `json:"address_line2"  validate:"nullable,max=200"`
	City          string `json:"city"           validate:"nullable,max=100"`
	State         string `json:"state"          validate:"nullable,max=50"`
	PostalCode    string `json:"postal_code"    validate:"nullable,max=20"`
	Country       string `json:"country"        validate:"nullable,max=50"`
	TaxID         string `json:"tax_id"         validate:"nullable,max=50"`
	PaymentTerms  string `json:"payment_terms"  validate:"nullable,max=100"`
}

// UpdateSupplierInput is the partial-update payload; nil fields are
// left unchanged.
type UpdateSupplierInput struct {
	Name          *string `json:"name"           validate:"min=1,max=200"`
	ContactPerson *string `json:"contact_person" validate:"max=100"`
	Email         *string `json:"email"          validate:"email,max=255"`
	Phone         *string `json:"phone"          validate:"max=20"`
	AddressLine1  *string `json:"address_line1"  validate:"max=200"`
	AddressLine2  *string `json:"address_line2"  validate:"max=200"`
	City          *string `json:"city"           validate:"max=100"`
	State         *string `json:"state"          validate:"max=50"`
	PostalCode    *string `json:"postal_code"    validate:"max=20"`
	Country       *string `json:"country"        validate:"max=50"`
	TaxID         *string `json:"tax_id"         validate:"max=50"`
	PaymentTerms  *string `json:"payment_terms"  validate:"max=100"`
	IsActive      *bool   `json:"is_active"`
}

// SupplierPage is one page of the supplier listing.
type SupplierPage struct {
	Items []models.Supplier `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Pages int               `json:"pages"`
}

// SupplierService implements supplier management.
type SupplierService struct {
	repo repositories.SupplierRepository
}

func NewSupplierService(repo repositories.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

func (s *SupplierService) List(f repositories.SupplierFilter) (SupplierPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 50
	}
	items, total, err := s.repo.List(f)
	if err != nil {
		return SupplierPage{}, err
	}
	pages := 0
	if total > 0 {
		pages = (total + f.Limit - 1) / f.Limit
	}
	return SupplierPage{Items: items, Total: total, Page: f.Page, Size: f.Limit, Pages: pages}, nil
}

func (s *SupplierService) Get(id uint) (models.Supplier, error) {
	return s.repo.Find(id)
}

func (s *SupplierService) Create(in CreateSupplierInput) (models.Supplier, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Supplier{}, apperr.Validation(errs)
	}
	sup := models.Supplier{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		AddressLine1:  in.AddressLine1,
		AddressLine2:  in.AddressLine2,
		City:          in.City,
		State:         in.State,
		PostalCode:    in.PostalCode,
		Country:       in.Country,
		TaxID:         in.TaxID,
		PaymentTerms:  in.PaymentTerms,
		IsActive:      true,
	}
	if sup.Country == "" {
		sup.Country = "USA"
	}
	if err := s.repo.Create(&sup); err != nil {
		return models.Supplier{}, err
	}
	return sup, nil
}

func (s *SupplierService) Update(id uint, in UpdateSupplierInput) (models.Supplier, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Supplier{}, apperr.Validation(errs)
	}
	sup, err := s.repo.Find(id)
	if err != nil {
		return models.Supplier{}, err
	}
	if in.Name != nil {
		sup.Name = *in.Name
	}
	if in.ContactPerson != nil {
		sup.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		sup.Email = *in.Email
	}
	if in.Phone != nil {
		sup.Phone = *in.Phone
	}
	if in.AddressLine1 != nil {
		sup.AddressLine1 = *in.AddressLine1
	}
	if in.AddressLine2 != nil {
		sup.AddressLine2 = *in.AddressLine2
	}
	if in.City != nil {
		sup.City = *in.City
	}
	if in.State != nil {
		sup.State = *in.State
	}
	if in.PostalCode != nil {
		sup.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		sup.Country = *in.Country
	}
	if in.TaxID != nil {
		sup.TaxID = *in.TaxID
	}
	if in.PaymentTerms != nil {
		sup.PaymentTerms = *in.PaymentTerms
	}
	if in.IsActive != nil {
		sup.IsActive = *in.IsActive
	}
	if err := s.repo.Update(&sup); err != nil {
		return models.Supplier{}, err
	}
	return sup, nil
}

func (s *SupplierService) Delete(id uint) error {
	return s.repo.Delete(id)
}
