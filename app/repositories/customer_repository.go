package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/metrics"
)

// CustomerRepository is the customer data access contract.
type CustomerRepository interface {
	All() ([]models.Customer, error)
	Find(id uint) (models.Customer, error)
	Create(c *models.Customer) error
	Update(c *models.Customer) error
	Delete(id uint) error
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) All() ([]models.Customer, error) {
	defer metrics.ObserveDBQuery("customer_all", time.Now())

	var customers []models.Customer
	if err := r.db.Order("id ASC").Find(&customers).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return customers, nil
}

func (r *GormCustomerRepository) Find(id uint) (models.Customer, error) {
	defer metrics.ObserveDBQuery("customer_find", time.Now())

	var c models.Customer
	err := r.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, apperr.NotFoundf("customer %d not found", id)
	}
	if err != nil {
		return c, apperr.Internal(err)
	}
	return c, nil
}

func (r *GormCustomerRepository) Create(c *models.Customer) error {
	defer metrics.ObserveDBQuery("customer_create", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Customer{}).
			Where("email = ?", c.Email).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflictf("a customer with email %q already exists", c.Email)
		}
		if err := tx.Create(c).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func (r *GormCustomerRepository) Update(c *models.Customer) error {
	defer metrics.ObserveDBQuery("customer_update", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Customer{}).
			Where("email = ? AND id <> ?", c.Email, c.ID).
			Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflictf("a customer with email %q already exists", c.Email)
		}
		if err := tx.Save(c).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func (r *GormCustomerRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("customer_delete", time.Now())

	res := r.db.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("customer %d not found", id)
	}
	return nil
}
