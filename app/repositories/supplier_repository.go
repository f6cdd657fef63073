package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/metrics"
)

// SupplierFilter narrows the supplier listing. Search matches name,
// contact person or email; a nil Active means both states.
type SupplierFilter struct {
	Search string
	Active *bool
	Page   int
	Limit  int
}

// SupplierRepository is the supplier data access contract. Delete
// deactivates rather than removes a supplier that items still
// reference.
type SupplierRepository interface {
	List(f SupplierFilter) ([]models.Supplier, int, error)
	Find(id uint) (models.Supplier, error)
	Create(s *models.Supplier) error
	Update(s *models.Supplier) error
	Delete(id uint) error
}

type GormSupplierRepository struct {
	db *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) List(f SupplierFilter) ([]models.Supplier, int, error) {
	defer metrics.ObserveDBQuery("supplier_list", time.Now())

	tx := r.db.Model(&models.Supplier{})
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(contact_person) LIKE ? OR LOWER(email) LIKE ?",
			needle, needle, needle,
		)
	}
	if f.Active != nil {
		tx = tx.Where("is_active = ?", *f.Active)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	suppliers := []models.Supplier{}
	err := tx.Order("created_at DESC, id DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&suppliers).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return suppliers, int(total), nil
}

func (r *GormSupplierRepository) Find(id uint) (models.Supplier, error) {
	defer metrics.ObserveDBQuery("supplier_find", time.Now())

	var s models.Supplier
	err := r.db.First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s, apperr.NotFoundf("supplier %d not found", id)
	}
	if err != nil {
		return s, apperr.Internal(err)
	}
	return s, nil
}

func (r *GormSupplierRepository) Create(s *models.Supplier) error {
	defer metrics.ObserveDBQuery("supplier_create", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Supplier{}).
			Where("email = ?", s.Email).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflictf("a supplier with email %q already exists", s.Email)
		}
		if err := tx.Create(s).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func (r *GormSupplierRepository) Update(s *models.Supplier) error {
	defer metrics.ObserveDBQuery("supplier_update", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Supplier{}).
			Where("email = ? AND id <> ?", s.Email, s.ID).
			Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflictf("a supplier with email %q already exists", s.Email)
		}
		if err := tx.Save(s).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// Delete removes a supplier, or deactivates it when items still
// reference it so their sourcing history stays intact.
func (r *GormSupplierRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("supplier_delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var s models.Supplier
		err := tx.First(&s, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("supplier %d not found", id)
		}
		if err != nil {
			return apperr.Internal(err)
		}

		var refs int64
		if err := tx.Model(&models.Item{}).
			Where("supplier_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Internal(err)
		}
		if refs > 0 {
			if err := tx.Model(&s).UpdateColumn("is_active", false).Error; err != nil {
				return apperr.Internal(err)
			}
			return nil
		}
		if err := tx.Delete(&models.Supplier{}, id).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}
