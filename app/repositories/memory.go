package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/collection"
	"github.com/stockroomhq/stockroom/pkg/query"
)

// MemoryStore keeps all entities in process memory behind a single
// mutex, so multi-entity operations like order creation are atomic
// without a database. It implements every repository interface and
// serves the "memory" database driver.
type MemoryStore struct {
	mu sync.Mutex

	items     []models.Item
	customers []models.Customer
	suppliers []models.Supplier
	orders    []models.Order
	movements []models.StockMovement

	nextItemID      uint
	nextCustomerID  uint
	nextSupplierID  uint
	nextOrderID     uint
	nextOrderItemID uint
	nextMovementID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextItemID:      1,
		nextCustomerID:  1,
		nextSupplierID:  1,
		nextOrderID:     1,
		nextOrderItemID: 1,
		nextMovementID:  1,
	}
}

// Seed loads items into an empty store, assigning IDs in order.
func (s *MemoryStore) Seed(items []models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, it := range items {
		it.ID = s.nextItemID
		s.nextItemID++
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		if it.UpdatedAt.IsZero() {
			it.UpdatedAt = now
		}
		s.items = append(s.items, it)
	}
}

// --- ItemRepository ---

func (s *MemoryStore) List(p query.Params) (query.Result[models.Item], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Apply(s.items, p, ItemFields), nil
}

func (s *MemoryStore) All() ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Find(id uint) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, apperr.NotFoundf("item %d not found", id)
}

// Create checks SKU uniqueness and inserts while holding the lock, so
// two concurrent creates with the same SKU cannot both succeed.
func (s *MemoryStore) Create(item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.SKU == item.SKU {
			return apperr.Conflictf("an item with SKU %q already exists", item.SKU)
		}
	}
	item.ID = s.nextItemID
	s.nextItemID++
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items = append(s.items, *item)
	return nil
}

func (s *MemoryStore) Update(item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, it := range s.items {
		if it.ID == item.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFoundf("item %d not found", item.ID)
	}
	for i, it := range s.items {
		if i != idx && it.SKU == item.SKU {
			return apperr.Conflictf("an item with SKU %q already exists", item.SKU)
		}
	}
	item.CreatedAt = s.items[idx].CreatedAt
	item.UpdatedAt = time.Now().UTC()
	s.items[idx] = *item
	return nil
}

func (s *MemoryStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFoundf("item %d not found", id)
}

// --- CustomerRepository ---

func (s *MemoryStore) AllCustomers() ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

func (s *MemoryStore) FindCustomer(id uint) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findCustomerLocked(id)
}

func (s *MemoryStore) findCustomerLocked(id uint) (models.Customer, error) {
	for _, c := range s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, apperr.NotFoundf("customer %d not found", id)
}

func (s *MemoryStore) CreateCustomer(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.customers {
		if existing.Email == c.Email {
			return apperr.Conflictf("a customer with email %q already exists", c.Email)
		}
	}
	c.ID = s.nextCustomerID
	s.nextCustomerID++
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.customers = append(s.customers, *c)
	return nil
}

func (s *MemoryStore) UpdateCustomer(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, existing := range s.customers {
		if existing.ID == c.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFoundf("customer %d not found", c.ID)
	}
	for i, existing := range s.customers {
		if i != idx && existing.Email == c.Email {
			return apperr.Conflictf("a customer with email %q already exists", c.Email)
		}
	}
	c.CreatedAt = s.customers[idx].CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.customers[idx] = *c
	return nil
}

func (s *MemoryStore) DeleteCustomer(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.customers {
		if c.ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			return nil
		}
	}
	return apperr.NotFoundf("customer %d not found", id)
}

// --- SupplierRepository ---

func (s *MemoryStore) ListSuppliers(f SupplierFilter) ([]models.Supplier, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Supplier{}
	needle := strings.ToLower(f.Search)
	for _, sup := range s.suppliers {
		if needle != "" &&
			!strings.Contains(strings.ToLower(sup.Name), needle) &&
			!strings.Contains(strings.ToLower(sup.ContactPerson), needle) &&
			!strings.Contains(strings.ToLower(sup.Email), needle) {
			continue
		}
		if f.Active != nil && sup.IsActive != *f.Active {
			continue
		}
		matched = append(matched, sup)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page := collection.Paginate(matched, f.Page, f.Limit)
	if page == nil {
		page = []models.Supplier{}
	}
	return page, total, nil
}

func (s *MemoryStore) FindSupplier(id uint) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sup := range s.suppliers {
		if sup.ID == id {
			return sup, nil
		}
	}
	return models.Supplier{}, apperr.NotFoundf("supplier %d not found", id)
}

func (s *MemoryStore) CreateSupplier(sup *models.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.suppliers {
		if existing.Email == sup.Email {
			return apperr.Conflictf("a supplier with email %q already exists", sup.Email)
		}
	}
	sup.ID = s.nextSupplierID
	s.nextSupplierID++
	now := time.Now().UTC()
	sup.CreatedAt = now
	sup.UpdatedAt = now
	s.suppliers = append(s.suppliers, *sup)
	return nil
}

func (s *MemoryStore) UpdateSupplier(sup *models.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, existing := range s.suppliers {
		if existing.ID == sup.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFoundf("supplier %d not found", sup.ID)
	}
	for i, existing := range s.suppliers {
		if i != idx && existing.Email == sup.Email {
			return apperr.Conflictf("a supplier with email %q already exists", sup.Email)
		}
	}
	sup.CreatedAt = s.suppliers[idx].CreatedAt
	sup.UpdatedAt = time.Now().UTC()
	s.suppliers[idx] = *sup
	return nil
}

// DeleteSupplier removes a supplier, or only deactivates it when items
// still reference it.
func (s *MemoryStore) DeleteSupplier(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, sup := range s.suppliers {
		if sup.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFoundf("supplier %d not found", id)
	}
	for _, it := range s.items {
		if it.SupplierID != nil && *it.SupplierID == id {
			s.suppliers[idx].IsActive = false
			s.suppliers[idx].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	s.suppliers = append(s.suppliers[:idx], s.suppliers[idx+1:]...)
	return nil
}

// --- OrderRepository ---

func (s *MemoryStore) AllOrders() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out, nil
}

func (s *MemoryStore) FindOrder(id uint) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, apperr.NotFoundf("order %d not found", id)
}

func (s *MemoryStore) CreateOrder(o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findCustomerLocked(o.CustomerID); err != nil {
		return err
	}
	lineIdx := make([]int, len(o.Items))
	for li, line := range o.Items {
		idx := -1
		for i, it := range s.items {
			if it.ID == line.ItemID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return apperr.NotFoundf("item %d not found", line.ItemID)
		}
		if s.items[idx].Quantity < line.Quantity {
			return apperr.Validation(map[string]string{
				"items": fmt.Sprintf(
					"insufficient stock for %s: %d requested, %d available",
					s.items[idx].SKU, line.Quantity, s.items[idx].Quantity),
			})
		}
		lineIdx[li] = idx
	}

	o.ID = s.nextOrderID
	s.nextOrderID++
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	for li := range o.Items {
		o.Items[li].ID = s.nextOrderItemID
		s.nextOrderItemID++
		o.Items[li].OrderID = o.ID

		idx := lineIdx[li]
		s.items[idx].Quantity -= o.Items[li].Quantity
		s.movements = append(s.movements, models.StockMovement{
			ID:            s.nextMovementID,
			ItemID:        o.Items[li].ItemID,
			Type:          models.MovementOut,
			Quantity:      -o.Items[li].Quantity,
			ReferenceType: "order",
			ReferenceID:   o.ID,
			Notes:         fmt.Sprintf("order %s", o.OrderNumber),
			CreatedAt:     now,
		})
		s.nextMovementID++
	}
	s.orders = append(s.orders, *o)
	return nil
}

func (s *MemoryStore) UpdateOrder(o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.orders {
		if existing.ID == o.ID {
			s.orders[i].Status = o.Status
			s.orders[i].RequiredDate = o.RequiredDate
			s.orders[i].ShippedDate = o.ShippedDate
			s.orders[i].Notes = o.Notes
			s.orders[i].UpdatedAt = time.Now().UTC()
			*o = s.orders[i]
			return nil
		}
	}
	return apperr.NotFoundf("order %d not found", o.ID)
}

func (s *MemoryStore) CancelOrder(o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.orders {
		if existing.ID == o.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFoundf("order %d not found", o.ID)
	}
	now := time.Now().UTC()
	s.orders[idx].Status = models.OrderCancelled
	s.orders[idx].UpdatedAt = now
	for _, line := range s.orders[idx].Items {
		for i := range s.items {
			if s.items[i].ID == line.ItemID {
				s.items[i].Quantity += line.Quantity
				break
			}
		}
		s.movements = append(s.movements, models.StockMovement{
			ID:            s.nextMovementID,
			ItemID:        line.ItemID,
			Type:          models.MovementReturn,
			Quantity:      line.Quantity,
			ReferenceType: "order",
			ReferenceID:   o.ID,
			Notes:         fmt.Sprintf("cancelled order %s", o.OrderNumber),
			CreatedAt:     now,
		})
		s.nextMovementID++
	}
	*o = s.orders[idx]
	return nil
}

func (s *MemoryStore) OrdersSince(t time.Time) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if !o.OrderDate.Before(t) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out, nil
}

// --- StockRepository ---

func (s *MemoryStore) Movements(itemID uint, limit int) ([]models.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StockMovement
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if itemID != 0 && m.ItemID != itemID {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Record(m *models.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, it := range s.items {
		if it.ID == m.ItemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.NotFoundf("item %d not found", m.ItemID)
	}
	if s.items[idx].Quantity+m.Quantity < 0 {
		return apperr.Validation(map[string]string{
			"quantity": "movement would drive stock below zero",
		})
	}
	s.items[idx].Quantity += m.Quantity
	m.ID = s.nextMovementID
	s.nextMovementID++
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.movements = append(s.movements, *m)
	return nil
}

// customerRepoAdapter exposes the store's customer methods under the
// CustomerRepository names.
type customerRepoAdapter struct{ s *MemoryStore }

func (a customerRepoAdapter) All() ([]models.Customer, error)       { return a.s.AllCustomers() }
func (a customerRepoAdapter) Find(id uint) (models.Customer, error) { return a.s.FindCustomer(id) }
func (a customerRepoAdapter) Create(c *models.Customer) error       { return a.s.CreateCustomer(c) }
func (a customerRepoAdapter) Update(c *models.Customer) error       { return a.s.UpdateCustomer(c) }
func (a customerRepoAdapter) Delete(id uint) error                  { return a.s.DeleteCustomer(id) }

// orderRepoAdapter exposes the store's order methods under the
// OrderRepository names.
type orderRepoAdapter struct{ s *MemoryStore }

func (a orderRepoAdapter) All() ([]models.Order, error)              { return a.s.AllOrders() }
func (a orderRepoAdapter) Find(id uint) (models.Order, error)        { return a.s.FindOrder(id) }
func (a orderRepoAdapter) Create(o *models.Order) error              { return a.s.CreateOrder(o) }
func (a orderRepoAdapter) Update(o *models.Order) error              { return a.s.UpdateOrder(o) }
func (a orderRepoAdapter) Cancel(o *models.Order) error              { return a.s.CancelOrder(o) }
func (a orderRepoAdapter) Since(t time.Time) ([]models.Order, error) { return a.s.OrdersSince(t) }

// Customers returns the store as a CustomerRepository.
// supplierRepoAdapter exposes the store's supplier methods under the
// SupplierRepository interface.
type supplierRepoAdapter struct{ s *MemoryStore }

func (a supplierRepoAdapter) List(f SupplierFilter) ([]models.Supplier, int, error) {
	return a.s.ListSuppliers(f)
}
func (a supplierRepoAdapter) Find(id uint) (models.Supplier, error) { return a.s.FindSupplier(id) }
func (a supplierRepoAdapter) Create(sup *models.Supplier) error     { return a.s.CreateSupplier(sup) }
func (a supplierRepoAdapter) Update(sup *models.Supplier) error     { return a.s.UpdateSupplier(sup) }
func (a supplierRepoAdapter) Delete(id uint) error                  { return a.s.DeleteSupplier(id) }

func (s *MemoryStore) Customers() CustomerRepository { return customerRepoAdapter{s} }

// Orders returns the store as an OrderRepository.
func (s *MemoryStore) Orders() OrderRepository { return orderRepoAdapter{s} }

func (s *MemoryStore) Suppliers() SupplierRepository { return supplierRepoAdapter{s} }
