package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
)

func customerFixture(t *testing.T) (*CustomerService, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	c := models.Customer{FirstName: "Ava", LastName: "Martinez", Email: "ava@example.com"}
	require.NoError(t, store.CreateCustomer(&c))
	return NewCustomerService(store.Customers()), store
}

func TestCustomerCreateDefaultsCountry(t *testing.T) {
	svc, _ := customerFixture(t)

	c, err := svc.Create(CreateCustomerInput{
		FirstName: "Noah",
		LastName:  "Kim",
		Email:     "noah@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "USA", c.Country)
}

func TestCustomerUpdateRejectsEmptyNames(t *testing.T) {
	svc, store := customerFixture(t)

	// A supplied-but-empty name must not be written through.
	empty := ""
	_, err := svc.Update(1, UpdateCustomerInput{FirstName: &empty, LastName: &empty})
	require.True(t, apperr.IsValidation(err))
	e, _ := apperr.As(err)
	assert.Contains(t, e.Fields, "first_name")
	assert.Contains(t, e.Fields, "last_name")

	c, findErr := store.FindCustomer(1)
	require.NoError(t, findErr)
	assert.Equal(t, "Ava", c.FirstName)
	assert.Equal(t, "Martinez", c.LastName)
}

func TestCustomerUpdatePartial(t *testing.T) {
	svc, _ := customerFixture(t)

	phone := "555-0100"
	c, err := svc.Update(1, UpdateCustomerInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", c.Phone)
	assert.Equal(t, "Ava", c.FirstName, "unspecified fields unchanged")
}
