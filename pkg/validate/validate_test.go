package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type createInput struct {
	Name     string  `json:"name"     validate:"required,max=10"`
	Category string  `json:"category" validate:"required,in=electronics,clothing,books,home,other"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Email    string  `json:"email"    validate:"nullable,email"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(createInput{
		Name:     "Widget",
		Category: "home",
		Quantity: 0,
		Price:    9.99,
	})
	assert.False(t, HasErrors(errs))
}

func TestStructRequired(t *testing.T) {
	errs := Struct(createInput{Category: "home"})
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestStructInRule(t *testing.T) {
	errs := Struct(createInput{Name: "Widget", Category: "furniture"})
	assert.Equal(t, "The selected category is invalid.", errs["category"])
}

func TestStructRangeRules(t *testing.T) {
	errs := Struct(createInput{
		Name:     "Widget",
		Category: "home",
		Quantity: -1,
		Price:    -0.01,
	})
	assert.Contains(t, errs["quantity"], "greater than or equal to 0")
	assert.Contains(t, errs["price"], "greater than or equal to 0")
}

func TestStructMaxUsesCharLengthForStrings(t *testing.T) {
	errs := Struct(createInput{Name: "much too long name", Category: "home"})
	assert.Equal(t, "The name must not exceed 10 characters.", errs["name"])
}

func TestStructNullableSkipsEmpty(t *testing.T) {
	ok := Struct(createInput{Name: "Widget", Category: "home"})
	assert.False(t, HasErrors(ok))

	bad := Struct(createInput{Name: "Widget", Category: "home", Email: "not-an-email"})
	assert.Equal(t, "The email must be a valid email address.", bad["email"])
}

func TestStructFirstFailingRuleWins(t *testing.T) {
	errs := Struct(createInput{Category: "furniture"})
	// name fails required before max could apply.
	assert.Equal(t, "The name field is required.", errs["name"])
	assert.Equal(t, "The selected category is invalid.", errs["category"])
	assert.Len(t, errs, 2)
}

type patchInput struct {
	Name     *string `json:"name"     validate:"max=10"`
	Category *string `json:"category" validate:"in=electronics,clothing,books,home,other"`
	Quantity *int    `json:"quantity" validate:"gte=0"`
}

func ptr[T any](v T) *T { return &v }

func TestStructNilPointersSkipped(t *testing.T) {
	assert.False(t, HasErrors(Struct(patchInput{})))
}

func TestStructNonNilPointersValidated(t *testing.T) {
	errs := Struct(patchInput{
		Name:     ptr("much too long name"),
		Category: ptr("furniture"),
		Quantity: ptr(-5),
	})
	assert.Len(t, errs, 3)
	assert.Equal(t, "The selected category is invalid.", errs["category"])
}

func TestStructUsesJSONFieldNames(t *testing.T) {
	type input struct {
		FirstName string `json:"first_name" validate:"required"`
	}
	errs := Struct(input{})
	assert.Equal(t, "The first_name field is required.", errs["first_name"])
}
