package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required,min=8"`
	Nickname string `validate:"max=5"`
}

func TestFromBindErrorUsesJSONTags(t *testing.T) {
	v := validator.New()
	err := v.Struct(signupForm{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	fe := FromBindError(err, &signupForm{})
	assert.Equal(t, "Enter a valid email address.", fe["email"])
	assert.Equal(t, "Must be at least 8 characters.", fe["password"])
}

func TestFromBindErrorFallsBackToFieldName(t *testing.T) {
	v := validator.New()
	err := v.Struct(signupForm{Email: "a@b.co", Password: "longenough", Nickname: "toolong"})
	require.Error(t, err)

	fe := FromBindError(err, &signupForm{})
	assert.Contains(t, fe, "nickname")
}

type deliveryAddress struct {
	FullName   string `json:"full_name" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required,min=6"`
}

type placeOrderForm struct {
	GuestEmail string          `json:"guest_email" validate:"omitempty,email"`
	Address    deliveryAddress `json:"address"`
}

func TestFromBindErrorNestedStructUsesJSONTags(t *testing.T) {
	v := validator.New()
	err := v.Struct(placeOrderForm{Address: deliveryAddress{PostalCode: "110"}})
	require.Error(t, err)

	fe := FromBindError(err, &placeOrderForm{})
	assert.Equal(t, "This field is required.", fe["full_name"])
	assert.Equal(t, "Must be at least 6 characters.", fe["postal_code"])
	assert.NotContains(t, fe, "fullname")
}

func TestFromBindErrorNonValidationError(t *testing.T) {
	fe := FromBindError(assert.AnError, &signupForm{})
	assert.Equal(t, "Invalid request body.", fe["_"])
}
