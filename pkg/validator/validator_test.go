package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Phone string `json:"phone" validate:"omitempty,phonenumber"`
	Email string `json:"email" validate:"required,email"`
}

func TestPhoneNumberAndFieldNames(t *testing.T) {
	v := validator.New()
	Register(v)

	assert.NoError(t, v.Struct(signup{Phone: "+15551234567", Email: "a@example.com"}))
	assert.NoError(t, v.Struct(signup{Email: "a@example.com"}))

	err := v.Struct(signup{Phone: "5551234", Email: "a@example.com"})
	var verr validator.ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr, 1)
	assert.Equal(t, "phone", verr[0].Field())
	assert.Equal(t, "phonenumber", verr[0].Tag())
}
