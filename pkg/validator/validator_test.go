package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,max=5"`
	Age     int    `json:"age" validate:"gte=1,lte=150"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
	Kind    string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestCustomValidator_Valid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&contactForm{Name: "Budi", Age: 30, Contact: "0812345678", Kind: "a"}))
}

func TestCustomValidator_FormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&contactForm{Name: "Bartholomew", Age: 0, Contact: "08123abcde", Kind: "c"})
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "name must be at most 5 characters", msgs["name"])
	assert.Equal(t, "age must be greater than or equal to 1", msgs["age"])
	assert.Equal(t, "contact must contain digits only", msgs["contact"])
	assert.Equal(t, "kind must be one of: a b", msgs["kind"])
}

func TestCustomValidator_LengthAndRequired(t *testing.T) {
	v := NewValidator()

	msgs := v.FormatValidationErrors(v.Validate(&contactForm{Age: 20, Contact: "12345"}))
	assert.Equal(t, "name is required", msgs["name"])
	assert.Equal(t, "contact must be exactly 10 characters", msgs["contact"])
}

func TestCustomValidator_NonValidationError(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.FormatValidationErrors(assert.AnError))
}
