package handler

import (
	"testing"

	"catalog-service/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()
	price := 10.0
	negative := -1.0
	empty := ""

	assert.NoError(t, v.Validate(&CreateProductRequest{Nombre: "Silla", Precio: &price}))
	assert.NoError(t, v.Validate(&UpdateProductRequest{}))

	err := v.Validate(&CreateProductRequest{Nombre: "Silla"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "precio")

	err = v.Validate(&CreateProductRequest{Nombre: "Silla", Precio: &negative, ImagenURL: "not a url"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "imagen_url")

	err = v.Validate(&UpdateProductRequest{Nombre: &empty})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	err = v.Validate(&RegisterRequest{Email: "ana@example.com"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "password")
}

func TestUpdateProductRequestPatch(t *testing.T) {
	price := 99.5
	patch := UpdateProductRequest{Precio: &price}.Patch()

	assert.Nil(t, patch.Name)
	assert.Equal(t, &price, patch.Price)
}
