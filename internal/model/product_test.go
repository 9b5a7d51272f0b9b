package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductPatchApplyOnlyPresentFields(t *testing.T) {
	product := Product{Name: "Silla", Price: 10}
	price := 99.5

	patch := ProductPatch{Price: &price}
	patch.Apply(&product)

	assert.Equal(t, "Silla", product.Name)
	assert.Equal(t, 99.5, product.Price)
	assert.Equal(t, map[string]interface{}{"precio": 99.5}, patch.Columns())
}

func TestProductPatchIsEmpty(t *testing.T) {
	assert.True(t, ProductPatch{}.IsEmpty())

	name := "Mesa"
	assert.False(t, ProductPatch{Name: &name}.IsEmpty())
}
