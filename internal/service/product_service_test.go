package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCatalog(t *testing.T) {
	svc := NewProductService()
	products := svc.List()

	assert.Len(t, products, 10)
	assert.Equal(t, "Echo Dot (4th Gen)", products[0].Name)
	assert.Equal(t, "₹4,499", products[0].Price)

	for _, p := range products {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Price)
		assert.NotEmpty(t, p.ImagePath)
	}
}
