package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductStatusFor(t *testing.T) {
	assert.Equal(t, ProductStatusAvailable, ProductStatusFor(1))
	assert.Equal(t, ProductStatusAvailable, ProductStatusFor(100))
	assert.Equal(t, ProductStatusOutOfStock, ProductStatusFor(0))
	assert.Equal(t, ProductStatusOutOfStock, ProductStatusFor(-1))
}

func TestOrderStatusFor(t *testing.T) {
	assert.Equal(t, OrderStatusCompleted, OrderStatusFor(PaymentStatusPaid))
	assert.Equal(t, OrderStatusProcessing, OrderStatusFor(PaymentStatusUnpaid))
	assert.Equal(t, OrderStatusProcessing, OrderStatusFor(""))
}

func TestDeletedAccessors(t *testing.T) {
	var p Product
	assert.False(t, p.Deleted())

	now := p.CreatedAt
	p.DeletedAt = &now
	assert.True(t, p.Deleted())
}
