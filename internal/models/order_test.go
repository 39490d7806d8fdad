package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(StatusPendingPayment))
	assert.True(t, ValidOrderStatus(StatusServed))
	assert.False(t, ValidOrderStatus("DELIVERED"))
	assert.False(t, ValidOrderStatus("paid"))
}

func TestRevenueStatusesExcludePendingPayment(t *testing.T) {
	assert.NotContains(t, RevenueStatuses, StatusPendingPayment)
	assert.Contains(t, RevenueStatuses, StatusPaid)
	assert.Contains(t, RevenueStatuses, StatusServed)
}

func TestOrderContainsItem(t *testing.T) {
	order := &Order{LineItems: []LineItem{
		{MenuItemID: 10, Name: "Margherita", Price: 11.50, Quantity: 2},
		{MenuItemID: 11, Name: "Cola", Price: 3.00, Quantity: 1},
	}}

	assert.True(t, order.ContainsItem(10))
	assert.False(t, order.ContainsItem(12))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("kitchen")
	assert.NoError(t, err)
	assert.Equal(t, RoleKitchen, role)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestRoleTenantScoped(t *testing.T) {
	assert.True(t, RoleOwner.TenantScoped())
	assert.True(t, RoleKitchen.TenantScoped())
	assert.False(t, RoleCustomer.TenantScoped())
}

func TestTenantTablesDefault(t *testing.T) {
	assert.Equal(t, DefaultTableCount, (&Tenant{}).Tables())
	assert.Equal(t, 12, (&Tenant{TableCount: 12}).Tables())
}
