package models

import "fmt"

// Role is the closed set of account kinds. It is resolved once at the
// boundary; storage never selects a target from a caller-supplied string.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleStaff    Role = "staff"
	RoleKitchen  Role = "kitchen"
	RoleCustomer Role = "customer"
)

// ParseRole maps a string onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleStaff, RoleKitchen, RoleCustomer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// TenantScoped reports whether accounts of this role must belong to a tenant.
// Customer accounts are global; everything else is owned by a restaurant.
func (r Role) TenantScoped() bool {
	return r != RoleCustomer
}
