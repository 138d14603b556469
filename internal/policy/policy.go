package policy

import "strings"

// Role is the account role granted by the marketplace backend at login.
// The empty role means the visitor has no session.
type Role string

const (
	RoleAnonymous Role = ""
	RoleCustomer  Role = "CUSTOMER"
	RoleSeller    Role = "SELLER"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole normalizes a backend-provided role string. Unknown values come
// back as anonymous so a garbled role can never widen access.
func ParseRole(value string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleCustomer:
		return RoleCustomer
	case RoleSeller:
		return RoleSeller
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleAnonymous
	}
}

// Capability names an area of the storefront a request may touch.
type Capability string

const (
	CapBrowse         Capability = "browse"
	CapLogin          Capability = "login"
	CapRegister       Capability = "register"
	CapCart           Capability = "cart"
	CapCheckout       Capability = "checkout"
	CapOrders         Capability = "orders"
	CapProfile        Capability = "profile"
	CapSellerProfile  Capability = "seller-profile"
	CapSellerProducts Capability = "seller-products"
	CapAddProduct     Capability = "add-product"
	CapVerifySellers  Capability = "verify-sellers"
)

// grants is the full access table. Roles hold exactly the listed
// capabilities; there is no inheritance between roles.
var grants = map[Role]map[Capability]bool{
	RoleAnonymous: {
		CapBrowse:   true,
		CapLogin:    true,
		CapRegister: true,
	},
	RoleCustomer: {
		CapBrowse:   true,
		CapCart:     true,
		CapCheckout: true,
		CapOrders:   true,
		CapProfile:  true,
	},
	RoleSeller: {
		CapBrowse:         true,
		CapProfile:        true,
		CapSellerProfile:  true,
		CapSellerProducts: true,
		CapAddProduct:     true,
	},
	RoleAdmin: {
		CapBrowse:        true,
		CapVerifySellers: true,
	},
}

// CanAccess reports whether the role holds the capability.
func CanAccess(role Role, capability Capability) bool {
	return grants[role][capability]
}

// Authenticated reports whether the role represents a logged-in account.
func (r Role) Authenticated() bool {
	return r == RoleCustomer || r == RoleSeller || r == RoleAdmin
}
