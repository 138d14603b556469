package policy

import "testing"

func TestParseRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  Role
	}{
		{"CUSTOMER", RoleCustomer},
		{"seller", RoleSeller},
		{" admin ", RoleAdmin},
		{"", RoleAnonymous},
		{"ROOT", RoleAnonymous},
	}

	for _, tc := range cases {
		if got := ParseRole(tc.input); got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestCanAccess(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		role       Role
		capability Capability
		want       bool
	}{
		{"anonymous browse", RoleAnonymous, CapBrowse, true},
		{"anonymous login", RoleAnonymous, CapLogin, true},
		{"anonymous cart", RoleAnonymous, CapCart, false},
		{"customer cart", RoleCustomer, CapCart, true},
		{"customer checkout", RoleCustomer, CapCheckout, true},
		{"customer add product", RoleCustomer, CapAddProduct, false},
		{"customer verify sellers", RoleCustomer, CapVerifySellers, false},
		{"seller products", RoleSeller, CapSellerProducts, true},
		{"seller cart", RoleSeller, CapCart, false},
		{"seller checkout", RoleSeller, CapCheckout, false},
		{"admin verify sellers", RoleAdmin, CapVerifySellers, true},
		{"admin cart", RoleAdmin, CapCart, false},
		{"admin browse", RoleAdmin, CapBrowse, true},
		{"authenticated cannot login again", RoleCustomer, CapLogin, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CanAccess(tc.role, tc.capability); got != tc.want {
				t.Fatalf("CanAccess(%q, %q) = %v, want %v", tc.role, tc.capability, got, tc.want)
			}
		})
	}
}

func TestRoleAuthenticated(t *testing.T) {
	t.Parallel()

	if RoleAnonymous.Authenticated() {
		t.Fatal("anonymous must not count as authenticated")
	}
	for _, role := range []Role{RoleCustomer, RoleSeller, RoleAdmin} {
		if !role.Authenticated() {
			t.Fatalf("%q should be authenticated", role)
		}
	}
}
