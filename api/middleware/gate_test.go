package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecomarket/storefront/internal/policy"
	"github.com/ecomarket/storefront/internal/session"
	"github.com/ecomarket/storefront/pkg/logger"
)

func gateRequest(t *testing.T, capability policy.Capability, state session.State) *httptest.ResponseRecorder {
	t.Helper()

	handler := Gate(capability, logger.New(logger.Options{ServiceName: "test"}))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req = req.WithContext(WithSession(req.Context(), "sid-1", state))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestGate_AllowsGrantedCapability(t *testing.T) {
	t.Parallel()

	rec := gateRequest(t, policy.CapCart, session.State{Role: policy.RoleCustomer})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGate_AnonymousRedirectsToLogin(t *testing.T) {
	t.Parallel()

	rec := gateRequest(t, policy.CapCart, session.State{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestGate_ForbiddenRedirectsHome(t *testing.T) {
	t.Parallel()

	rec := gateRequest(t, policy.CapCart, session.State{Role: policy.RoleSeller})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("Location = %q, want /", loc)
	}
}

func TestGate_EvaluatesEachRequest(t *testing.T) {
	t.Parallel()

	// The same capability flips from denied to allowed when the session's
	// role changes between requests.
	if rec := gateRequest(t, policy.CapVerifySellers, session.State{Role: policy.RoleCustomer}); rec.Code != http.StatusSeeOther {
		t.Fatalf("customer status = %d, want 303", rec.Code)
	}
	if rec := gateRequest(t, policy.CapVerifySellers, session.State{Role: policy.RoleAdmin}); rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}
}
