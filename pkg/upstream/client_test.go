package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecomarket/storefront/pkg/config"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test"})
	client, err := NewClient(config.UpstreamConfig{BaseURL: server.URL}, logg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{ServiceName: "test"})
	if _, err := NewClient(config.UpstreamConfig{}, logg); err == nil {
		t.Fatal("NewClient() expected error for empty base url")
	}
}

func TestClient_Login(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/accounts/login/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var input LoginInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decoding login body: %v", err)
		}
		if input.Email != "jo@example.com" {
			t.Errorf("email = %q, want jo@example.com", input.Email)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"access":  "acc-token",
			"refresh": "ref-token",
			"role":    "SELLER",
		})
	})

	result, err := client.Login(context.Background(), LoginInput{Email: "jo@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Access != "acc-token" || result.Role != "SELLER" {
		t.Fatalf("Login() = %+v", result)
	}
}

func TestClient_Checkout_SendsIdempotencyKeyAndNoPrice(t *testing.T) {
	var gotKey string
	var gotBody map[string]json.RawMessage

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		if auth := r.Header.Get("Authorization"); auth != "Bearer acc-token" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding checkout body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"message": "order placed", "order_id": 42})
	})

	input := CheckoutInput{
		AddressID: 7,
		Items:     []CheckoutItem{{ProductID: 3, Quantity: 2}},
	}
	result, err := client.Checkout(context.Background(), "acc-token", input, "key-123")
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if result.OrderID != 42 {
		t.Fatalf("OrderID = %d, want 42", result.OrderID)
	}
	if gotKey != "key-123" {
		t.Fatalf("Idempotency-Key = %q, want key-123", gotKey)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(gotBody["items"], &items); err != nil {
		t.Fatalf("items payload: %v", err)
	}
	if _, ok := items[0]["price"]; ok {
		t.Fatal("checkout item payload must not carry a client price")
	}
}

func TestClient_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   pkgerrors.Code
	}{
		{"bad request", http.StatusBadRequest, `{"error": "insufficient stock"}`, pkgerrors.CodeValidation},
		{"unauthorized", http.StatusUnauthorized, `{"detail": "token expired"}`, pkgerrors.CodeUnauthorized},
		{"forbidden", http.StatusForbidden, `{"error": "sellers only"}`, pkgerrors.CodeForbidden},
		{"not found", http.StatusNotFound, `{"error": "no such product"}`, pkgerrors.CodeNotFound},
		{"conflict", http.StatusConflict, `{"error": "already verified"}`, pkgerrors.CodeConflict},
		{"server error", http.StatusBadGateway, ``, pkgerrors.CodeUpstream},
		{"field errors", http.StatusBadRequest, `{"email": ["already registered"]}`, pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.Profile(context.Background(), "tok")
			if err == nil {
				t.Fatal("Profile() expected error")
			}
			if got := pkgerrors.CodeOf(err); got != tc.want {
				t.Fatalf("code = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClient_NetworkFailureIsRetryable(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	client, err := NewClient(config.UpstreamConfig{BaseURL: "http://127.0.0.1:1"}, logg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Categories(context.Background())
	if err == nil {
		t.Fatal("Categories() expected error")
	}
	if !pkgerrors.Retryable(err) {
		t.Fatal("network failure should map to a retryable error")
	}
}
