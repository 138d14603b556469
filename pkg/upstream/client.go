package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ecomarket/storefront/pkg/config"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
)

const idempotencyHeader = "Idempotency-Key"

// Client talks to the marketplace backend API. Every method maps backend
// failures onto the gateway error taxonomy; transport failures (including
// timeouts) surface as retryable upstream errors and never as panics.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *logger.Logger
}

var errBaseURLRequired = errors.New("upstream base url is required")

func NewClient(cfg config.UpstreamConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parsing upstream base url: %w", err)
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: base,
		logger:  logg,
	}, nil
}

// Ping probes the catalog endpoint for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	var page ProductPage
	return c.do(ctx, http.MethodGet, "/products/browse/", "", "", nil, &page)
}

func (c *Client) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/accounts/login/", "", "", input, &result)
	return result, err
}

func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/accounts/register/", "", "", input, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (Profile, error) {
	var profile Profile
	err := c.do(ctx, http.MethodGet, "/accounts/profile/", token, "", nil, &profile)
	return profile, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, input ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/accounts/profile/", token, "", input, nil)
}

func (c *Client) Addresses(ctx context.Context, token string) ([]Address, error) {
	var addresses []Address
	err := c.do(ctx, http.MethodGet, "/accounts/addresses/", token, "", nil, &addresses)
	return addresses, err
}

func (c *Client) CreateAddress(ctx context.Context, token string, input NewAddress) (Address, error) {
	var address Address
	err := c.do(ctx, http.MethodPost, "/accounts/addresses/", token, "", input, &address)
	return address, err
}

func (c *Client) SetDefaultAddress(ctx context.Context, token string, addressID int64) error {
	path := fmt.Sprintf("/accounts/addresses/%d/", addressID)
	return c.do(ctx, http.MethodPut, path, token, "", map[string]bool{"is_default": true}, nil)
}

func (c *Client) DeleteAddress(ctx context.Context, token string, addressID int64) error {
	path := fmt.Sprintf("/accounts/addresses/%d/", addressID)
	return c.do(ctx, http.MethodDelete, path, token, "", nil, nil)
}

func (c *Client) BrowseProducts(ctx context.Context, page int) (ProductPage, error) {
	path := "/products/browse/"
	if page > 1 {
		path = fmt.Sprintf("%s?page=%d", path, page)
	}
	var result ProductPage
	err := c.do(ctx, http.MethodGet, path, "", "", nil, &result)
	return result, err
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := c.do(ctx, http.MethodGet, "/products/categories/", "", "", nil, &categories)
	return categories, err
}

// Checkout submits the order-creation request. The idempotency key is
// replayed verbatim on user-initiated retries of the same cart contents so a
// timed-out-but-committed order cannot be placed twice.
func (c *Client) Checkout(ctx context.Context, token string, input CheckoutInput, idempotencyKey string) (CheckoutResult, error) {
	var result CheckoutResult
	err := c.do(ctx, http.MethodPost, "/orders/checkout/", token, idempotencyKey, input, &result)
	return result, err
}

func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodGet, "/orders/my-orders/", token, "", nil, &orders)
	return orders, err
}

func (c *Client) CancelOrderItem(ctx context.Context, token string, orderItemID int64) error {
	path := fmt.Sprintf("/orders/cancel/%d/", orderItemID)
	return c.do(ctx, http.MethodPost, path, token, "", nil, nil)
}

func (c *Client) SellerOrders(ctx context.Context, token string) ([]OrderItem, error) {
	var items []OrderItem
	err := c.do(ctx, http.MethodGet, "/orders/seller-orders/", token, "", nil, &items)
	return items, err
}

func (c *Client) UpdateOrderItemStatus(ctx context.Context, token string, orderItemID int64, status string) error {
	path := fmt.Sprintf("/orders/seller/update-status/%d/", orderItemID)
	return c.do(ctx, http.MethodPut, path, token, "", map[string]string{"status": status}, nil)
}

func (c *Client) SellerProfile(ctx context.Context, token string) (SellerProfile, error) {
	var profile SellerProfile
	err := c.do(ctx, http.MethodGet, "/accounts/seller/profile/", token, "", nil, &profile)
	return profile, err
}

func (c *Client) UpdateSellerProfile(ctx context.Context, token string, input SellerProfileUpdate) (SellerProfile, error) {
	var profile SellerProfile
	err := c.do(ctx, http.MethodPut, "/accounts/seller/profile/", token, "", input, &profile)
	return profile, err
}

func (c *Client) SellerStatus(ctx context.Context, token string) (SellerStatus, error) {
	var status SellerStatus
	err := c.do(ctx, http.MethodGet, "/accounts/seller/status/", token, "", nil, &status)
	return status, err
}

func (c *Client) SellerProducts(ctx context.Context, token string) ([]Product, error) {
	var products []Product
	err := c.do(ctx, http.MethodGet, "/products/seller/products/", token, "", nil, &products)
	return products, err
}

func (c *Client) CreateSellerProduct(ctx context.Context, token string, input NewProduct) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPost, "/products/seller/products/", token, "", input, &product)
	return product, err
}

func (c *Client) DeleteSellerProduct(ctx context.Context, token string, productID int64) error {
	path := fmt.Sprintf("/products/seller/products/%d/", productID)
	return c.do(ctx, http.MethodDelete, path, token, "", nil, nil)
}

func (c *Client) AdminSellers(ctx context.Context, token string) ([]SellerSummary, error) {
	var sellers []SellerSummary
	err := c.do(ctx, http.MethodGet, "/accounts/admin/sellers/", token, "", nil, &sellers)
	return sellers, err
}

func (c *Client) VerifySeller(ctx context.Context, token string, sellerID int64) error {
	path := fmt.Sprintf("/accounts/admin/verify-seller/%d/", sellerID)
	return c.do(ctx, http.MethodPost, path, token, "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token, idempotencyKey string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode upstream request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "marketplace backend unreachable")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode upstream response")
	}
	return nil
}

// statusError maps a backend rejection to the gateway taxonomy. The body is
// one of the backend's shapes: {"error": "..."}, {"message": "..."}, or a
// field->errors map from serializer validation.
func (c *Client) statusError(resp *http.Response) error {
	message := upstreamMessage(resp.Body)

	code := pkgerrors.CodeUpstream
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		code = pkgerrors.CodeValidation
	case resp.StatusCode == http.StatusUnauthorized:
		code = pkgerrors.CodeUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		code = pkgerrors.CodeForbidden
	case resp.StatusCode == http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	case resp.StatusCode == http.StatusConflict:
		code = pkgerrors.CodeConflict
	}

	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return pkgerrors.New(code, message)
}

func upstreamMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}

	for _, key := range []string{"error", "message", "detail"} {
		var msg string
		if field, ok := envelope[key]; ok && json.Unmarshal(field, &msg) == nil {
			return msg
		}
	}

	// Serializer errors arrive as {"field": ["problem", ...]}.
	for field, value := range envelope {
		var problems []string
		if json.Unmarshal(value, &problems) == nil && len(problems) > 0 {
			return fmt.Sprintf("%s: %s", field, problems[0])
		}
	}
	return ""
}
