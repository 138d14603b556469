package upstream

import "github.com/shopspring/decimal"

// LoginInput carries the credentials the gateway forwards verbatim.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's token grant. Role is assigned server-side;
// the gateway never chooses it.
type LoginResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Role    string `json:"role"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

type Profile struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type ProfileUpdate struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

type ProductImage struct {
	ImageURL string `json:"image_url"`
}

type Product struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Brand         string          `json:"brand"`
	Category      int64           `json:"category"`
	IsActive      bool            `json:"is_active"`
	Images        []ProductImage  `json:"images"`
}

// ProductPage is the backend's page-number pagination envelope.
type ProductPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Product `json:"results"`
}

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Parent   *int64 `json:"parent"`
	IsActive bool   `json:"is_active"`
}

type NewProduct struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      int64           `json:"category"`
	Brand         string          `json:"brand,omitempty"`
}

type Address struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	IsDefault   bool   `json:"is_default"`
}

type NewAddress struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	IsDefault   bool   `json:"is_default"`
}

// CheckoutItem is one cart line in the order-creation request. Price is
// intentionally absent: the backend is the authority on price at order time.
type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CheckoutInput struct {
	AddressID int64          `json:"address_id"`
	Items     []CheckoutItem `json:"items"`
}

type CheckoutResult struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type OrderItem struct {
	ID           int64           `json:"id"`
	Product      int64           `json:"product"`
	ProductTitle string          `json:"product_title"`
	Seller       int64           `json:"seller"`
	SellerName   string          `json:"seller_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
}

type Order struct {
	ID                int64           `json:"id"`
	OrderStatus       string          `json:"order_status"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ShippingAddressID int64           `json:"shipping_address_id"`
	CreatedAt         string          `json:"created_at"`
	Items             []OrderItem     `json:"items"`
}

type SellerProfile struct {
	ID          int64   `json:"id"`
	StoreName   string  `json:"store_name"`
	GSTNumber   string  `json:"gst_number"`
	PANNumber   string  `json:"pan_number"`
	BankAccount string  `json:"bank_account"`
	IsVerified  bool    `json:"is_verified"`
	VerifiedAt  *string `json:"verified_at"`
}

type SellerProfileUpdate struct {
	StoreName   string `json:"store_name"`
	GSTNumber   string `json:"gst_number,omitempty"`
	PANNumber   string `json:"pan_number,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
}

type SellerStatus struct {
	StoreName  string `json:"store_name"`
	IsVerified bool   `json:"is_verified"`
}

type SellerSummary struct {
	ID         int64  `json:"id"`
	StoreName  string `json:"store_name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}
