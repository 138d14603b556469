package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ecomarket/storefront/api/middleware"
	"github.com/ecomarket/storefront/api/responses"
	"github.com/ecomarket/storefront/api/validators"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/upstream"
)

// SellerBackend is the slice of the marketplace API the seller console
// handlers need.
type SellerBackend interface {
	SellerProfile(ctx context.Context, token string) (upstream.SellerProfile, error)
	UpdateSellerProfile(ctx context.Context, token string, input upstream.SellerProfileUpdate) (upstream.SellerProfile, error)
	SellerStatus(ctx context.Context, token string) (upstream.SellerStatus, error)
	SellerProducts(ctx context.Context, token string) ([]upstream.Product, error)
	CreateSellerProduct(ctx context.Context, token string, input upstream.NewProduct) (upstream.Product, error)
	DeleteSellerProduct(ctx context.Context, token string, productID int64) error
	SellerOrders(ctx context.Context, token string) ([]upstream.OrderItem, error)
	UpdateOrderItemStatus(ctx context.Context, token string, orderItemID int64, status string) error
}

func SellerProfileGet(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		profile, err := backend.SellerProfile(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type sellerProfileUpdateRequest struct {
	StoreName   string `json:"store_name" validate:"required"`
	GSTNumber   string `json:"gst_number" validate:"omitempty,len=15"`
	PANNumber   string `json:"pan_number" validate:"omitempty,len=10"`
	BankAccount string `json:"bank_account"`
}

func SellerProfilePut(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		var payload sellerProfileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		updated, err := backend.UpdateSellerProfile(r.Context(), state.AccessToken, upstream.SellerProfileUpdate{
			StoreName:   payload.StoreName,
			GSTNumber:   payload.GSTNumber,
			PANNumber:   payload.PANNumber,
			BankAccount: payload.BankAccount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// SellerStatusGet reports verification state; unverified sellers' listings
// stay hidden from the public catalog.
func SellerStatusGet(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		status, err := backend.SellerStatus(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}

func SellerProductsList(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		products, err := backend.SellerProducts(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

type newProductRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Price         string `json:"price" validate:"required"`
	StockQuantity int    `json:"stock_quantity" validate:"min=0"`
	Category      int64  `json:"category" validate:"required,gt=0"`
	Brand         string `json:"brand"`
}

func SellerProductsCreate(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		var payload newProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil || price.LessThan(decimal.Zero) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative decimal string"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		created, err := backend.CreateSellerProduct(r.Context(), state.AccessToken, upstream.NewProduct{
			Title:         payload.Title,
			Description:   payload.Description,
			Price:         price,
			StockQuantity: payload.StockQuantity,
			Category:      payload.Category,
			Brand:         payload.Brand,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func SellerProductsDelete(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		productID, err := validators.ParseURLID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		if err := backend.DeleteSellerProduct(r.Context(), state.AccessToken, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "product removed"})
	}
}

func SellerOrdersList(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		items, err := backend.SellerOrders(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PLACED SHIPPED DELIVERED CANCELLED"`
}

func SellerOrderStatusPut(backend SellerBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller console unavailable"))
			return
		}

		itemID, err := validators.ParseURLID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		if err := backend.UpdateOrderItemStatus(r.Context(), state.AccessToken, itemID, payload.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "status updated"})
	}
}
