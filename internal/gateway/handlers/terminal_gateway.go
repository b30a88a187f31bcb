package handlers

import (
	"context"
	"errors"
	"net/http"

	"sarisari-pos/internal/backend"
	"sarisari-pos/internal/cart"
	"sarisari-pos/internal/catalog"
	"sarisari-pos/internal/category"
	"sarisari-pos/internal/checkout"
	"sarisari-pos/internal/database"
	"sarisari-pos/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CatalogService interface {
	Snapshot() catalog.Snapshot
	Product(id string) (catalog.Product, bool)
	Refresh(ctx context.Context) error
	CreateProduct(ctx context.Context, in catalog.ProductInput) error
	UpdateProduct(ctx context.Context, id string, u catalog.ProductUpdate) error
	AddCategory(ctx context.Context, name string, image *catalog.Image) (catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CartService interface {
	Add(p catalog.Product) error
	UpdateQuantity(productID string, delta int) error
	Remove(productID string)
	Clear()
	Lines() []cart.Line
	Total() decimal.Decimal
	Snapshot() cart.Snapshot
}

type CheckoutService interface {
	RequestCheckout() error
	CancelPayment() error
	CompletePayment(ctx context.Context, p checkout.Payment) (*checkout.Receipt, error)
	DismissReceipt()
	Status() checkout.Status
	Receipt() *checkout.Receipt
}

type SalesHistory interface {
	ListTransactions(ctx context.Context) ([]backend.Sale, error)
}

type ReceiptJournal interface {
	Find(ctx context.Context, receiptNumber string) (*checkout.Receipt, error)
	Recent(ctx context.Context, limit int) ([]checkout.Receipt, error)
}

type SessionService interface {
	Login(ctx context.Context, auth session.Authenticator, username, password string) (session.User, error)
	Logout(ctx context.Context) error
	Info(ctx context.Context) session.Info
}

type Log interface {
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// Dependencies wires the handler. Journal may be nil.
type Dependencies struct {
	Catalog  CatalogService
	Resolver *category.Resolver
	Cart     CartService
	Checkout CheckoutService
	History  SalesHistory
	Journal  ReceiptJournal
	Session  SessionService
	Auth     session.Authenticator
	Log      Log
}

type TerminalHTTPHandler struct {
	catalog  CatalogService
	resolver *category.Resolver
	cart     CartService
	checkout CheckoutService
	history  SalesHistory
	journal  ReceiptJournal
	session  SessionService
	auth     session.Authenticator
	log      Log
}

func NewTerminalHTTPHandler(d Dependencies) *TerminalHTTPHandler {
	h := &TerminalHTTPHandler{
		catalog:  d.Catalog,
		resolver: d.Resolver,
		cart:     d.Cart,
		checkout: d.Checkout,
		history:  d.History,
		journal:  d.Journal,
		session:  d.Session,
		auth:     d.Auth,
		log:      d.Log,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.resolver == nil {
		h.resolver = category.NewResolver("")
	}
	return h
}

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

func successWithMetaResponse(message string, data interface{}, meta interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, backend.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, checkout.ErrCheckoutInProgress),
		errors.Is(err, checkout.ErrPaymentNotOpen),
		errors.Is(err, checkout.ErrReceiptOpen),
		errors.Is(err, catalog.ErrDuplicateBarcode),
		errors.Is(err, catalog.ErrDuplicateCategory):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrUnknownPaymentMethod),
		errors.Is(err, checkout.ErrInsufficientCash),
		errors.Is(err, checkout.ErrTotalMismatch),
		errors.Is(err, catalog.ErrEmptyName),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, catalog.ErrNegativeStock):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, database.ErrReceiptNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, checkout.ErrSubmissionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err with the matching status and aborts the request.
func (h *TerminalHTTPHandler) handleError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, errorResponse(err.Error()))
	c.Abort()
}
