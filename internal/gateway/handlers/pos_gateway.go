package handlers

import (
	"context"
	"net/http"
	"time"

	"sarisari-pos/internal/checkout"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AddItemToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type CompletePaymentRequest struct {
	PaymentMethod string          `json:"payment_method" binding:"required"`
	CashReceived  decimal.Decimal `json:"cash_received"`
	// Total is what the customer was shown; zero skips the check.
	Total decimal.Decimal `json:"total"`
}

// --- Cart Handlers ---

func (h *TerminalHTTPHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse("Cart retrieved successfully", h.cart.Snapshot()))
}

func (h *TerminalHTTPHandler) AddItemToCart(c *gin.Context) {
	var req AddItemToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	p, ok := h.catalog.Product(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse("Product not found"))
		return
	}
	if err := h.cart.Add(p); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Item added to cart successfully", h.cart.Snapshot()))
}

func (h *TerminalHTTPHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	if err := h.cart.UpdateQuantity(c.Param("id"), req.Delta); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Cart updated successfully", h.cart.Snapshot()))
}

func (h *TerminalHTTPHandler) RemoveItemFromCart(c *gin.Context) {
	h.cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, successResponse("Item removed from cart successfully", h.cart.Snapshot()))
}

func (h *TerminalHTTPHandler) ClearCart(c *gin.Context) {
	if h.checkout.Status().State == checkout.Submitting {
		h.handleError(c, checkout.ErrCheckoutInProgress)
		return
	}
	h.cart.Clear()
	c.JSON(http.StatusOK, successResponse("Cart cleared successfully", h.cart.Snapshot()))
}

// --- Checkout Handlers ---

func (h *TerminalHTTPHandler) GetCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse("Checkout status retrieved successfully", h.checkout.Status()))
}

func (h *TerminalHTTPHandler) RequestCheckout(c *gin.Context) {
	if err := h.checkout.RequestCheckout(); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Payment opened", h.checkout.Status()))
}

// CompletePayment submits the sale using the cart as it stands now.
func (h *TerminalHTTPHandler) CompletePayment(c *gin.Context) {
	var req CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	receipt, err := h.checkout.CompletePayment(ctx, checkout.Payment{
		Method:       req.PaymentMethod,
		Total:        req.Total,
		Items:        h.cart.Lines(),
		CashReceived: req.CashReceived,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse("Sale completed successfully", receipt))
}

func (h *TerminalHTTPHandler) CancelPayment(c *gin.Context) {
	if err := h.checkout.CancelPayment(); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Payment cancelled", h.checkout.Status()))
}

func (h *TerminalHTTPHandler) DismissReceipt(c *gin.Context) {
	h.checkout.DismissReceipt()
	c.JSON(http.StatusOK, successResponse("Receipt closed", h.checkout.Status()))
}

// --- Sales History Handlers ---

func (h *TerminalHTTPHandler) ListSales(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	sales, err := h.history.ListTransactions(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Sales retrieved successfully", sales, gin.H{"total": len(sales)}))
}

type ListReceiptsQuery struct {
	Limit int `form:"limit,default=50"`
}

func (h *TerminalHTTPHandler) ListReceipts(c *gin.Context) {
	if h.journal == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse("Receipt journal is not configured"))
		return
	}
	var query ListReceiptsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	receipts, err := h.journal.Recent(c.Request.Context(), query.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Receipts retrieved successfully", receipts, gin.H{"total": len(receipts)}))
}

// GetReceipt looks in the journal, then at the last receipt in memory.
func (h *TerminalHTTPHandler) GetReceipt(c *gin.Context) {
	number := c.Param("number")
	if h.journal != nil {
		r, err := h.journal.Find(c.Request.Context(), number)
		if err == nil {
			c.JSON(http.StatusOK, successResponse("Receipt retrieved successfully", r))
			return
		}
		if statusFor(err) != http.StatusNotFound {
			h.handleError(c, err)
			return
		}
	}
	if r := h.checkout.Receipt(); r != nil && r.Number == number {
		c.JSON(http.StatusOK, successResponse("Receipt retrieved successfully", r))
		return
	}
	c.JSON(http.StatusNotFound, errorResponse("Receipt not found"))
}
