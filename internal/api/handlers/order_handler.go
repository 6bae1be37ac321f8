// internal/api/handlers/order_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/order"
	"github.com/oceanbridge/importflow/internal/service"
	"github.com/oceanbridge/importflow/internal/shipment"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders returns purchase orders filtered by status and supplier.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := domain.OrderFilter{
		Status:   c.Query("status"),
		Supplier: c.Query("supplier"),
		Page:     parsePositiveIntWithDefault(c.Query("page"), 1),
		PageSize: parsePositiveIntWithDefault(c.Query("page_size"), 20),
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":    orders,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// GetOrder returns a single purchase order with its line items.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	po, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, shipment.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, po)
}

// StartDraft opens a new order-creation session.
func (h *OrderHandler) StartDraft(c *gin.Context) {
	sessionID, err := h.orderService.StartDraft(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start draft"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": sessionID})
}

// GetDraft returns the current draft state with derived totals.
func (h *OrderHandler) GetDraft(c *gin.Context) {
	view, err := h.orderService.View(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CancelDraft discards a draft session.
func (h *OrderHandler) CancelDraft(c *gin.Context) {
	h.orderService.CancelDraft(c.Param("session"))
	c.Status(http.StatusNoContent)
}

type toggleItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// ToggleItem adds a catalog product to the draft, or removes it if the
// same product is picked again.
func (h *OrderHandler) ToggleItem(c *gin.Context) {
	var req toggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	view, err := h.orderService.ToggleItem(c.Request.Context(), c.Param("session"), req.ProductID)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveItem deletes a line from the draft. Removing a line that is
// already gone is not an error.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	view, err := h.orderService.RemoveItem(c.Request.Context(), c.Param("session"), c.Param("line"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateItemField edits quantity or unit rate on a draft line.
func (h *OrderHandler) UpdateItemField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field is required"})
		return
	}

	view, err := h.orderService.UpdateItemField(c.Request.Context(), c.Param("session"), c.Param("line"), req.Field, req.Value)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateAdjustment edits the discount or one of the tax fields.
func (h *OrderHandler) UpdateAdjustment(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field is required"})
		return
	}

	view, err := h.orderService.UpdateAdjustment(c.Request.Context(), c.Param("session"), req.Field, req.Value)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit turns a draft into a durable pending purchase order.
func (h *OrderHandler) Submit(c *gin.Context) {
	var input service.SubmitOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	po, err := h.orderService.Submit(c.Request.Context(), c.Param("session"), input)
	if err != nil {
		if errors.Is(err, order.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "draft session not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, po)
}

// draftError maps calculator errors onto HTTP statuses.
func (h *OrderHandler) draftError(c *gin.Context, err error) {
	var parseErr order.FieldParseError
	switch {
	case errors.Is(err, order.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "draft session not found"})
	case errors.Is(err, order.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error(), "field": parseErr.Field})
	case errors.Is(err, order.ErrNegativeValue), errors.Is(err, order.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "draft operation failed"})
	}
}
