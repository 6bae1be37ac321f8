// internal/api/handlers/shipment_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/service"
	"github.com/oceanbridge/importflow/internal/shipment"
)

type ShipmentHandler struct {
	shipmentService *service.ShipmentService
}

func NewShipmentHandler(shipmentService *service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// ListOrders returns orders for the shipment screen, filterable by status.
func (h *ShipmentHandler) ListOrders(c *gin.Context) {
	filter := domain.OrderFilter{
		Status:   c.Query("status"),
		Supplier: c.Query("supplier"),
		Page:     parsePositiveIntWithDefault(c.Query("page"), 1),
		PageSize: parsePositiveIntWithDefault(c.Query("page_size"), 20),
	}

	orders, err := h.shipmentService.ListOrders(c.Request.Context(), filter)
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

// PendingOrders returns only orders still eligible for selection.
func (h *ShipmentHandler) PendingOrders(c *gin.Context) {
	page := parsePositiveIntWithDefault(c.Query("page"), 1)
	pageSize := parsePositiveIntWithDefault(c.Query("page_size"), 20)

	orders, err := h.shipmentService.PendingOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pending orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":    orders,
		"page":      page,
		"page_size": pageSize,
	})
}

type selectOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// SelectOrder marks a pending order as the target of the next shipment update.
func (h *ShipmentHandler) SelectOrder(c *gin.Context) {
	var req selectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	if err := h.shipmentService.SelectOrder(c.Request.Context(), req.OrderID); err != nil {
		switch {
		case errors.Is(err, shipment.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, shipment.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to select order"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": req.OrderID})
}

// ClearSelection drops the current selection, if any.
func (h *ShipmentHandler) ClearSelection(c *gin.Context) {
	h.shipmentService.ClearSelection()
	c.Status(http.StatusNoContent)
}

// ApplyUpdate writes shipment details onto the selected order and
// advances its status. The selection is consumed whether or not the
// downstream event publish succeeds.
func (h *ShipmentHandler) ApplyUpdate(c *gin.Context) {
	var details domain.ShipmentDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipment payload"})
		return
	}

	updated, err := h.shipmentService.ApplyShipmentUpdate(c.Request.Context(), details)
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs})
		case errors.Is(err, shipment.ErrNoSelection):
			c.JSON(http.StatusConflict, gin.H{"error": "no order selected"})
		case errors.Is(err, shipment.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, shipment.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply shipment update"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

type telexRequest struct {
	Released bool `json:"released"`
}

// SetTelex flips the telex-released flag on an order.
func (h *ShipmentHandler) SetTelex(c *gin.Context) {
	var req telexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telex payload"})
		return
	}

	if err := h.shipmentService.SetTelexReleased(c.Request.Context(), c.Param("id"), req.Released); err != nil {
		if errors.Is(err, shipment.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update telex flag"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": c.Param("id"), "telex_released": req.Released})
}
