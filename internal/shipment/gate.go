// internal/shipment/gate.go
package shipment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/events"
)

var (
	// ErrNotPending is returned when selecting an order that has already
	// left the Pending state.
	ErrNotPending = errors.New("order is not pending")

	// ErrNoSelection is returned when a shipment update is applied with
	// no order selected.
	ErrNoSelection = errors.New("no order selected")
)

// Gate enforces the single rule of the shipment workflow: only a
// Pending order may be selected, and an applied update overwrites that
// one order's status exactly once. The selection is cleared
// synchronously inside ApplyShipmentUpdate, so eligibility never
// depends on downstream refresh timing.
type Gate struct {
	store     OrderStore
	publisher events.Publisher

	mu       sync.Mutex
	selected string
}

// NewGate wires a gate over the given store and event publisher.
func NewGate(store OrderStore, publisher events.Publisher) *Gate {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Gate{store: store, publisher: publisher}
}

// SelectOrder marks the order as the target of the next shipment
// update. Selection fails for unknown orders and for orders whose
// status is no longer Pending; a failed selection leaves any current
// selection unchanged.
func (g *Gate) SelectOrder(ctx context.Context, orderID string) error {
	order, err := g.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Status.Selectable() {
		return fmt.Errorf("%w: %s is %s", ErrNotPending, orderID, order.Status)
	}

	g.mu.Lock()
	g.selected = orderID
	g.mu.Unlock()
	return nil
}

// Selected returns the currently selected order id, if any.
func (g *Gate) Selected() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selected, g.selected != ""
}

// ClearSelection drops the current selection.
func (g *Gate) ClearSelection() {
	g.mu.Lock()
	g.selected = ""
	g.mu.Unlock()
}

// ApplyShipmentUpdate validates the submitted details and overwrites
// the selected order's status and shipping fields. The Pending
// precondition is re-checked against the store under the selection
// lock, and the selection is cleared before returning regardless of
// which status was written.
func (g *Gate) ApplyShipmentUpdate(ctx context.Context, details domain.ShipmentDetails) (*domain.PurchaseOrder, error) {
	newStatus, err := details.Validate()
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.selected == "" {
		return nil, ErrNoSelection
	}

	order, err := g.store.GetOrder(ctx, g.selected)
	if err != nil {
		g.selected = ""
		return nil, err
	}
	if !order.Status.Selectable() {
		// The order moved on since selection; drop the stale selection.
		g.selected = ""
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPending, order.ID, order.Status)
	}

	previous := order.Status
	eta := details.ETA
	order.Status = newStatus
	order.ShippingLineID = details.ShippingLineID
	order.ConsigneeID = details.ConsigneeID
	order.ContainerType = details.ContainerType
	order.BillOfLading = details.BillOfLading
	order.ContainerNo = details.ContainerNo
	order.InvoiceNo = details.InvoiceNo
	order.ETA = &eta

	if err := g.store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	g.selected = ""

	ev := events.StatusChanged{
		OrderID:        order.ID,
		OrderReference: order.OrderReference,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		OccurredAt:     time.Now(),
	}
	if err := g.publisher.PublishStatusChanged(ctx, ev); err != nil {
		// The status write already landed; eventing is best effort.
		log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish status event")
	}

	return order, nil
}

// PendingOrders lists the orders currently eligible for selection.
func (g *Gate) PendingOrders(ctx context.Context, page, pageSize int) ([]domain.PurchaseOrder, error) {
	return g.store.ListOrders(ctx, domain.OrderFilter{
		Status:   domain.StatusPending.String(),
		Page:     page,
		PageSize: pageSize,
	})
}
