// internal/service/shipment_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/events"
	"github.com/oceanbridge/importflow/internal/repository"
	"github.com/oceanbridge/importflow/internal/shipment"
)

// ShipmentService exposes the in-transit workflow: listing orders,
// selecting a Pending one and applying a shipment-detail update, plus
// the telex release toggle.
type ShipmentService struct {
	gate   *shipment.Gate
	orders repository.OrderRepository
}

func NewShipmentService(orders repository.OrderRepository, publisher events.Publisher) *ShipmentService {
	return &ShipmentService{
		gate:   shipment.NewGate(orders, publisher),
		orders: orders,
	}
}

// PendingOrders lists orders still eligible for a shipment update.
func (s *ShipmentService) PendingOrders(ctx context.Context, page, pageSize int) ([]domain.PurchaseOrder, error) {
	return s.gate.PendingOrders(ctx, page, pageSize)
}

// ListOrders lists orders across all statuses.
func (s *ShipmentService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, error) {
	return s.orders.ListOrders(ctx, filter)
}

// SelectOrder targets a Pending order for the next update.
func (s *ShipmentService) SelectOrder(ctx context.Context, orderID string) error {
	return s.gate.SelectOrder(ctx, orderID)
}

// Selection returns the currently targeted order id, if any.
func (s *ShipmentService) Selection() (string, bool) {
	return s.gate.Selected()
}

// ClearSelection drops the current target.
func (s *ShipmentService) ClearSelection() {
	s.gate.ClearSelection()
}

// ApplyShipmentUpdate validates and applies the submitted details to
// the selected order.
func (s *ShipmentService) ApplyShipmentUpdate(ctx context.Context, details domain.ShipmentDetails) (*domain.PurchaseOrder, error) {
	updated, err := s.gate.ApplyShipmentUpdate(ctx, details)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", updated.ID).
		Str("status", updated.Status.String()).
		Msg("shipment update applied")
	return updated, nil
}

// SetTelexReleased flips the telex release flag on an order.
func (s *ShipmentService) SetTelexReleased(ctx context.Context, orderID string, released bool) error {
	return s.orders.SetTelexReleased(ctx, orderID, released)
}
