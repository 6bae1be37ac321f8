// internal/service/order_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/order"
	"github.com/oceanbridge/importflow/internal/repository"
)

// DraftView is the state of a draft session returned to the client
// after every mutation, with totals freshly derived.
type DraftView struct {
	SessionID string             `json:"session_id"`
	Items     []domain.OrderLine `json:"items"`
	Totals    order.Totals       `json:"totals"`
}

// SubmitOrderInput carries the header fields of an order submission.
type SubmitOrderInput struct {
	OrderReference string    `json:"order_reference"`
	Destination    string    `json:"destination"`
	Supplier       string    `json:"supplier"`
	OrderDate      time.Time `json:"order_date"`
}

// OrderService runs order-creation sessions: it resolves catalog
// candidates, applies calculator operations and turns a finished draft
// into a durable Pending purchase order.
type OrderService struct {
	sessions *order.Sessions
	orders   repository.OrderRepository
	refs     repository.ReferenceRepository
}

func NewOrderService(orders repository.OrderRepository, refs repository.ReferenceRepository) *OrderService {
	return &OrderService{
		sessions: order.NewSessions(),
		orders:   orders,
		refs:     refs,
	}
}

// StartDraft opens a new order-creation session.
func (s *OrderService) StartDraft(ctx context.Context) (string, error) {
	return s.sessions.Open(ctx)
}

// CancelDraft discards a session and any in-progress edits.
func (s *OrderService) CancelDraft(sessionID string) {
	s.sessions.Close(sessionID)
}

// ToggleItem selects or deselects a catalog product on the draft.
func (s *OrderService) ToggleItem(ctx context.Context, sessionID string, productID int64) (*DraftView, error) {
	product, err := s.refs.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	uom, err := s.refs.GetUOM(ctx, product.UOMID)
	if err != nil {
		return nil, fmt.Errorf("resolve uom: %w", err)
	}

	candidate := order.Candidate{
		ProductID:     product.ID,
		ProductName:   product.Name,
		UOMCode:       uom.Code,
		PiecesPerUnit: uom.PiecesPerUnit,
	}

	return s.withView(ctx, sessionID, func(d *order.Draft) error {
		d.AddItem(candidate)
		return nil
	})
}

// RemoveItem drops a line from the draft; absent lines are a no-op.
func (s *OrderService) RemoveItem(ctx context.Context, sessionID, lineID string) (*DraftView, error) {
	return s.withView(ctx, sessionID, func(d *order.Draft) error {
		d.RemoveItem(lineID)
		return nil
	})
}

// UpdateItemField parses raw numeric text and applies it to one line's
// quantity or unit rate. Invalid text is rejected, never coerced.
func (s *OrderService) UpdateItemField(ctx context.Context, sessionID, lineID, field, raw string) (*DraftView, error) {
	value, err := order.ParseAmount(field, raw)
	if err != nil {
		return nil, err
	}
	return s.withView(ctx, sessionID, func(d *order.Draft) error {
		return d.UpdateItemField(lineID, field, value)
	})
}

// UpdateAdjustment parses and applies discount/tax input.
func (s *OrderService) UpdateAdjustment(ctx context.Context, sessionID, field, raw string) (*DraftView, error) {
	value, err := order.ParseAmount(field, raw)
	if err != nil {
		return nil, err
	}
	return s.withView(ctx, sessionID, func(d *order.Draft) error {
		return d.UpdateAdjustment(field, value)
	})
}

// View returns the current draft state without mutating it.
func (s *OrderService) View(ctx context.Context, sessionID string) (*DraftView, error) {
	return s.withView(ctx, sessionID, func(d *order.Draft) error { return nil })
}

// Submit turns the draft into a Pending purchase order, persists it and
// closes the session. An empty draft cannot be submitted.
func (s *OrderService) Submit(ctx context.Context, sessionID string, input SubmitOrderInput) (*domain.PurchaseOrder, error) {
	var po *domain.PurchaseOrder
	err := s.sessions.With(ctx, sessionID, func(d *order.Draft) error {
		items := d.Items()
		if len(items) == 0 {
			return fmt.Errorf("draft has no line items")
		}

		orderDate := input.OrderDate
		if orderDate.IsZero() {
			orderDate = time.Now()
		}

		po = &domain.PurchaseOrder{
			ID:             uuid.NewString(),
			OrderReference: input.OrderReference,
			Destination:    input.Destination,
			Supplier:       input.Supplier,
			OrderDate:      orderDate,
			Status:         domain.StatusPending,
			Lines:          items,
		}
		for i := range po.Lines {
			po.Lines[i].ID = uuid.NewString()
			po.Lines[i].OrderID = po.ID
		}
		po.RecomputeAggregates()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.orders.SaveOrder(ctx, po); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.sessions.Close(sessionID)

	log.Info().
		Str("order_id", po.ID).
		Str("reference", po.OrderReference).
		Str("total_value", po.TotalValue.String()).
		Msg("purchase order submitted")
	return po, nil
}

// ListOrders returns persisted purchase orders.
func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, error) {
	return s.orders.ListOrders(ctx, filter)
}

// GetOrder returns one purchase order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) withView(ctx context.Context, sessionID string, fn func(*order.Draft) error) (*DraftView, error) {
	var view *DraftView
	err := s.sessions.With(ctx, sessionID, func(d *order.Draft) error {
		if err := fn(d); err != nil {
			return err
		}
		view = &DraftView{
			SessionID: sessionID,
			Items:     d.Items(),
			Totals:    d.Totals(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
