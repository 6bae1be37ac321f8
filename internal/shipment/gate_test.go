package shipment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/events"
)

// recordingPublisher captures emitted events for assertions.
type recordingPublisher struct {
	published []events.StatusChanged
	err       error
}

func (p *recordingPublisher) PublishStatusChanged(ctx context.Context, ev events.StatusChanged) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func seedOrder(t *testing.T, store *MemoryStore, id string, status domain.ShipmentStatus) {
	t.Helper()
	order := &domain.PurchaseOrder{
		ID:             id,
		OrderReference: "PO-" + id,
		Destination:    "Lusaka",
		Supplier:       "Acme Trading",
		OrderDate:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:         status,
		TotalValue:     decimal.NewFromInt(100),
	}
	if err := store.SaveOrder(context.Background(), order); err != nil {
		t.Fatalf("seed order %s: %v", id, err)
	}
}

func validDetails(status string) domain.ShipmentDetails {
	return domain.ShipmentDetails{
		ShippingLineID: 1,
		ConsigneeID:    2,
		ContainerType:  "40ft HC",
		BillOfLading:   "BL-2025-0001",
		ContainerNo:    "MSKU1234567",
		InvoiceNo:      "INV-778",
		ETA:            time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		ShipmentStatus: status,
	}
}

func TestSelectOrderOnlyPending(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedOrder(t, store, "a", domain.StatusPending)
	seedOrder(t, store, "b", domain.StatusInTransit)

	gate := NewGate(store, nil)

	if err := gate.SelectOrder(ctx, "a"); err != nil {
		t.Fatalf("select pending: %v", err)
	}
	if selected, ok := gate.Selected(); !ok || selected != "a" {
		t.Fatalf("selected = %q, %v", selected, ok)
	}

	// A refused selection leaves the current one untouched.
	if err := gate.SelectOrder(ctx, "b"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("select in-transit: err = %v, want ErrNotPending", err)
	}
	if selected, _ := gate.Selected(); selected != "a" {
		t.Errorf("selection changed to %q after refused select", selected)
	}
}

func TestSelectOrderUnknown(t *testing.T) {
	gate := NewGate(NewMemoryStore(), nil)
	if err := gate.SelectOrder(context.Background(), "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestApplyShipmentUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedOrder(t, store, "a", domain.StatusPending)
	seedOrder(t, store, "b", domain.StatusPending)
	publisher := &recordingPublisher{}

	gate := NewGate(store, publisher)
	if err := gate.SelectOrder(ctx, "a"); err != nil {
		t.Fatalf("select: %v", err)
	}

	updated, err := gate.ApplyShipmentUpdate(ctx, validDetails("Port"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if updated.Status != domain.StatusPort {
		t.Errorf("status = %s, want Port", updated.Status)
	}
	if updated.BillOfLading != "BL-2025-0001" {
		t.Errorf("bill of lading not applied: %q", updated.BillOfLading)
	}
	if updated.ETA == nil || !updated.ETA.Equal(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("eta not applied: %v", updated.ETA)
	}

	// Exactly one order changed.
	other, err := store.GetOrder(ctx, "b")
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if other.Status != domain.StatusPending {
		t.Errorf("untargeted order mutated: %s", other.Status)
	}

	// Selection cleared synchronously.
	if _, ok := gate.Selected(); ok {
		t.Error("selection not cleared after update")
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.published))
	}
	ev := publisher.published[0]
	if ev.PreviousStatus != domain.StatusPending || ev.NewStatus != domain.StatusPort {
		t.Errorf("event transition %s -> %s", ev.PreviousStatus, ev.NewStatus)
	}
}

func TestApplyShipmentUpdateNoSelection(t *testing.T) {
	gate := NewGate(NewMemoryStore(), nil)
	if _, err := gate.ApplyShipmentUpdate(context.Background(), validDetails("Border")); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
}

func TestApplyShipmentUpdateValidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedOrder(t, store, "a", domain.StatusPending)
	gate := NewGate(store, nil)
	if err := gate.SelectOrder(ctx, "a"); err != nil {
		t.Fatalf("select: %v", err)
	}

	details := validDetails("Port")
	details.BillOfLading = "  "
	details.ShipmentStatus = "Teleported"

	_, err := gate.ApplyShipmentUpdate(ctx, details)
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}

	fields := map[string]bool{}
	for _, fe := range verrs {
		fields[fe.Field] = true
	}
	if !fields["bill_of_lading"] || !fields["shipment_status"] {
		t.Errorf("missing expected field errors, got %v", verrs)
	}

	// A failed validation must not consume the selection or touch the order.
	if _, ok := gate.Selected(); !ok {
		t.Error("selection dropped by failed validation")
	}
	order, _ := store.GetOrder(ctx, "a")
	if order.Status != domain.StatusPending {
		t.Errorf("order mutated by failed validation: %s", order.Status)
	}
}

func TestApplyShipmentUpdateStaleSelection(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedOrder(t, store, "a", domain.StatusPending)
	gate := NewGate(store, nil)
	if err := gate.SelectOrder(ctx, "a"); err != nil {
		t.Fatalf("select: %v", err)
	}

	// The order leaves Pending behind the gate's back.
	order, _ := store.GetOrder(ctx, "a")
	order.Status = domain.StatusDelivered
	if err := store.UpdateOrder(ctx, order); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := gate.ApplyShipmentUpdate(ctx, validDetails("Port")); !errors.Is(err, ErrNotPending) {
		t.Fatalf("err = %v, want ErrNotPending", err)
	}
	if _, ok := gate.Selected(); ok {
		t.Error("stale selection not cleared")
	}
}

func TestApplyShipmentUpdateSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedOrder(t, store, "a", domain.StatusPending)
	publisher := &recordingPublisher{err: errors.New("broker down")}

	gate := NewGate(store, publisher)
	if err := gate.SelectOrder(ctx, "a"); err != nil {
		t.Fatalf("select: %v", err)
	}

	updated, err := gate.ApplyShipmentUpdate(ctx, validDetails("In Transit"))
	if err != nil {
		t.Fatalf("apply with failing publisher: %v", err)
	}
	if updated.Status != domain.StatusInTransit {
		t.Errorf("status = %s, want In Transit", updated.Status)
	}
}

func TestPendingOrders(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedOrder(t, store, "a", domain.StatusPending)
	seedOrder(t, store, "b", domain.StatusDelivered)
	seedOrder(t, store, "c", domain.StatusPending)

	gate := NewGate(store, nil)
	pending, err := gate.PendingOrders(ctx, 1, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d orders, want 2", len(pending))
	}
	for _, order := range pending {
		if order.Status != domain.StatusPending {
			t.Errorf("non-pending order %s in list", order.ID)
		}
	}
}
