package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/order"
	"github.com/oceanbridge/importflow/internal/shipment"
)

// --- mock stores ---

type mockOrderRepo struct {
	saved  []*domain.PurchaseOrder
	orders map[string]*domain.PurchaseOrder
	telex  map[string]bool
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders: make(map[string]*domain.PurchaseOrder),
		telex:  make(map[string]bool),
	}
}

func (m *mockOrderRepo) SaveOrder(ctx context.Context, po *domain.PurchaseOrder) error {
	m.saved = append(m.saved, po)
	m.orders[po.ID] = po
	return nil
}

func (m *mockOrderRepo) GetOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	po, ok := m.orders[id]
	if !ok {
		return nil, shipment.ErrOrderNotFound
	}
	copied := *po
	return &copied, nil
}

func (m *mockOrderRepo) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, error) {
	var out []domain.PurchaseOrder
	for _, po := range m.orders {
		if filter.Status != "" && po.Status.String() != filter.Status {
			continue
		}
		out = append(out, *po)
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateOrder(ctx context.Context, po *domain.PurchaseOrder) error {
	if _, ok := m.orders[po.ID]; !ok {
		return shipment.ErrOrderNotFound
	}
	copied := *po
	m.orders[po.ID] = &copied
	return nil
}

func (m *mockOrderRepo) SetTelexReleased(ctx context.Context, id string, released bool) error {
	if _, ok := m.orders[id]; !ok {
		return shipment.ErrOrderNotFound
	}
	m.telex[id] = released
	m.orders[id].TelexReleased = released
	return nil
}

type mockReferenceRepo struct {
	products map[int64]*domain.Product
	uoms     map[int64]*domain.UOM
}

func newMockReferenceRepo() *mockReferenceRepo {
	return &mockReferenceRepo{
		products: map[int64]*domain.Product{
			1: {ID: 1, SKU: "SKU-1", Name: "Maize Meal 10kg", UOMID: 1, VendorID: 1},
			2: {ID: 2, SKU: "SKU-2", Name: "Sugar 2kg", UOMID: 2, VendorID: 1},
		},
		uoms: map[int64]*domain.UOM{
			1: {ID: 1, Code: "BAG", Name: "Bag", PiecesPerUnit: 1},
			2: {ID: 2, Code: "CTN", Name: "Carton", PiecesPerUnit: 12},
		},
	}
}

func (m *mockReferenceRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func (m *mockReferenceRepo) GetUOM(ctx context.Context, id int64) (*domain.UOM, error) {
	u, ok := m.uoms[id]
	if !ok {
		return nil, fmt.Errorf("uom %d not found", id)
	}
	return u, nil
}

func (m *mockReferenceRepo) GetCountries(ctx context.Context) ([]domain.Country, error) { return nil, nil }
func (m *mockReferenceRepo) GetCities(ctx context.Context, countryID int64) ([]domain.City, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetVendors(ctx context.Context, search string, limit, offset int) ([]domain.Vendor, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetUOMs(ctx context.Context) ([]domain.UOM, error) { return nil, nil }
func (m *mockReferenceRepo) GetProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetShippingLines(ctx context.Context) ([]domain.ShippingLine, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetConsignees(ctx context.Context) ([]domain.Consignee, error) {
	return nil, nil
}
func (m *mockReferenceRepo) GetFinalDestinations(ctx context.Context) ([]domain.FinalDestination, error) {
	return nil, nil
}
func (m *mockReferenceRepo) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	return nil
}
func (m *mockReferenceRepo) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	return nil
}
func (m *mockReferenceRepo) CreateProduct(ctx context.Context, product *domain.Product) error {
	return nil
}

// --- tests ---

func TestOrderServiceDraftToSubmit(t *testing.T) {
	ctx := context.Background()
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, newMockReferenceRepo())

	sessionID, err := svc.StartDraft(ctx)
	if err != nil {
		t.Fatalf("start draft: %v", err)
	}

	view, err := svc.ToggleItem(ctx, sessionID, 1)
	if err != nil {
		t.Fatalf("toggle item: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(view.Items))
	}
	lineID := view.Items[0].ID

	if _, err := svc.UpdateItemField(ctx, sessionID, lineID, order.FieldQuantity, "3"); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	view, err = svc.UpdateItemField(ctx, sessionID, lineID, order.FieldUnitRate, "25.50")
	if err != nil {
		t.Fatalf("update rate: %v", err)
	}
	if want := decimal.RequireFromString("76.50"); !view.Totals.Gross.Equal(want) {
		t.Errorf("gross = %s, want %s", view.Totals.Gross, want)
	}

	view, err = svc.UpdateAdjustment(ctx, sessionID, order.AdjDiscount, "6.5")
	if err != nil {
		t.Fatalf("update discount: %v", err)
	}
	if want := decimal.RequireFromString("70"); !view.Totals.Net.Equal(want) {
		t.Errorf("net = %s, want %s", view.Totals.Net, want)
	}

	po, err := svc.Submit(ctx, sessionID, SubmitOrderInput{
		OrderReference: "PO-2025-001",
		Destination:    "Lusaka",
		Supplier:       "Acme Trading",
		OrderDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if po.Status != domain.StatusPending {
		t.Errorf("status = %s, want Pending", po.Status)
	}
	if want := decimal.RequireFromString("76.50"); !po.TotalValue.Equal(want) {
		t.Errorf("total value = %s, want %s", po.TotalValue, want)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d orders, want 1", len(repo.saved))
	}

	// The session is gone once submitted.
	if _, err := svc.View(ctx, sessionID); !errors.Is(err, order.ErrSessionNotFound) {
		t.Errorf("view after submit: err = %v, want ErrSessionNotFound", err)
	}
}

func TestOrderServiceRejectsBadNumericInput(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(newMockOrderRepo(), newMockReferenceRepo())

	sessionID, err := svc.StartDraft(ctx)
	if err != nil {
		t.Fatalf("start draft: %v", err)
	}
	view, err := svc.ToggleItem(ctx, sessionID, 2)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	_, err = svc.UpdateItemField(ctx, sessionID, view.Items[0].ID, order.FieldQuantity, "three")
	var parseErr order.FieldParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want FieldParseError", err)
	}

	// Draft unchanged by the rejected input.
	view, err = svc.View(ctx, sessionID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if got := view.Items[0].Quantity.String(); got != "1" {
		t.Errorf("quantity = %s, want 1", got)
	}
}

func TestOrderServiceSubmitEmptyDraft(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(newMockOrderRepo(), newMockReferenceRepo())

	sessionID, err := svc.StartDraft(ctx)
	if err != nil {
		t.Fatalf("start draft: %v", err)
	}
	if _, err := svc.Submit(ctx, sessionID, SubmitOrderInput{OrderReference: "PO-X"}); err == nil {
		t.Fatal("empty draft submitted")
	}
}

func TestOrderServicePiecesConversion(t *testing.T) {
	ctx := context.Background()
	repo := newMockOrderRepo()
	svc := NewOrderService(repo, newMockReferenceRepo())

	sessionID, _ := svc.StartDraft(ctx)
	view, err := svc.ToggleItem(ctx, sessionID, 2) // carton of 12
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.UpdateItemField(ctx, sessionID, view.Items[0].ID, order.FieldQuantity, "5"); err != nil {
		t.Fatalf("quantity: %v", err)
	}
	if _, err := svc.UpdateItemField(ctx, sessionID, view.Items[0].ID, order.FieldUnitRate, "10"); err != nil {
		t.Fatalf("rate: %v", err)
	}

	po, err := svc.Submit(ctx, sessionID, SubmitOrderInput{OrderReference: "PO-PCS"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if po.TotalQuantityPcs != 60 {
		t.Errorf("total pcs = %d, want 60", po.TotalQuantityPcs)
	}
}

func TestShipmentServiceTelexToggle(t *testing.T) {
	ctx := context.Background()
	repo := newMockOrderRepo()
	repo.orders["po-1"] = &domain.PurchaseOrder{ID: "po-1", Status: domain.StatusInTransit}

	svc := NewShipmentService(repo, nil)
	if err := svc.SetTelexReleased(ctx, "po-1", true); err != nil {
		t.Fatalf("set telex: %v", err)
	}
	if !repo.telex["po-1"] {
		t.Error("telex flag not set")
	}

	if err := svc.SetTelexReleased(ctx, "missing", true); !errors.Is(err, shipment.ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}
