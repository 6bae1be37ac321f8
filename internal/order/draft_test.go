package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func addLine(t *testing.T, d *Draft, productID int64, qty, rate string) string {
	t.Helper()
	c := Candidate{ProductID: productID, ProductName: "test product", UOMCode: "PCS", PiecesPerUnit: 1}
	if !d.AddItem(c) {
		t.Fatalf("AddItem(%d) did not insert", productID)
	}
	id := lineID(productID)
	if err := d.UpdateItemField(id, FieldQuantity, dec(t, qty)); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := d.UpdateItemField(id, FieldUnitRate, dec(t, rate)); err != nil {
		t.Fatalf("set unit rate: %v", err)
	}
	return id
}

func TestDraftTotals(t *testing.T) {
	d := NewDraft()
	addLine(t, d, 1, "2", "5.00")
	addLine(t, d, 2, "3", "10.00")

	if err := d.UpdateAdjustment(AdjDiscount, dec(t, "5")); err != nil {
		t.Fatalf("set discount: %v", err)
	}
	if err := d.UpdateAdjustment(AdjTax1, dec(t, "2")); err != nil {
		t.Fatalf("set tax1: %v", err)
	}

	totals := d.Totals()
	if want := dec(t, "40.00"); !totals.Gross.Equal(want) {
		t.Errorf("gross = %s, want %s", totals.Gross, want)
	}
	if want := dec(t, "37.00"); !totals.Net.Equal(want) {
		t.Errorf("net = %s, want %s", totals.Net, want)
	}
}

func TestDraftTotalsEmpty(t *testing.T) {
	totals := NewDraft().Totals()
	if !totals.Gross.IsZero() {
		t.Errorf("gross = %s, want 0", totals.Gross)
	}
	if !totals.Net.IsZero() {
		t.Errorf("net = %s, want 0", totals.Net)
	}
}

func TestDraftNetCanGoNegative(t *testing.T) {
	d := NewDraft()
	addLine(t, d, 1, "1", "10")
	if err := d.UpdateAdjustment(AdjDiscount, dec(t, "50")); err != nil {
		t.Fatalf("set discount: %v", err)
	}

	totals := d.Totals()
	if want := dec(t, "10"); !totals.Gross.Equal(want) {
		t.Errorf("gross = %s, want %s", totals.Gross, want)
	}
	if want := dec(t, "-40"); !totals.Net.Equal(want) {
		t.Errorf("net = %s, want %s", totals.Net, want)
	}
}

func TestDraftAmountTracksEdits(t *testing.T) {
	d := NewDraft()
	id := addLine(t, d, 7, "4", "2.50")

	items := d.Items()
	if want := dec(t, "10.00"); !items[0].Amount.Equal(want) {
		t.Errorf("amount = %s, want %s", items[0].Amount, want)
	}

	if err := d.UpdateItemField(id, FieldQuantity, dec(t, "6")); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	items = d.Items()
	if want := dec(t, "15.00"); !items[0].Amount.Equal(want) {
		t.Errorf("amount after edit = %s, want %s", items[0].Amount, want)
	}
}

func TestDraftAddItemToggles(t *testing.T) {
	d := NewDraft()
	c := Candidate{ProductID: 3, ProductName: "toggled", UOMCode: "CTN", PiecesPerUnit: 24}

	if !d.AddItem(c) {
		t.Fatal("first AddItem should insert")
	}
	if got := len(d.Items()); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}

	// Re-selecting the same product deselects it.
	if d.AddItem(c) {
		t.Fatal("second AddItem should remove")
	}
	if got := len(d.Items()); got != 0 {
		t.Fatalf("items after toggle = %d, want 0", got)
	}
}

func TestDraftRemoveItemIdempotent(t *testing.T) {
	d := NewDraft()
	id := addLine(t, d, 9, "1", "1")
	addLine(t, d, 10, "2", "3")

	d.RemoveItem(id)
	d.RemoveItem(id)

	items := d.Items()
	if len(items) != 1 || items[0].ProductID != 10 {
		t.Fatalf("unexpected items after double remove: %+v", items)
	}
	if want := dec(t, "6"); !d.Totals().Gross.Equal(want) {
		t.Errorf("gross = %s, want %s", d.Totals().Gross, want)
	}
}

func TestDraftRejectsNegativeInputs(t *testing.T) {
	d := NewDraft()
	id := addLine(t, d, 1, "2", "5")

	if err := d.UpdateItemField(id, FieldQuantity, dec(t, "-1")); !errors.Is(err, ErrNegativeValue) {
		t.Errorf("negative quantity: err = %v, want ErrNegativeValue", err)
	}
	if err := d.UpdateAdjustment(AdjTax2, dec(t, "-0.01")); !errors.Is(err, ErrNegativeValue) {
		t.Errorf("negative tax: err = %v, want ErrNegativeValue", err)
	}

	// Rejected writes must leave prior state intact.
	items := d.Items()
	if want := dec(t, "2"); !items[0].Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", items[0].Quantity, want)
	}
	if !d.Totals().Tax2.IsZero() {
		t.Errorf("tax2 = %s, want 0", d.Totals().Tax2)
	}
}

func TestDraftUnknownField(t *testing.T) {
	d := NewDraft()
	id := addLine(t, d, 1, "1", "1")

	if err := d.UpdateItemField(id, "amount", dec(t, "99")); !errors.Is(err, ErrUnknownField) {
		t.Errorf("amount is derived, edit must fail: err = %v", err)
	}
	if err := d.UpdateAdjustment("tax4", dec(t, "1")); !errors.Is(err, ErrUnknownField) {
		t.Errorf("tax4: err = %v, want ErrUnknownField", err)
	}
}

func TestDraftUpdateMissingItem(t *testing.T) {
	d := NewDraft()
	if err := d.UpdateItemField("line-404", FieldQuantity, dec(t, "1")); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "12.50", want: "12.50"},
		{name: "padded", input: " 7 ", want: "7"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount("quantity", tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tc.input, got)
				}
				var fe FieldParseError
				if !errors.As(err, &fe) {
					t.Fatalf("err = %T, want FieldParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tc.input, err)
			}
			if !got.Equal(dec(t, tc.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestSessionsLifecycle(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions()

	id, err := sessions.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = sessions.With(ctx, id, func(d *Draft) error {
		d.AddItem(Candidate{ProductID: 1, ProductName: "x", UOMCode: "PCS", PiecesPerUnit: 1})
		return nil
	})
	if err != nil {
		t.Fatalf("with: %v", err)
	}

	sessions.Close(id)
	err = sessions.With(ctx, id, func(d *Draft) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err after close = %v, want ErrSessionNotFound", err)
	}

	// Closing twice is harmless.
	sessions.Close(id)
}
