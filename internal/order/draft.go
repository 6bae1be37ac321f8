// internal/order/draft.go
package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oceanbridge/importflow/internal/domain"
)

var (
	// ErrNegativeValue is returned when a quantity, rate or adjustment
	// would go below zero. The source UI only clamped these cosmetically;
	// here they are rejected outright.
	ErrNegativeValue = errors.New("value must not be negative")

	// ErrItemNotFound is returned by field updates targeting a line item
	// that is not part of the draft.
	ErrItemNotFound = errors.New("line item not found in draft")

	// ErrUnknownField is returned for a field name outside the editable set.
	ErrUnknownField = errors.New("unknown field")
)

// Item fields editable through UpdateItemField.
const (
	FieldQuantity = "quantity"
	FieldUnitRate = "unit_rate"
)

// Adjustment fields editable through UpdateAdjustment.
const (
	AdjDiscount = "discount"
	AdjTax1     = "tax1"
	AdjTax2     = "tax2"
	AdjTax3     = "tax3"
)

// Totals is the derived monetary summary of a draft. Gross is the sum
// of line amounts; Net is gross - discount + tax1 + tax2 + tax3 and may
// be negative when the discount exceeds gross plus taxes.
type Totals struct {
	Gross    decimal.Decimal `json:"gross_amount"`
	Discount decimal.Decimal `json:"discount"`
	Tax1     decimal.Decimal `json:"tax1"`
	Tax2     decimal.Decimal `json:"tax2"`
	Tax3     decimal.Decimal `json:"tax3"`
	Net      decimal.Decimal `json:"net_amount"`
}

// Candidate describes a catalog product offered for selection into a draft.
type Candidate struct {
	ProductID     int64
	ProductName   string
	UOMCode       string
	PiecesPerUnit int64
}

// Draft holds the mutable line-item selection and adjustment inputs of
// one order-creation session. Totals are always derived on read, so no
// stale gross/net value is ever observable. Draft is not safe for
// concurrent use; the session registry serializes access.
type Draft struct {
	items       []domain.OrderLine
	adjustments map[string]decimal.Decimal
}

// NewDraft returns an empty draft with all adjustments zeroed.
func NewDraft() *Draft {
	return &Draft{
		adjustments: map[string]decimal.Decimal{
			AdjDiscount: decimal.Zero,
			AdjTax1:     decimal.Zero,
			AdjTax2:     decimal.Zero,
			AdjTax3:     decimal.Zero,
		},
	}
}

// AddItem toggles the candidate's membership in the draft. Selecting a
// product not yet in the draft inserts a fresh line (quantity 1, rate 0);
// selecting it again removes the line. Returns true if the line is part
// of the draft after the call.
func (d *Draft) AddItem(c Candidate) bool {
	id := lineID(c.ProductID)
	if _, ok := d.find(id); ok {
		d.RemoveItem(id)
		return false
	}

	d.items = append(d.items, domain.OrderLine{
		ID:            id,
		ProductID:     c.ProductID,
		ProductName:   c.ProductName,
		UOMCode:       c.UOMCode,
		PiecesPerUnit: c.PiecesPerUnit,
		Quantity:      decimal.NewFromInt(1),
		UnitRate:      decimal.Zero,
		Amount:        decimal.Zero,
	})
	return true
}

// RemoveItem drops the line with the given id. Removing an absent line
// is a no-op.
func (d *Draft) RemoveItem(id string) {
	for i, item := range d.items {
		if item.ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return
		}
	}
}

// UpdateItemField sets quantity or unit rate on one line and recomputes
// that line's amount. Negative values are rejected.
func (d *Draft) UpdateItemField(id, field string, value decimal.Decimal) error {
	idx, ok := d.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if value.IsNegative() {
		return fmt.Errorf("%s: %w", field, ErrNegativeValue)
	}

	switch field {
	case FieldQuantity:
		d.items[idx].Quantity = value
	case FieldUnitRate:
		d.items[idx].UnitRate = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	d.items[idx].Amount = d.items[idx].Quantity.Mul(d.items[idx].UnitRate)
	return nil
}

// UpdateAdjustment sets one of discount/tax1/tax2/tax3. Negative values
// are rejected.
func (d *Draft) UpdateAdjustment(field string, value decimal.Decimal) error {
	if _, ok := d.adjustments[field]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if value.IsNegative() {
		return fmt.Errorf("%s: %w", field, ErrNegativeValue)
	}
	d.adjustments[field] = value
	return nil
}

// Items returns a copy of the current line items in selection order.
func (d *Draft) Items() []domain.OrderLine {
	out := make([]domain.OrderLine, len(d.items))
	copy(out, d.items)
	return out
}

// Totals derives gross and net amounts from the current state.
func (d *Draft) Totals() Totals {
	gross := decimal.Zero
	for _, item := range d.items {
		gross = gross.Add(item.Amount)
	}

	t := Totals{
		Gross:    gross,
		Discount: d.adjustments[AdjDiscount],
		Tax1:     d.adjustments[AdjTax1],
		Tax2:     d.adjustments[AdjTax2],
		Tax3:     d.adjustments[AdjTax3],
	}
	t.Net = gross.Sub(t.Discount).Add(t.Tax1).Add(t.Tax2).Add(t.Tax3)
	return t
}

// ParseAmount converts user-entered numeric text into a decimal. Unlike
// the old input layer it does not coerce garbage to zero: non-numeric
// text is an error the caller must handle.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Decimal{}, FieldParseError{Field: field, Input: raw, Reason: "empty"}
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, FieldParseError{Field: field, Input: raw, Reason: "not a number"}
	}
	return value, nil
}

// FieldParseError reports numeric input that could not be parsed.
type FieldParseError struct {
	Field  string
	Input  string
	Reason string
}

func (e FieldParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

func (d *Draft) find(id string) (int, bool) {
	for i, item := range d.items {
		if item.ID == id {
			return i, true
		}
	}
	return 0, false
}

func lineID(productID int64) string {
	return fmt.Sprintf("line-%d", productID)
}
