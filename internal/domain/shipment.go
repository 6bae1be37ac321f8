package domain

import (
	"fmt"
	"strings"
	"time"
)

// ShipmentDetails is the transient payload submitted against a selected
// Pending order. It is validated, applied as a single status overwrite,
// and discarded.
type ShipmentDetails struct {
	ShippingLineID int64     `json:"shipping_line_id"`
	ConsigneeID    int64     `json:"consignee_id"`
	ContainerType  string    `json:"container_type"`
	BillOfLading   string    `json:"bill_of_lading"`
	ContainerNo    string    `json:"container_no"`
	InvoiceNo      string    `json:"invoice_no"`
	ETA            time.Time `json:"eta"`
	ShipmentStatus string    `json:"shipment_status"`
}

// FieldError reports a single invalid field on a submitted payload.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors aggregates field errors for one submission attempt.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return "invalid shipment details: " + strings.Join(parts, "; ")
}

// Validate checks required fields and resolves the target status.
// It returns the parsed status and nil on success, or the zero status
// and a ValidationErrors describing every failing field.
func (d ShipmentDetails) Validate() (ShipmentStatus, error) {
	var errs ValidationErrors

	if d.ShippingLineID <= 0 {
		errs = append(errs, FieldError{Field: "shipping_line_id", Reason: "required"})
	}
	if d.ConsigneeID <= 0 {
		errs = append(errs, FieldError{Field: "consignee_id", Reason: "required"})
	}
	required := []struct {
		field string
		value string
	}{
		{"container_type", d.ContainerType},
		{"bill_of_lading", d.BillOfLading},
		{"container_no", d.ContainerNo},
		{"invoice_no", d.InvoiceNo},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, FieldError{Field: r.field, Reason: "required"})
		}
	}
	if d.ETA.IsZero() {
		errs = append(errs, FieldError{Field: "eta", Reason: "required"})
	}

	status, ok := ParseShipmentStatus(d.ShipmentStatus)
	if !ok {
		errs = append(errs, FieldError{Field: "shipment_status", Reason: "unknown status"})
	}

	if len(errs) > 0 {
		return "", errs
	}
	return status, nil
}
