package domain

import (
	"testing"
	"time"
)

func TestParseShipmentStatus(t *testing.T) {
	cases := []struct {
		label string
		want  ShipmentStatus
		ok    bool
	}{
		{"Pending", StatusPending, true},
		{"pending", StatusPending, true},
		{"  In Transit ", StatusInTransit, true},
		{"OFF LOAD", StatusOffLoad, true},
		{"Delivered", StatusDelivered, true},
		{"Teleported", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseShipmentStatus(tc.label)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseShipmentStatus(%q) = %q, %v; want %q, %v", tc.label, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSelectable(t *testing.T) {
	for _, status := range ShipmentStatuses() {
		want := status == StatusPending
		if got := status.Selectable(); got != want {
			t.Errorf("%s.Selectable() = %v, want %v", status, got, want)
		}
	}
}

func TestShipmentDetailsValidate(t *testing.T) {
	valid := ShipmentDetails{
		ShippingLineID: 1,
		ConsigneeID:    1,
		ContainerType:  "20ft",
		BillOfLading:   "BL-1",
		ContainerNo:    "CN-1",
		InvoiceNo:      "INV-1",
		ETA:            time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		ShipmentStatus: "Border",
	}

	status, err := valid.Validate()
	if err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if status != StatusBorder {
		t.Errorf("status = %s, want Border", status)
	}

	empty := ShipmentDetails{}
	if _, err := empty.Validate(); err == nil {
		t.Fatal("empty payload accepted")
	}

	badStatus := valid
	badStatus.ShipmentStatus = "Lost"
	if _, err := badStatus.Validate(); err == nil {
		t.Fatal("unknown status accepted")
	}
}
