package domain

import "strings"

// ShipmentStatus is the lifecycle status of a purchase order in the
// shipment workflow. Orders start Pending; only Pending orders may be
// picked up for a shipment-detail update, which may set any status.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "Pending"
	StatusInTransit ShipmentStatus = "In Transit"
	StatusPort      ShipmentStatus = "Port"
	StatusBorder    ShipmentStatus = "Border"
	StatusOffLoad   ShipmentStatus = "Off load"
	StatusDelivered ShipmentStatus = "Delivered"
)

var shipmentStatusCodes = map[string]ShipmentStatus{
	"pending":    StatusPending,
	"in transit": StatusInTransit,
	"port":       StatusPort,
	"border":     StatusBorder,
	"off load":   StatusOffLoad,
	"delivered":  StatusDelivered,
}

// String returns the display label for the status.
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a member of the status enumeration.
func (s ShipmentStatus) IsValid() bool {
	_, ok := shipmentStatusCodes[strings.ToLower(string(s))]
	return ok
}

// Selectable reports whether an order in this status may be chosen as
// the target of a shipment-detail update.
func (s ShipmentStatus) Selectable() bool {
	return s == StatusPending
}

// ParseShipmentStatus resolves a label (case-insensitive) to its status.
func ParseShipmentStatus(label string) (ShipmentStatus, bool) {
	status, ok := shipmentStatusCodes[strings.ToLower(strings.TrimSpace(label))]
	return status, ok
}

// ShipmentStatuses returns the full enumeration in workflow order.
func ShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		StatusPending,
		StatusInTransit,
		StatusPort,
		StatusBorder,
		StatusOffLoad,
		StatusDelivered,
	}
}
