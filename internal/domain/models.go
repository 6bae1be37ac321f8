// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Country represents a country reference record
type Country struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// City represents a city within a country
type City struct {
	ID        int64     `json:"id" db:"id"`
	CountryID int64     `json:"country_id" db:"country_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Currency represents a trading currency
type Currency struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Symbol    string    `json:"symbol" db:"symbol"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Customer represents a buying party
type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CityID    int64     `json:"city_id" db:"city_id"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Vendor represents a supplying party
type Vendor struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CityID    int64     `json:"city_id" db:"city_id"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ItemType groups products into broad categories
type ItemType struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UOM represents a unit of measure with its conversion to pieces.
// PiecesPerUnit is the factor used to derive total piece counts on
// order aggregates (a carton of 24 has PiecesPerUnit = 24).
type UOM struct {
	ID            int64     `json:"id" db:"id"`
	Code          string    `json:"code" db:"code"`
	Name          string    `json:"name" db:"name"`
	PiecesPerUnit int64     `json:"pieces_per_unit" db:"pieces_per_unit"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Product represents a sellable catalog item
type Product struct {
	ID          int64     `json:"id" db:"id"`
	SKU         string    `json:"sku" db:"sku"`
	Name        string    `json:"name" db:"name"`
	ItemTypeID  int64     `json:"item_type_id" db:"item_type_id"`
	UOMID       int64     `json:"uom_id" db:"uom_id"`
	VendorID    int64     `json:"vendor_id" db:"vendor_id"`
	OriginalRef string    `json:"original_ref" db:"original_ref"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ShippingLine represents a carrier
type ShippingLine struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Consignee represents the receiving party on a shipment
type Consignee struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CityID    int64     `json:"city_id" db:"city_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FinalDestination represents the delivery endpoint of a shipment
type FinalDestination struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CountryID int64     `json:"country_id" db:"country_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OrderLine represents a single product entry on a purchase order.
// Amount is always Quantity * UnitRate; it is recomputed whenever either
// input changes and is never set independently.
type OrderLine struct {
	ID            string          `json:"id" db:"id"`
	OrderID       string          `json:"order_id" db:"order_id"`
	ProductID     int64           `json:"product_id" db:"product_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	UOMCode       string          `json:"uom_code" db:"uom_code"`
	PiecesPerUnit int64           `json:"pieces_per_unit" db:"pieces_per_unit"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	UnitRate      decimal.Decimal `json:"unit_rate" db:"unit_rate"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
}

// PurchaseOrder represents a submitted order heading into the shipment
// workflow. TotalValue and TotalQuantityPcs are derived over Lines.
type PurchaseOrder struct {
	ID               string          `json:"id" db:"id"`
	OrderReference   string          `json:"order_reference" db:"order_reference"`
	Destination      string          `json:"destination" db:"destination"`
	Supplier         string          `json:"supplier" db:"supplier"`
	OrderDate        time.Time       `json:"order_date" db:"order_date"`
	Status           ShipmentStatus  `json:"status" db:"status"`
	TelexReleased    bool            `json:"telex_released" db:"telex_released"`
	ShippingLineID   int64           `json:"shipping_line_id" db:"shipping_line_id"`
	ConsigneeID      int64           `json:"consignee_id" db:"consignee_id"`
	ContainerType    string          `json:"container_type" db:"container_type"`
	BillOfLading     string          `json:"bill_of_lading" db:"bill_of_lading"`
	ContainerNo      string          `json:"container_no" db:"container_no"`
	InvoiceNo        string          `json:"invoice_no" db:"invoice_no"`
	ETA              *time.Time      `json:"eta" db:"eta"`
	TotalValue       decimal.Decimal `json:"total_value" db:"total_value"`
	TotalQuantityPcs int64           `json:"total_quantity_pcs" db:"total_quantity_pcs"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
	Lines            []OrderLine     `json:"lines" db:"-"`
}

// RecomputeAggregates refreshes TotalValue and TotalQuantityPcs from Lines.
func (po *PurchaseOrder) RecomputeAggregates() {
	total := decimal.Zero
	var pcs int64
	for _, line := range po.Lines {
		total = total.Add(line.Amount)
		pcs += line.Quantity.Mul(decimal.NewFromInt(line.PiecesPerUnit)).IntPart()
	}
	po.TotalValue = total
	po.TotalQuantityPcs = pcs
}

// OrderFilter narrows purchase order list queries
type OrderFilter struct {
	Status   string `json:"status"`
	Supplier string `json:"supplier"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}
