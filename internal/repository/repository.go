// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/oceanbridge/importflow/internal/domain"
)

// ReferenceRepository serves the reference-data screens: countries,
// cities, currencies, customers, vendors, products, item types, UOMs,
// shipping lines, consignees and final destinations.
type ReferenceRepository interface {
	GetCountries(ctx context.Context) ([]domain.Country, error)
	GetCities(ctx context.Context, countryID int64) ([]domain.City, error)
	GetCurrencies(ctx context.Context) ([]domain.Currency, error)
	GetCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, error)
	GetVendors(ctx context.Context, search string, limit, offset int) ([]domain.Vendor, error)
	GetItemTypes(ctx context.Context) ([]domain.ItemType, error)
	GetUOMs(ctx context.Context) ([]domain.UOM, error)
	GetProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetUOM(ctx context.Context, id int64) (*domain.UOM, error)
	GetShippingLines(ctx context.Context) ([]domain.ShippingLine, error)
	GetConsignees(ctx context.Context) ([]domain.Consignee, error)
	GetFinalDestinations(ctx context.Context) ([]domain.FinalDestination, error)

	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	CreateVendor(ctx context.Context, vendor *domain.Vendor) error
	CreateProduct(ctx context.Context, product *domain.Product) error
}

// OrderRepository persists submitted purchase orders. It doubles as the
// shipment workflow's OrderStore.
type OrderRepository interface {
	SaveOrder(ctx context.Context, order *domain.PurchaseOrder) error
	GetOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, error)
	UpdateOrder(ctx context.Context, order *domain.PurchaseOrder) error
	SetTelexReleased(ctx context.Context, id string, released bool) error
}

// CatalogRepository upserts vendor catalog rows during ingest.
type CatalogRepository interface {
	UpsertVendor(ctx context.Context, vendor *domain.Vendor) (int64, error)
	UpsertUOM(ctx context.Context, uom *domain.UOM) (int64, error)
	UpsertItemType(ctx context.Context, itemType *domain.ItemType) (int64, error)
	UpsertProduct(ctx context.Context, product *domain.Product) (int64, error)
}
