// internal/repository/postgres/reference_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/oceanbridge/importflow/internal/domain"
)

type referenceRepository struct {
	db *DB
}

func NewReferenceRepository(db *DB) *referenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) GetCountries(ctx context.Context) ([]domain.Country, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM countries ORDER BY name`

	var countries []domain.Country
	if err := r.db.SelectContext(ctx, &countries, query); err != nil {
		return nil, fmt.Errorf("failed to get countries: %w", err)
	}
	return countries, nil
}

func (r *referenceRepository) GetCities(ctx context.Context, countryID int64) ([]domain.City, error) {
	query := `SELECT id, country_id, name, created_at, updated_at FROM cities`
	args := []interface{}{}
	if countryID > 0 {
		query += ` WHERE country_id = $1`
		args = append(args, countryID)
	}
	query += ` ORDER BY name`

	var cities []domain.City
	if err := r.db.SelectContext(ctx, &cities, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get cities: %w", err)
	}
	return cities, nil
}

func (r *referenceRepository) GetCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT id, code, name, symbol, created_at, updated_at FROM currencies ORDER BY code`

	var currencies []domain.Currency
	if err := r.db.SelectContext(ctx, &currencies, query); err != nil {
		return nil, fmt.Errorf("failed to get currencies: %w", err)
	}
	return currencies, nil
}

func (r *referenceRepository) GetCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, error) {
	query := `
		SELECT id, name, city_id, phone, email, created_at, updated_at
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	var customers []domain.Customer
	if err := r.db.SelectContext(ctx, &customers, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

func (r *referenceRepository) GetVendors(ctx context.Context, search string, limit, offset int) ([]domain.Vendor, error) {
	query := `
		SELECT id, name, city_id, phone, email, created_at, updated_at
		FROM vendors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	var vendors []domain.Vendor
	if err := r.db.SelectContext(ctx, &vendors, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get vendors: %w", err)
	}
	return vendors, nil
}

func (r *referenceRepository) GetItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	query := `SELECT id, name, created_at, updated_at FROM item_types ORDER BY name`

	var itemTypes []domain.ItemType
	if err := r.db.SelectContext(ctx, &itemTypes, query); err != nil {
		return nil, fmt.Errorf("failed to get item types: %w", err)
	}
	return itemTypes, nil
}

func (r *referenceRepository) GetUOMs(ctx context.Context) ([]domain.UOM, error) {
	query := `SELECT id, code, name, pieces_per_unit, created_at, updated_at FROM uoms ORDER BY code`

	var uoms []domain.UOM
	if err := r.db.SelectContext(ctx, &uoms, query); err != nil {
		return nil, fmt.Errorf("failed to get uoms: %w", err)
	}
	return uoms, nil
}

func (r *referenceRepository) GetProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, error) {
	query := `
		SELECT id, sku, name, item_type_id, uom_id, vendor_id, original_ref, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%')
		ORDER BY sku
		LIMIT $2 OFFSET $3
	`

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (r *referenceRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, sku, name, item_type_id, uom_id, vendor_id, original_ref, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

func (r *referenceRepository) GetUOM(ctx context.Context, id int64) (*domain.UOM, error) {
	query := `SELECT id, code, name, pieces_per_unit, created_at, updated_at FROM uoms WHERE id = $1`

	var uom domain.UOM
	if err := r.db.GetContext(ctx, &uom, query, id); err != nil {
		return nil, fmt.Errorf("failed to get uom %d: %w", id, err)
	}
	return &uom, nil
}

func (r *referenceRepository) GetShippingLines(ctx context.Context) ([]domain.ShippingLine, error) {
	query := `SELECT id, name, created_at, updated_at FROM shipping_lines ORDER BY name`

	var lines []domain.ShippingLine
	if err := r.db.SelectContext(ctx, &lines, query); err != nil {
		return nil, fmt.Errorf("failed to get shipping lines: %w", err)
	}
	return lines, nil
}

func (r *referenceRepository) GetConsignees(ctx context.Context) ([]domain.Consignee, error) {
	query := `SELECT id, name, city_id, created_at, updated_at FROM consignees ORDER BY name`

	var consignees []domain.Consignee
	if err := r.db.SelectContext(ctx, &consignees, query); err != nil {
		return nil, fmt.Errorf("failed to get consignees: %w", err)
	}
	return consignees, nil
}

func (r *referenceRepository) GetFinalDestinations(ctx context.Context) ([]domain.FinalDestination, error) {
	query := `SELECT id, name, country_id, created_at, updated_at FROM final_destinations ORDER BY name`

	var destinations []domain.FinalDestination
	if err := r.db.SelectContext(ctx, &destinations, query); err != nil {
		return nil, fmt.Errorf("failed to get final destinations: %w", err)
	}
	return destinations, nil
}

func (r *referenceRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, city_id, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, customer.Name, customer.CityID, customer.Phone, customer.Email).Scan(&customer.ID); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *referenceRepository) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		INSERT INTO vendors (name, city_id, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, vendor.Name, vendor.CityID, vendor.Phone, vendor.Email).Scan(&vendor.ID); err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

func (r *referenceRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (sku, name, item_type_id, uom_id, vendor_id, original_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		product.SKU,
		product.Name,
		product.ItemTypeID,
		product.UOMID,
		product.VendorID,
		product.OriginalRef,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}
