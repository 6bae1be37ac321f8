package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oceanbridge/importflow/internal/domain"
)

// CatalogRepository upserts rows produced by the vendor catalog ingest.
// It works against a bare *sql.DB so the ingest binary can share it
// without pulling in the pooled DB wrapper.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) UpsertVendor(ctx context.Context, vendor *domain.Vendor) (int64, error) {
	query := `
		INSERT INTO vendors (name, city_id, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (name)
		DO UPDATE SET phone = EXCLUDED.phone, email = EXCLUDED.email, updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, vendor.Name, vendor.CityID, vendor.Phone, vendor.Email).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert vendor: %w", err)
	}
	return id, nil
}

func (r *CatalogRepository) UpsertUOM(ctx context.Context, uom *domain.UOM) (int64, error) {
	query := `
		INSERT INTO uoms (code, name, pieces_per_unit, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (code)
		DO UPDATE SET name = EXCLUDED.name, pieces_per_unit = EXCLUDED.pieces_per_unit, updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, uom.Code, uom.Name, uom.PiecesPerUnit).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert uom: %w", err)
	}
	return id, nil
}

func (r *CatalogRepository) UpsertItemType(ctx context.Context, itemType *domain.ItemType) (int64, error) {
	query := `
		INSERT INTO item_types (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (name)
		DO UPDATE SET updated_at = NOW()
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, itemType.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert item type: %w", err)
	}
	return id, nil
}

func (r *CatalogRepository) UpsertProduct(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (sku, name, item_type_id, uom_id, vendor_id, original_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (sku)
		DO UPDATE SET
			name = EXCLUDED.name,
			item_type_id = EXCLUDED.item_type_id,
			uom_id = EXCLUDED.uom_id,
			vendor_id = EXCLUDED.vendor_id,
			original_ref = EXCLUDED.original_ref,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		product.SKU,
		product.Name,
		product.ItemTypeID,
		product.UOMID,
		product.VendorID,
		product.OriginalRef,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert product: %w", err)
	}
	return id, nil
}
