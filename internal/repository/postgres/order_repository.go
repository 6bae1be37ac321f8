// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/shipment"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

// SaveOrder inserts the order header and all lines in one transaction.
func (r *orderRepository) SaveOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO purchase_orders (
				id, order_reference, destination, supplier, order_date, status,
				telex_released, total_value, total_quantity_pcs, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		`
		_, err := tx.ExecContext(ctx, query,
			order.ID,
			order.OrderReference,
			order.Destination,
			order.Supplier,
			order.OrderDate,
			order.Status.String(),
			order.TelexReleased,
			order.TotalValue,
			order.TotalQuantityPcs,
		)
		if err != nil {
			return fmt.Errorf("failed to insert purchase order: %w", err)
		}

		lineQuery := `
			INSERT INTO order_lines (
				id, order_id, product_id, product_name, uom_code, pieces_per_unit,
				quantity, unit_rate, amount
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		stmt, err := tx.PrepareContext(ctx, lineQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare line statement: %w", err)
		}
		defer stmt.Close()

		for _, line := range order.Lines {
			_, err := stmt.ExecContext(ctx,
				line.ID,
				order.ID,
				line.ProductID,
				line.ProductName,
				line.UOMCode,
				line.PiecesPerUnit,
				line.Quantity,
				line.UnitRate,
				line.Amount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order line: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT id, order_reference, destination, supplier, order_date, status,
			telex_released, shipping_line_id, consignee_id, container_type,
			bill_of_lading, container_no, invoice_no, eta,
			total_value, total_quantity_pcs, created_at, updated_at
		FROM purchase_orders
		WHERE id = $1
	`

	var order domain.PurchaseOrder
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shipment.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	lineQuery := `
		SELECT id, order_id, product_id, product_name, uom_code, pieces_per_unit,
			quantity, unit_rate, amount
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &order.Lines, lineQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	query := `
		SELECT id, order_reference, destination, supplier, order_date, status,
			telex_released, shipping_line_id, consignee_id, container_type,
			bill_of_lading, container_no, invoice_no, eta,
			total_value, total_quantity_pcs, created_at, updated_at
		FROM purchase_orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR supplier = $2)
		ORDER BY order_date DESC, id
		LIMIT $3 OFFSET $4
	`

	var orders []domain.PurchaseOrder
	err := r.db.SelectContext(ctx, &orders, query,
		filter.Status, filter.Supplier, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET
			status = $2,
			telex_released = $3,
			shipping_line_id = $4,
			consignee_id = $5,
			container_type = $6,
			bill_of_lading = $7,
			container_no = $8,
			invoice_no = $9,
			eta = $10,
			updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.Status.String(),
		order.TelexReleased,
		order.ShippingLineID,
		order.ConsigneeID,
		order.ContainerType,
		order.BillOfLading,
		order.ContainerNo,
		order.InvoiceNo,
		order.ETA,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return shipment.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) SetTelexReleased(ctx context.Context, id string, released bool) error {
	query := `UPDATE purchase_orders SET telex_released = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, released)
	if err != nil {
		return fmt.Errorf("failed to set telex released: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return shipment.ErrOrderNotFound
	}
	return nil
}
