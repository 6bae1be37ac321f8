package shipment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/oceanbridge/importflow/internal/domain"
)

// ErrOrderNotFound is returned for lookups of an unknown order id.
var ErrOrderNotFound = errors.New("purchase order not found")

// OrderStore is the persistence surface the shipment workflow needs.
type OrderStore interface {
	GetOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, error)
	SaveOrder(ctx context.Context, order *domain.PurchaseOrder) error
	UpdateOrder(ctx context.Context, order *domain.PurchaseOrder) error
}

// MemoryStore keeps orders in process memory behind a RWMutex. It backs
// tests and single-node deployments without Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]domain.PurchaseOrder
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]domain.PurchaseOrder)}
}

func (s *MemoryStore) GetOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

func (s *MemoryStore) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.PurchaseOrder, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.PurchaseOrder
	for _, order := range s.orders {
		if filter.Status != "" && !statusMatches(order.Status, filter.Status) {
			continue
		}
		if filter.Supplier != "" && order.Supplier != filter.Supplier {
			continue
		}
		result = append(result, order)
	}

	// Map iteration order is random; fix it so page windows are stable.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	// Pagination mirrors the list endpoints: page is 1-based.
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start >= len(result) {
			return nil, nil
		}
		end := start + filter.PageSize
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}
	return result, nil
}

func (s *MemoryStore) SaveOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryStore) UpdateOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return ErrOrderNotFound
	}
	order.UpdatedAt = time.Now()
	s.orders[order.ID] = *order
	return nil
}

func statusMatches(status domain.ShipmentStatus, label string) bool {
	parsed, ok := domain.ParseShipmentStatus(label)
	return ok && parsed == status
}
