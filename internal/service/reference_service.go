// internal/service/reference_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/oceanbridge/importflow/internal/cache"
	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/repository"
)

// ReferenceService serves the reference-data screens, with a cache in
// front of the hot drawer lookups (shipping lines, consignees,
// product candidates). Cache misses and failures fall through to the
// repository; a broken cache never breaks a read.
type ReferenceService struct {
	repo  repository.ReferenceRepository
	cache cache.ReferenceCache
}

func NewReferenceService(repo repository.ReferenceRepository, refCache cache.ReferenceCache) *ReferenceService {
	if refCache == nil {
		refCache = cache.NewNoopReferenceCache()
	}
	return &ReferenceService{repo: repo, cache: refCache}
}

func (s *ReferenceService) GetCountries(ctx context.Context) ([]domain.Country, error) {
	return s.repo.GetCountries(ctx)
}

func (s *ReferenceService) GetCities(ctx context.Context, countryID int64) ([]domain.City, error) {
	return s.repo.GetCities(ctx, countryID)
}

func (s *ReferenceService) GetCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.repo.GetCurrencies(ctx)
}

func (s *ReferenceService) GetCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, error) {
	return s.repo.GetCustomers(ctx, search, limit, offset)
}

func (s *ReferenceService) GetVendors(ctx context.Context, search string, limit, offset int) ([]domain.Vendor, error) {
	return s.repo.GetVendors(ctx, search, limit, offset)
}

func (s *ReferenceService) GetItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	return s.repo.GetItemTypes(ctx)
}

func (s *ReferenceService) GetUOMs(ctx context.Context) ([]domain.UOM, error) {
	return s.repo.GetUOMs(ctx)
}

func (s *ReferenceService) GetProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, error) {
	if products, ok, err := s.cache.GetProducts(ctx, search, limit, offset); err != nil {
		log.Warn().Err(err).Msg("product cache read failed")
	} else if ok {
		return products, nil
	}

	products, err := s.repo.GetProducts(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProducts(ctx, search, limit, offset, products); err != nil {
		log.Warn().Err(err).Msg("product cache write failed")
	}
	return products, nil
}

func (s *ReferenceService) GetShippingLines(ctx context.Context) ([]domain.ShippingLine, error) {
	if lines, ok, err := s.cache.GetShippingLines(ctx); err != nil {
		log.Warn().Err(err).Msg("shipping line cache read failed")
	} else if ok {
		return lines, nil
	}

	lines, err := s.repo.GetShippingLines(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetShippingLines(ctx, lines); err != nil {
		log.Warn().Err(err).Msg("shipping line cache write failed")
	}
	return lines, nil
}

func (s *ReferenceService) GetConsignees(ctx context.Context) ([]domain.Consignee, error) {
	if consignees, ok, err := s.cache.GetConsignees(ctx); err != nil {
		log.Warn().Err(err).Msg("consignee cache read failed")
	} else if ok {
		return consignees, nil
	}

	consignees, err := s.repo.GetConsignees(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetConsignees(ctx, consignees); err != nil {
		log.Warn().Err(err).Msg("consignee cache write failed")
	}
	return consignees, nil
}

func (s *ReferenceService) GetFinalDestinations(ctx context.Context) ([]domain.FinalDestination, error) {
	return s.repo.GetFinalDestinations(ctx)
}

func (s *ReferenceService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	return s.repo.CreateCustomer(ctx, customer)
}

func (s *ReferenceService) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	return s.repo.CreateVendor(ctx, vendor)
}

// CreateProduct writes the product and invalidates cached candidate
// pages so the new item shows up in the next drawer open.
func (s *ReferenceService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return err
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("reference cache invalidation failed")
	}
	return nil
}
