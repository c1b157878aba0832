package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	portsrepo "github.com/mkarasev/currency_converter_app/internal/core/ports/repositories"
	"github.com/mkarasev/currency_converter_app/internal/dto"
)

// RateService provides the admin-facing write path for currency rates plus
// the read-only rate endpoints.
type RateService struct {
	rateRepo portsrepo.CurrencyRateRepositoryFacade
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.CurrencyRateRepositoryFacade) *RateService {
	return &RateService{rateRepo: rateRepo}
}

// CreateRate inserts a new active rate for an ordered currency pair. Any
// existing active rate for the same pair is deactivated in the same
// transaction, so exactly one active row per pair remains afterwards.
// base == target is allowed: an explicit self-pair override is honored by
// the resolver ahead of the implicit identity rate.
func (s *RateService) CreateRate(ctx context.Context, req dto.CreateRateRequest) (*domain.CurrencyRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	rate := domain.CurrencyRate{
		RateID:         uuid.NewString(),
		BaseCurrency:   strings.ToUpper(req.BaseCurrency),
		TargetCurrency: strings.ToUpper(req.TargetCurrency),
		Rate:           req.Rate,
		IsActive:       true,
		LastUpdated:    time.Now(),
	}

	if err := s.rateRepo.CreateActiveRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create rate in service: %w", err)
	}

	return &rate, nil
}

// UpdateRate mutates the rate value and/or active flag of an existing row in
// place. Reactivating a row while a newer active sibling exists surfaces
// apperrors.ErrDuplicate from the partial unique index instead of silently
// producing two active rows.
func (s *RateService) UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest) (*domain.CurrencyRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, err
	}

	rate.Rate = req.Rate
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	rate.LastUpdated = time.Now()

	if err := s.rateRepo.UpdateRate(ctx, *rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// DeleteRate hard-deletes a rate row. Historical conversions keep the rate
// they recorded at the time.
func (s *RateService) DeleteRate(ctx context.Context, rateID string) error {
	return s.rateRepo.DeleteRate(ctx, rateID)
}

// ToggleRate flips the active flag of a rate row. Reactivation conflicts
// surface apperrors.ErrDuplicate, same as UpdateRate.
func (s *RateService) ToggleRate(ctx context.Context, rateID string) (*domain.CurrencyRate, error) {
	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, err
	}

	rate.IsActive = !rate.IsActive
	rate.LastUpdated = time.Now()

	if err := s.rateRepo.UpdateRate(ctx, *rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// GetActiveRate retrieves the active rate for an exact ordered pair. A
// missing rate is reported as apperrors.ErrNotFound; no fallback resolution
// happens on this read-only path.
func (s *RateService) GetActiveRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.CurrencyRate, error) {
	base := strings.ToUpper(baseCurrency)
	target := strings.ToUpper(targetCurrency)
	if len(base) != 3 || len(target) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	return s.rateRepo.FindActiveRate(ctx, base, target)
}

// ListRates retrieves stored rate rows, newest first.
func (s *RateService) ListRates(ctx context.Context, limit, offset int) ([]domain.CurrencyRate, error) {
	rates, err := s.rateRepo.ListRates(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates in service: %w", err)
	}
	return rates, nil
}
