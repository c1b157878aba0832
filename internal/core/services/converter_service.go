package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	portsrepo "github.com/mkarasev/currency_converter_app/internal/core/ports/repositories"
	"github.com/mkarasev/currency_converter_app/internal/dto"
)

// Bounds of the synthetic fallback rate, drawn uniformly and rounded to 4dp.
var (
	syntheticRateMin  = decimal.RequireFromString("0.5")
	syntheticRateSpan = 1.5
	one               = decimal.NewFromInt(1)
)

// ConverterService resolves exchange rates and records conversions.
//
// Rate resolution is total: stored direct rate, then inverse of the opposite
// pair, then identity for self-pairs, then the built-in seed table, then a
// synthetic random rate. Seed and synthetic rates are persisted so subsequent
// lookups hit the direct path; inverse rates are computed on the fly and
// never materialized.
type ConverterService struct {
	rateRepo       portsrepo.CurrencyRateRepositoryFacade
	conversionRepo portsrepo.ConversionRepositoryFacade
	randFloat      func() float64
}

// ConverterServiceOption configures a ConverterService.
type ConverterServiceOption func(*ConverterService)

// WithRandSource overrides the uniform [0,1) source used for synthetic rates.
// Tests use this to make synthetic draws deterministic.
func WithRandSource(randFloat func() float64) ConverterServiceOption {
	return func(s *ConverterService) {
		s.randFloat = randFloat
	}
}

// NewConverterService creates a new ConverterService.
func NewConverterService(rateRepo portsrepo.CurrencyRateRepositoryFacade, conversionRepo portsrepo.ConversionRepositoryFacade, opts ...ConverterServiceOption) *ConverterService {
	s := &ConverterService{
		rateRepo:       rateRepo,
		conversionRepo: conversionRepo,
		randFloat:      rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveRate produces an exchange rate for the ordered pair (base, target).
// It never fails for an unknown pair; the returned source tells the caller
// where the rate came from.
func (s *ConverterService) ResolveRate(ctx context.Context, baseCurrency, targetCurrency string) (decimal.Decimal, domain.RateSource, error) {
	base := strings.ToUpper(baseCurrency)
	target := strings.ToUpper(targetCurrency)
	if len(base) != 3 || len(target) != 3 {
		return decimal.Zero, "", fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	direct, err := s.rateRepo.FindActiveRate(ctx, base, target)
	if err == nil {
		return direct.Rate, domain.RateSourceDirect, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, "", fmt.Errorf("failed to look up direct rate: %w", err)
	}

	inverse, err := s.rateRepo.FindActiveRate(ctx, target, base)
	if err == nil {
		return one.Div(inverse.Rate), domain.RateSourceInverse, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, "", fmt.Errorf("failed to look up inverse rate: %w", err)
	}

	// Checked only after the stored lookups miss, so an explicit self-pair
	// override takes priority over the identity rate.
	if base == target {
		return one, domain.RateSourceDirect, nil
	}

	if seed, ok := domain.SeedRate(base, target); ok {
		return s.materializeRate(ctx, base, target, seed, domain.RateSourceFixedSeed)
	}

	synthetic := syntheticRateMin.Add(decimal.NewFromFloat(s.randFloat() * syntheticRateSpan)).Round(4)
	return s.materializeRate(ctx, base, target, synthetic, domain.RateSourceSynthetic)
}

// materializeRate persists a fallback rate as a new active row so the next
// lookup for the pair hits the direct path. If a concurrent request already
// inserted an active row for the pair, the stored value wins and the result
// is reported as a direct rate.
func (s *ConverterService) materializeRate(ctx context.Context, base, target string, rate decimal.Decimal, source domain.RateSource) (decimal.Decimal, domain.RateSource, error) {
	row := domain.CurrencyRate{
		RateID:         uuid.NewString(),
		BaseCurrency:   base,
		TargetCurrency: target,
		Rate:           rate,
		IsActive:       true,
		LastUpdated:    time.Now(),
	}

	err := s.rateRepo.CreateActiveRate(ctx, row)
	if err == nil {
		return rate, source, nil
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		existing, ferr := s.rateRepo.FindActiveRate(ctx, base, target)
		if ferr != nil {
			return decimal.Zero, "", fmt.Errorf("failed to re-read rate after insert conflict: %w", ferr)
		}
		return existing.Rate, domain.RateSourceDirect, nil
	}
	return decimal.Zero, "", fmt.Errorf("failed to persist resolved rate: %w", err)
}

// Convert resolves a rate for the requested pair, computes the converted
// amount rounded to 2 decimal places and persists an immutable history record.
func (s *ConverterService) Convert(ctx context.Context, userID string, req dto.ConversionRequest) (*domain.Conversion, domain.RateSource, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, "", fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	rate, source, err := s.ResolveRate(ctx, req.BaseCurrency, req.TargetCurrency)
	if err != nil {
		return nil, "", err
	}

	conversion := domain.Conversion{
		ConversionID:    uuid.NewString(),
		UserID:          userID,
		Amount:          req.Amount,
		BaseCurrency:    strings.ToUpper(req.BaseCurrency),
		TargetCurrency:  strings.ToUpper(req.TargetCurrency),
		ConvertedAmount: req.Amount.Mul(rate).Round(2),
		RateUsed:        rate,
		CreatedAt:       time.Now(),
	}

	if err := s.conversionRepo.SaveConversion(ctx, conversion); err != nil {
		return nil, "", fmt.Errorf("failed to record conversion: %w", err)
	}

	return &conversion, source, nil
}

// ListUserConversions retrieves a user's conversion history, newest first.
func (s *ConverterService) ListUserConversions(ctx context.Context, userID string, limit, offset int) ([]domain.Conversion, error) {
	conversions, err := s.conversionRepo.FindConversionsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions for user %s: %w", userID, err)
	}
	return conversions, nil
}

// ListAllConversions retrieves conversion history across all users, newest first.
func (s *ConverterService) ListAllConversions(ctx context.Context, limit, offset int) ([]domain.Conversion, error) {
	conversions, err := s.conversionRepo.ListConversions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	return conversions, nil
}
