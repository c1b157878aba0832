package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	portsrepo "github.com/mkarasev/currency_converter_app/internal/core/ports/repositories"
	"github.com/mkarasev/currency_converter_app/internal/models"
	"github.com/mkarasev/currency_converter_app/internal/utils/mapping"
)

// PgxCurrencyRateRepository implements the currency rate repository using pgxpool.
type PgxCurrencyRateRepository struct {
	BaseRepository
}

func newPgxCurrencyRateRepository(db *pgxpool.Pool) *PgxCurrencyRateRepository {
	return &PgxCurrencyRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*PgxCurrencyRateRepository)(nil)

const rateColumns = `rate_id, base_currency, target_currency, rate, is_active, last_updated`

// FindActiveRate retrieves the active rate for an exact ordered pair.
func (r *PgxCurrencyRateRepository) FindActiveRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.CurrencyRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE base_currency = $1 AND target_currency = $2 AND is_active;
	`

	var m models.CurrencyRate
	err := r.Pool.QueryRow(ctx, query, baseCurrency, targetCurrency).Scan(
		&m.RateID, &m.BaseCurrency, &m.TargetCurrency, &m.Rate, &m.IsActive, &m.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active rate %s/%s: %w", baseCurrency, targetCurrency, err)
	}

	rate := mapping.ToDomainCurrencyRate(m)
	return &rate, nil
}

// FindRateByID retrieves a rate row by its identifier.
func (r *PgxCurrencyRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.CurrencyRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE rate_id = $1;
	`

	var m models.CurrencyRate
	err := r.Pool.QueryRow(ctx, query, rateID).Scan(
		&m.RateID, &m.BaseCurrency, &m.TargetCurrency, &m.Rate, &m.IsActive, &m.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate by ID %s: %w", rateID, err)
	}

	rate := mapping.ToDomainCurrencyRate(m)
	return &rate, nil
}

// ListRates retrieves rate rows, most recently updated first.
func (r *PgxCurrencyRateRepository) ListRates(ctx context.Context, limit, offset int) ([]domain.CurrencyRate, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		ORDER BY last_updated DESC
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	modelRates := []models.CurrencyRate{}
	for rows.Next() {
		var m models.CurrencyRate
		if err := rows.Scan(&m.RateID, &m.BaseCurrency, &m.TargetCurrency, &m.Rate, &m.IsActive, &m.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		modelRates = append(modelRates, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating rate rows: %w", rows.Err())
	}

	return mapping.ToDomainCurrencyRateSlice(modelRates), nil
}

// CreateActiveRate deactivates any active rate for the same ordered pair and
// inserts the given rate as active, inside one transaction. The partial
// unique index on (base_currency, target_currency) WHERE is_active turns a
// lost race with a concurrent writer into apperrors.ErrDuplicate.
func (r *PgxCurrencyRateRepository) CreateActiveRate(ctx context.Context, rate domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		UPDATE currency_rates
		SET is_active = FALSE, last_updated = $3
		WHERE base_currency = $1 AND target_currency = $2 AND is_active;`,
		m.BaseCurrency, m.TargetCurrency, m.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate prior rate %s/%s: %w", m.BaseCurrency, m.TargetCurrency, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO currency_rates (`+rateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		m.RateID, m.BaseCurrency, m.TargetCurrency, m.Rate, m.IsActive, m.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert rate %s/%s: %w", m.BaseCurrency, m.TargetCurrency, err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to commit rate creation: %w", err)
	}
	return nil
}

// UpdateRate mutates an existing rate row in place. Sibling rows are left
// untouched; reactivation conflicts surface apperrors.ErrDuplicate.
func (r *PgxCurrencyRateRepository) UpdateRate(ctx context.Context, rate domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(rate)

	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE currency_rates
		SET rate = $1, is_active = $2, last_updated = $3
		WHERE rate_id = $4;`,
		m.Rate, m.IsActive, m.LastUpdated, m.RateID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update rate %s: %w", m.RateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRate hard-deletes a rate row.
func (r *PgxCurrencyRateRepository) DeleteRate(ctx context.Context, rateID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM currency_rates WHERE rate_id = $1;`, rateID)
	if err != nil {
		return fmt.Errorf("failed to delete rate %s: %w", rateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
