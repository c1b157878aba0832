package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	portsrepo "github.com/mkarasev/currency_converter_app/internal/core/ports/repositories"
	"github.com/mkarasev/currency_converter_app/internal/models"
	"github.com/mkarasev/currency_converter_app/internal/utils/mapping"
)

// PgxConversionRepository implements the conversion history repository using pgxpool.
// History rows are insert-only.
type PgxConversionRepository struct {
	BaseRepository
}

func newPgxConversionRepository(db *pgxpool.Pool) *PgxConversionRepository {
	return &PgxConversionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ConversionRepositoryFacade = (*PgxConversionRepository)(nil)

const conversionColumns = `conversion_id, user_id, amount, base_currency, target_currency, converted_amount, rate_used, created_at`

// SaveConversion inserts one immutable conversion record.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, conversion domain.Conversion) error {
	m := mapping.ToModelConversion(conversion)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO conversion_history (`+conversionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.ConversionID, m.UserID, m.Amount, m.BaseCurrency, m.TargetCurrency,
		m.ConvertedAmount, m.RateUsed, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversion: %w", err)
	}
	return nil
}

// FindConversionsByUser retrieves a user's conversions, newest first.
func (r *PgxConversionRepository) FindConversionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversion, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + conversionColumns + `
		FROM conversion_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanConversions(rows)
}

// ListConversions retrieves conversions across all users, newest first.
func (r *PgxConversionRepository) ListConversions(ctx context.Context, limit, offset int) ([]domain.Conversion, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + conversionColumns + `
		FROM conversion_history
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	return scanConversions(rows)
}

func scanConversions(rows pgx.Rows) ([]domain.Conversion, error) {
	modelConversions := []models.Conversion{}
	for rows.Next() {
		var m models.Conversion
		err := rows.Scan(
			&m.ConversionID, &m.UserID, &m.Amount, &m.BaseCurrency, &m.TargetCurrency,
			&m.ConvertedAmount, &m.RateUsed, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversion row: %w", err)
		}
		modelConversions = append(modelConversions, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating conversion rows: %w", rows.Err())
	}

	return mapping.ToDomainConversionSlice(modelConversions), nil
}
