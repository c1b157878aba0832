package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mkarasev/currency_converter_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories for the service layer.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		RateRepo:       newPgxCurrencyRateRepository(dbPool),
		ConversionRepo: newPgxConversionRepository(dbPool),
	}
}
