package services

import (
	portsrepo "github.com/mkarasev/currency_converter_app/internal/core/ports/repositories"
	portssvc "github.com/mkarasev/currency_converter_app/internal/core/ports/services"
)

// NewServiceContainer creates a service container with properly initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:      NewUserService(repos.UserRepo),
		Rate:      NewRateService(repos.RateRepo),
		Converter: NewConverterService(repos.RateRepo, repos.ConversionRepo),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.UserSvcFacade      = (*UserService)(nil)
	_ portssvc.RateSvcFacade      = (*RateService)(nil)
	_ portssvc.ConverterSvcFacade = (*ConverterService)(nil)
)
