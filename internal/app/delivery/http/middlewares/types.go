package middlewares

import (
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/drivers/metrics"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	AuthUsecase    contracts.AuthUsecase
	Authorizer     contracts.Authorizer
	Collectors     *metrics.Collectors
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	authUsecase contracts.AuthUsecase,
	authorizer contracts.Authorizer,
	collectors *metrics.Collectors,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:            logger,
		AuthUsecase:    authUsecase,
		Authorizer:     authorizer,
		Collectors:     collectors,
		InternalConfig: internalConfig,
	}
}
