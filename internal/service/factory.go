package service

import (
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/cache"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/config"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/invoice"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/payment"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/subscription"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/usage"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/gateway"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/lock"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Per-customer serialization for mutating flows
	Locks *lock.KeyedMutex

	// External boundary
	Gateway gateway.PaymentGateway

	// Repositories
	PlanRepo    plan.Repository
	SubRepo     subscription.Repository
	InvoiceRepo invoice.Repository
	PaymentRepo payment.Repository
	UsageRepo   usage.Repository
}
