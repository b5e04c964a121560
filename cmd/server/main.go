package main

import (
	"context"

	"go.uber.org/fx"

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
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/repository/memory"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/seed"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/service"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			func(cfg *config.Configuration) cache.Cache {
				return cache.NewInMemoryCache(cfg)
			},
			lock.NewKeyedMutex,
			func(cfg *config.Configuration) gateway.PaymentGateway {
				return gateway.NewSimulatedGateway(cfg)
			},

			func() *memory.PlanStore { return memory.NewPlanStore() },
			func() *memory.SubscriptionStore { return memory.NewSubscriptionStore() },
			func() *memory.InvoiceStore { return memory.NewInvoiceStore() },
			func() *memory.PaymentStore { return memory.NewPaymentStore() },
			func() *memory.UsageStore { return memory.NewUsageStore() },

			func(s *memory.PlanStore) plan.Repository { return s },
			func(s *memory.SubscriptionStore) subscription.Repository { return s },
			func(s *memory.InvoiceStore) invoice.Repository { return s },
			func(s *memory.PaymentStore) payment.Repository { return s },
			func(s *memory.UsageStore) usage.Repository { return s },

			newServiceParams,

			service.NewPlanService,
			service.NewSubscriptionService,
			service.NewSubscriptionChangeService,
			service.NewInvoiceService,
			service.NewPaymentService,
			service.NewPaymentProcessorService,
			service.NewUsageService,
		),
		fx.Invoke(seedCatalog),
		fx.Invoke(logStartup),
	)

	app.Run()
}

func newServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	c cache.Cache,
	locks *lock.KeyedMutex,
	gw gateway.PaymentGateway,
	planRepo plan.Repository,
	subRepo subscription.Repository,
	invoiceRepo invoice.Repository,
	paymentRepo payment.Repository,
	usageRepo usage.Repository,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:      log,
		Config:      cfg,
		Cache:       c,
		Locks:       locks,
		Gateway:     gw,
		PlanRepo:    planRepo,
		SubRepo:     subRepo,
		InvoiceRepo: invoiceRepo,
		PaymentRepo: paymentRepo,
		UsageRepo:   usageRepo,
	}
}

func seedCatalog(lc fx.Lifecycle, repo plan.Repository, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return seed.Apply(types.SetUserID(ctx, types.DefaultUserID), repo, log)
		},
	})
}

func logStartup(lc fx.Lifecycle, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Infow("billing core started")
			return nil
		},
		OnStop: func(context.Context) error {
			log.Infow("billing core stopped")
			return nil
		},
	})
}
