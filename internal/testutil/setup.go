package testutil

import (
	"context"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/cache"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/config"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/lock"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/logger"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/repository/memory"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// SetupContext returns a context carrying the default acting identity.
func SetupContext() context.Context {
	return types.SetUserID(context.Background(), types.DefaultUserID)
}

// Stores bundles one in-memory store per entity for a test run.
type Stores struct {
	Plans         *memory.PlanStore
	Subscriptions *memory.SubscriptionStore
	Invoices      *memory.InvoiceStore
	Payments      *memory.PaymentStore
	Usage         *memory.UsageStore
}

func NewStores() *Stores {
	return &Stores{
		Plans:         memory.NewPlanStore(),
		Subscriptions: memory.NewSubscriptionStore(),
		Invoices:      memory.NewInvoiceStore(),
		Payments:      memory.NewPaymentStore(),
		Usage:         memory.NewUsageStore(),
	}
}

// Clear resets every store.
func (s *Stores) Clear() {
	s.Plans.Clear()
	s.Subscriptions.Clear()
	s.Invoices.Clear()
	s.Payments.Clear()
	s.Usage.Clear()
}

// NewTestLogger returns a logger at error level so test output stays quiet.
func NewTestLogger() *logger.Logger {
	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelError
	log, err := logger.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	return log
}

// NewTestCache returns an enabled in-memory cache.
func NewTestCache() cache.Cache {
	return cache.NewInMemoryCache(config.GetDefaultConfig())
}

// NewKeyedMutex returns a fresh per-key mutex for a test run.
func NewKeyedMutex() *lock.KeyedMutex {
	return lock.NewKeyedMutex()
}
