package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/config"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/gateway"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/testutil"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

type testHarness struct {
	ctx    context.Context
	stores *testutil.Stores
	params ServiceParams
}

func newTestHarness(gw gateway.PaymentGateway) *testHarness {
	stores := testutil.NewStores()
	if gw == nil {
		gw = gateway.NewStaticGateway()
	}
	return &testHarness{
		ctx:    testutil.SetupContext(),
		stores: stores,
		params: ServiceParams{
			Logger:      testutil.NewTestLogger(),
			Config:      config.GetDefaultConfig(),
			Cache:       testutil.NewTestCache(),
			Locks:       testutil.NewKeyedMutex(),
			Gateway:     gw,
			PlanRepo:    stores.Plans,
			SubRepo:     stores.Subscriptions,
			InvoiceRepo: stores.Invoices,
			PaymentRepo: stores.Payments,
			UsageRepo:   stores.Usage,
		},
	}
}

func limitStr(s string) *string { return &s }

// seedPlan installs a plan directly into the store and returns it.
func (h *testHarness) seedPlan(planType types.PlanType, monthly int64, opts ...func(*plan.Plan)) *plan.Plan {
	p := &plan.Plan{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Type:         planType,
		Name:         string(planType),
		MonthlyPrice: decimal.NewFromInt(monthly),
		AnnualPrice:  decimal.NewFromInt(monthly * 10),
		IsAvailable:  true,
		BaseModel:    types.GetDefaultBaseModel(h.ctx),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := h.stores.Plans.Create(h.ctx, p); err != nil {
		panic(err)
	}
	return p
}
