package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

type InvoiceServiceSuite struct {
	suite.Suite
	h    *testHarness
	svc  InvoiceService
	subs SubscriptionService
}

func TestInvoiceServiceSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.h = newTestHarness(nil)
	s.svc = NewInvoiceService(s.h.params)
	s.subs = NewSubscriptionService(s.h.params)
}

func (s *InvoiceServiceSuite) subscribe(customerID string, p *plan.Plan, cycle types.BillingCycle) *dto.SubscriptionResponse {
	resp, err := s.subs.CreateSubscription(s.h.ctx, &dto.CreateSubscriptionRequest{
		CustomerID:   customerID,
		PlanID:       p.ID,
		BillingCycle: cycle,
	})
	s.Require().NoError(err)
	return resp
}

func (s *InvoiceServiceSuite) TestCreateInvoiceTotals() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub := s.subscribe("cust_1", p, types.BillingCycleMonthly)

	inv, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	s.Equal(types.InvoiceStatusOpen, inv.InvoiceStatus)
	s.True(decimal.NewFromInt(9).Equal(inv.Subtotal), "subtotal %s", inv.Subtotal)
	// Default flat tax is 10 percent.
	s.True(decimal.RequireFromString("0.9").Equal(inv.Tax), "tax %s", inv.Tax)
	s.True(inv.Total.Equal(inv.Subtotal.Add(inv.Tax)))
	s.Require().Len(inv.LineItems, 1)
	s.Equal(p.ID, *inv.LineItems[0].PlanID)
}

func (s *InvoiceServiceSuite) TestDueDateUsesGracePeriod() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub := s.subscribe("cust_1", p, types.BillingCycleMonthly)

	inv, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	wantDue := inv.Date.AddDate(0, 0, s.h.params.Config.Billing.InvoiceDueDays)
	s.Equal(wantDue, inv.DueDate)
}

func (s *InvoiceServiceSuite) TestQuarterlyPriceDerivesFromMonthly() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub := s.subscribe("cust_1", p, types.BillingCycleQuarterly)

	inv, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(27).Equal(inv.Subtotal), "subtotal %s", inv.Subtotal)
}

func (s *InvoiceServiceSuite) TestSetupFeeOnlyOnFirstInvoice() {
	fee := decimal.NewFromInt(25)
	p := s.h.seedPlan(types.PlanTypeEnterprise, 99, func(p *plan.Plan) {
		p.SetupFee = &fee
	})
	sub := s.subscribe("cust_1", p, types.BillingCycleMonthly)

	first, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)
	s.Require().Len(first.LineItems, 2)
	s.True(decimal.NewFromInt(124).Equal(first.Subtotal), "subtotal %s", first.Subtotal)

	second, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)
	s.Require().Len(second.LineItems, 1)
	s.True(decimal.NewFromInt(99).Equal(second.Subtotal), "subtotal %s", second.Subtotal)
}

func (s *InvoiceServiceSuite) TestInvoiceNumbersAreSequential() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub := s.subscribe("cust_1", p, types.BillingCycleMonthly)

	first, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)
	second, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	s.Equal("INV-000001", first.InvoiceNumber)
	s.Equal("INV-000002", second.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestGetInvoiceEnforcesOwnership() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub := s.subscribe("cust_1", p, types.BillingCycleMonthly)

	inv, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	got, err := s.svc.GetInvoice(s.h.ctx, "cust_1", inv.ID)
	s.Require().NoError(err)
	s.Equal(inv.ID, got.ID)

	_, err = s.svc.GetInvoice(s.h.ctx, "cust_2", inv.ID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestGetInvoicePDFURL() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub := s.subscribe("cust_1", p, types.BillingCycleMonthly)

	inv, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	pdf, err := s.svc.GetInvoicePDFURL(s.h.ctx, "cust_1", inv.ID)
	s.Require().NoError(err)
	s.Equal(inv.ID, pdf.InvoiceID)
	s.NotEmpty(pdf.URL)
}

func (s *InvoiceServiceSuite) TestMarkOverdueInvoices() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub := s.subscribe("cust_1", p, types.BillingCycleMonthly)

	inv, err := s.svc.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	// Not yet due.
	changed, err := s.svc.MarkOverdueInvoices(s.h.ctx, "cust_1")
	s.Require().NoError(err)
	s.Equal(0, changed)

	stored, err := s.h.stores.Invoices.Get(s.h.ctx, inv.ID)
	s.Require().NoError(err)
	stored.DueDate = time.Now().UTC().Add(-time.Hour)
	s.Require().NoError(s.h.stores.Invoices.Update(s.h.ctx, stored))

	changed, err = s.svc.MarkOverdueInvoices(s.h.ctx, "cust_1")
	s.Require().NoError(err)
	s.Equal(1, changed)

	after, err := s.h.stores.Invoices.Get(s.h.ctx, inv.ID)
	s.Require().NoError(err)
	s.Equal(types.InvoiceStatusOverdue, after.InvoiceStatus)
}
