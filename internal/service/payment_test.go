package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/gateway"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

type PaymentServiceSuite struct {
	suite.Suite
	h   *testHarness
	svc PaymentService
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.h = newTestHarness(nil)
	s.svc = NewPaymentService(s.h.params)
}

func (s *PaymentServiceSuite) TestFirstMethodBecomesDefault() {
	resp, err := s.svc.CreatePaymentMethod(s.h.ctx, &dto.CreatePaymentMethodRequest{
		CustomerID: "cust_1",
		Type:       types.PaymentMethodTypeCreditCard,
	})
	s.Require().NoError(err)
	s.True(resp.IsDefault)

	// Every method carries a short customer-facing label.
	s.True(strings.HasPrefix(resp.DisplayID, "PM-"), resp.DisplayID)
	s.LessOrEqual(len(resp.DisplayID), 12)
}

func (s *PaymentServiceSuite) TestSetDefaultIsExclusive() {
	_, err := s.svc.CreatePaymentMethod(s.h.ctx, &dto.CreatePaymentMethodRequest{
		CustomerID: "cust_1",
		Type:       types.PaymentMethodTypeCreditCard,
	})
	s.Require().NoError(err)

	second, err := s.svc.CreatePaymentMethod(s.h.ctx, &dto.CreatePaymentMethodRequest{
		CustomerID: "cust_1",
		Type:       types.PaymentMethodTypePaypal,
	})
	s.Require().NoError(err)
	s.False(second.IsDefault)

	s.Require().NoError(s.svc.SetDefaultPaymentMethod(s.h.ctx, "cust_1", second.ID))

	list, err := s.svc.GetPaymentMethods(s.h.ctx, "cust_1")
	s.Require().NoError(err)
	s.Require().Len(list.Items, 2)
	for _, m := range list.Items {
		s.Equal(m.ID == second.ID, m.IsDefault, m.ID)
	}
}

func (s *PaymentServiceSuite) TestDeleteDefaultPromotesRemaining() {
	first, err := s.svc.CreatePaymentMethod(s.h.ctx, &dto.CreatePaymentMethodRequest{
		CustomerID: "cust_1",
		Type:       types.PaymentMethodTypeCreditCard,
	})
	s.Require().NoError(err)
	second, err := s.svc.CreatePaymentMethod(s.h.ctx, &dto.CreatePaymentMethodRequest{
		CustomerID: "cust_1",
		Type:       types.PaymentMethodTypeBankTransfer,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeletePaymentMethod(s.h.ctx, "cust_1", first.ID))

	def, err := s.h.stores.Payments.GetDefaultMethod(s.h.ctx, "cust_1")
	s.Require().NoError(err)
	s.Equal(second.ID, def.ID)
}

func (s *PaymentServiceSuite) TestDeleteForeignMethodIsNotFound() {
	method, err := s.svc.CreatePaymentMethod(s.h.ctx, &dto.CreatePaymentMethodRequest{
		CustomerID: "cust_1",
		Type:       types.PaymentMethodTypeCreditCard,
	})
	s.Require().NoError(err)

	err = s.svc.DeletePaymentMethod(s.h.ctx, "cust_2", method.ID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

type PaymentProcessorSuite struct {
	suite.Suite
	h        *testHarness
	svc      PaymentProcessorService
	methods  PaymentService
	invoices InvoiceService
	subs     SubscriptionService

	gw *gateway.StaticGateway
}

func TestPaymentProcessorSuite(t *testing.T) {
	suite.Run(t, new(PaymentProcessorSuite))
}

func (s *PaymentProcessorSuite) SetupTest() {
	s.gw = gateway.NewStaticGateway()
	s.h = newTestHarness(s.gw)
	s.svc = NewPaymentProcessorService(s.h.params)
	s.methods = NewPaymentService(s.h.params)
	s.invoices = NewInvoiceService(s.h.params)
	s.subs = NewSubscriptionService(s.h.params)
}

// setupInvoice subscribes the customer, issues an invoice, and stores a
// default payment method.
func (s *PaymentProcessorSuite) setupInvoice(customerID string) (*dto.InvoiceResponse, *dto.PaymentMethodResponse) {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub, err := s.subs.CreateSubscription(s.h.ctx, &dto.CreateSubscriptionRequest{
		CustomerID:   customerID,
		PlanID:       p.ID,
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Require().NoError(err)

	inv, err := s.invoices.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	method, err := s.methods.CreatePaymentMethod(s.h.ctx, &dto.CreatePaymentMethodRequest{
		CustomerID: customerID,
		Type:       types.PaymentMethodTypeCreditCard,
	})
	s.Require().NoError(err)

	return inv, method
}

func (s *PaymentProcessorSuite) TestSuccessfulPaymentMarksInvoicePaid() {
	inv, method := s.setupInvoice("cust_1")

	resp, err := s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().NoError(err)
	s.Equal(types.PaymentStatusSucceeded, resp.PaymentStatus)
	s.Equal(method.ID, resp.PaymentMethodID)
	s.True(resp.Amount.Equal(inv.Total))
	s.NotNil(resp.GatewayTransactionID)
	s.NotNil(resp.SucceededAt)

	paid, err := s.h.stores.Invoices.Get(s.h.ctx, inv.ID)
	s.Require().NoError(err)
	s.Equal(types.InvoiceStatusPaid, paid.InvoiceStatus)
	s.NotNil(paid.PaidAt)
}

func (s *PaymentProcessorSuite) TestDeclinedPaymentIsRecordedNotErrored() {
	inv, _ := s.setupInvoice("cust_1")
	s.gw = gateway.NewStaticGateway(false)
	s.h.params.Gateway = s.gw
	s.svc = NewPaymentProcessorService(s.h.params)

	resp, err := s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().NoError(err)
	s.Equal(types.PaymentStatusFailed, resp.PaymentStatus)
	s.NotNil(resp.FailedAt)
	s.Require().NotNil(resp.ErrorMessage)
	s.NotEmpty(*resp.ErrorMessage)

	// Invoice stays payable for a retry.
	after, err := s.h.stores.Invoices.Get(s.h.ctx, inv.ID)
	s.Require().NoError(err)
	s.Equal(types.InvoiceStatusOpen, after.InvoiceStatus)
}

func (s *PaymentProcessorSuite) TestProcessPaymentWithoutMethod() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)
	sub, err := s.subs.CreateSubscription(s.h.ctx, &dto.CreateSubscriptionRequest{
		CustomerID:   "cust_1",
		PlanID:       p.ID,
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Require().NoError(err)
	inv, err := s.invoices.CreateInvoiceForSubscription(s.h.ctx, sub.Subscription)
	s.Require().NoError(err)

	_, err = s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentProcessorSuite) TestProcessPaymentRejectsPaidInvoice() {
	inv, _ := s.setupInvoice("cust_1")

	_, err := s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().NoError(err)

	_, err = s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentProcessorSuite) TestRetryFailedPayment() {
	inv, _ := s.setupInvoice("cust_1")
	s.gw = gateway.NewStaticGateway(false, true)
	s.h.params.Gateway = s.gw
	s.svc = NewPaymentProcessorService(s.h.params)

	failed, err := s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().NoError(err)
	s.Equal(types.PaymentStatusFailed, failed.PaymentStatus)

	retried, err := s.svc.RetryFailedPayment(s.h.ctx, "cust_1", failed.ID)
	s.Require().NoError(err)
	s.Equal(types.PaymentStatusSucceeded, retried.PaymentStatus)
	s.NotEqual(failed.ID, retried.ID)
	s.Equal(*failed.InvoiceID, *retried.InvoiceID)

	// Original record is untouched.
	prior, err := s.h.stores.Payments.Get(s.h.ctx, failed.ID)
	s.Require().NoError(err)
	s.Equal(types.PaymentStatusFailed, prior.PaymentStatus)
}

func (s *PaymentProcessorSuite) TestRetryRejectsNonFailedPayment() {
	inv, _ := s.setupInvoice("cust_1")

	succeeded, err := s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().NoError(err)

	_, err = s.svc.RetryFailedPayment(s.h.ctx, "cust_1", succeeded.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentProcessorSuite) TestRetryForeignPaymentIsNotFound() {
	inv, _ := s.setupInvoice("cust_1")
	s.gw = gateway.NewStaticGateway(false)
	s.h.params.Gateway = s.gw
	s.svc = NewPaymentProcessorService(s.h.params)

	failed, err := s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().NoError(err)

	_, err = s.svc.RetryFailedPayment(s.h.ctx, "cust_2", failed.ID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentProcessorSuite) TestPaymentHistoryNewestFirst() {
	inv, _ := s.setupInvoice("cust_1")
	s.gw = gateway.NewStaticGateway(false, true)
	s.h.params.Gateway = s.gw
	s.svc = NewPaymentProcessorService(s.h.params)

	failed, err := s.svc.ProcessPayment(s.h.ctx, &dto.ProcessPaymentRequest{
		CustomerID: "cust_1",
		InvoiceID:  inv.ID,
	})
	s.Require().NoError(err)
	_, err = s.svc.RetryFailedPayment(s.h.ctx, "cust_1", failed.ID)
	s.Require().NoError(err)

	history, err := s.methods.GetCustomerPayments(s.h.ctx, "cust_1")
	s.Require().NoError(err)
	s.Require().Len(history.Items, 2)

	byInvoice, err := s.h.stores.Payments.ListByInvoice(s.h.ctx, inv.ID)
	s.Require().NoError(err)
	s.Require().Len(byInvoice, 2)
	s.Equal(types.PaymentStatusFailed, byInvoice[0].PaymentStatus)
	s.Equal(types.PaymentStatusSucceeded, byInvoice[1].PaymentStatus)
}
