package service

import (
	"context"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/invoice"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/payment"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/gateway"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// PaymentProcessorService charges invoices through the payment gateway.
// A declined charge is a normal outcome recorded as a failed transaction,
// not an error return.
type PaymentProcessorService interface {
	ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error)
	// RetryFailedPayment attempts a failed transaction's invoice again
	// with the same payment method, recording a fresh transaction.
	RetryFailedPayment(ctx context.Context, customerID, paymentID string) (*dto.PaymentResponse, error)
}

type paymentProcessorService struct {
	ServiceParams
}

func NewPaymentProcessorService(params ServiceParams) PaymentProcessorService {
	return &paymentProcessorService{ServiceParams: params}
}

func (s *paymentProcessorService) ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	if req == nil {
		return nil, ierr.NewError("process payment request cannot be nil").
			WithHint("Request payload is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	method, err := s.resolveMethod(ctx, req.CustomerID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	return s.charge(ctx, req.CustomerID, req.InvoiceID, method, req.Metadata)
}

func (s *paymentProcessorService) RetryFailedPayment(ctx context.Context, customerID, paymentID string) (*dto.PaymentResponse, error) {
	if customerID == "" || paymentID == "" {
		return nil, ierr.NewError("customer ID and payment ID are required").
			WithHint("Customer ID and payment ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	prior, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if prior.CustomerID != customerID {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment %s not found", paymentID).
			Mark(ierr.ErrNotFound)
	}
	if prior.PaymentStatus != types.PaymentStatusFailed {
		return nil, ierr.NewError("only failed payments can be retried").
			WithHintf("Payment %s is %s", paymentID, prior.PaymentStatus).
			WithReportableDetails(map[string]any{
				"payment_id": paymentID,
				"status":     prior.PaymentStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	if prior.InvoiceID == nil {
		return nil, ierr.NewError("payment has no invoice to retry").
			WithHintf("Payment %s was not charged against an invoice", paymentID).
			Mark(ierr.ErrInvalidOperation)
	}

	method, err := s.PaymentRepo.GetMethod(ctx, prior.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	return s.charge(ctx, customerID, *prior.InvoiceID, method, prior.Metadata)
}

// resolveMethod returns the explicit method when given, else the
// customer's default.
func (s *paymentProcessorService) resolveMethod(ctx context.Context, customerID, methodID string) (*payment.Method, error) {
	if methodID == "" {
		return s.PaymentRepo.GetDefaultMethod(ctx, customerID)
	}

	method, err := s.PaymentRepo.GetMethod(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method.CustomerID != customerID {
		return nil, ierr.NewError("payment method not found").
			WithHintf("Payment method %s not found", methodID).
			Mark(ierr.ErrNotFound)
	}
	return method, nil
}

// charge runs one transaction through the gateway. The customer lock is
// held while the transaction record and invoice change state, but released
// around the gateway call itself so a slow provider does not serialize the
// customer's unrelated operations; the invoice is re-validated afterwards.
func (s *paymentProcessorService) charge(ctx context.Context, customerID, invoiceID string, method *payment.Method, metadata types.Metadata) (*dto.PaymentResponse, error) {
	s.Locks.Lock(customerID)
	inv, err := s.validatePayableInvoice(ctx, customerID, invoiceID)
	if err != nil {
		s.Locks.Unlock(customerID)
		return nil, err
	}

	now := time.Now().UTC()
	invID := inv.ID
	txn := &payment.Payment{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		CustomerID:        customerID,
		InvoiceID:         &invID,
		PaymentMethodID:   method.ID,
		PaymentMethodType: method.Type,
		PaymentStatus:     types.PaymentStatusProcessing,
		Amount:            inv.Total,
		Date:              now,
		Metadata:          metadata,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
	if err := txn.Validate(); err != nil {
		s.Locks.Unlock(customerID)
		return nil, err
	}
	if err := s.PaymentRepo.Create(ctx, txn); err != nil {
		s.Locks.Unlock(customerID)
		return nil, err
	}
	s.Locks.Unlock(customerID)

	result, gwErr := s.Gateway.Charge(ctx, &gateway.ChargeRequest{
		CustomerID:      customerID,
		PaymentMethodID: method.ID,
		MethodType:      method.Type,
		Amount:          txn.Amount,
		InvoiceID:       inv.ID,
		IdempotencyKey:  txn.ID,
	})

	s.Locks.Lock(customerID)
	defer s.Locks.Unlock(customerID)

	if gwErr != nil {
		reason := gwErr.Error()
		if err := s.finishFailed(ctx, txn, reason); err != nil {
			return nil, err
		}
		return &dto.PaymentResponse{Payment: txn}, nil
	}

	// The invoice may have been paid, voided, or cancelled while the
	// gateway call was in flight.
	inv, err = s.validatePayableInvoice(ctx, customerID, invoiceID)
	if err != nil {
		if failErr := s.finishFailed(ctx, txn, "invoice no longer payable"); failErr != nil {
			return nil, failErr
		}
		return &dto.PaymentResponse{Payment: txn}, nil
	}

	if !result.Succeeded {
		if err := s.finishFailed(ctx, txn, result.DeclineReason); err != nil {
			return nil, err
		}
		if err := s.markOverdueIfPast(ctx, inv); err != nil {
			return nil, err
		}
		s.Logger.Infow("payment declined",
			"payment_id", txn.ID,
			"invoice_id", inv.ID,
			"customer_id", customerID,
			"reason", result.DeclineReason)
		return &dto.PaymentResponse{Payment: txn}, nil
	}

	succeededAt := time.Now().UTC()
	txn.PaymentStatus = types.PaymentStatusSucceeded
	txn.SucceededAt = &succeededAt
	txn.GatewayTransactionID = &result.TransactionID
	txn.UpdatedBy = types.GetUserID(ctx)
	if err := s.PaymentRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	inv.InvoiceStatus = types.InvoiceStatusPaid
	inv.PaidAt = &succeededAt
	inv.UpdatedBy = types.GetUserID(ctx)
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("payment succeeded",
		"payment_id", txn.ID,
		"invoice_id", inv.ID,
		"customer_id", customerID,
		"amount", txn.Amount,
		"gateway_transaction_id", result.TransactionID)

	return &dto.PaymentResponse{Payment: txn}, nil
}

// validatePayableInvoice fetches the invoice, checks ownership, and
// ensures a payment may still be attempted against it.
func (s *paymentProcessorService) validatePayableInvoice(ctx context.Context, customerID, invoiceID string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.CustomerID != customerID {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s not found", invoiceID).
			Mark(ierr.ErrNotFound)
	}
	if !inv.InvoiceStatus.IsPayable() {
		return nil, ierr.NewError("invoice is not payable").
			WithHintf("Invoice %s is %s", invoiceID, inv.InvoiceStatus).
			WithReportableDetails(map[string]any{
				"invoice_id": invoiceID,
				"status":     inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return inv, nil
}

func (s *paymentProcessorService) finishFailed(ctx context.Context, txn *payment.Payment, reason string) error {
	failedAt := time.Now().UTC()
	txn.PaymentStatus = types.PaymentStatusFailed
	txn.FailedAt = &failedAt
	txn.ErrorMessage = &reason
	txn.UpdatedBy = types.GetUserID(ctx)
	return s.PaymentRepo.Update(ctx, txn)
}

// markOverdueIfPast flips an open invoice to overdue after a failed
// attempt once its grace period has elapsed.
func (s *paymentProcessorService) markOverdueIfPast(ctx context.Context, inv *invoice.Invoice) error {
	if inv.InvoiceStatus != types.InvoiceStatusOpen || !inv.IsPastDue(time.Now().UTC()) {
		return nil
	}
	inv.InvoiceStatus = types.InvoiceStatusOverdue
	inv.UpdatedBy = types.GetUserID(ctx)
	return s.InvoiceRepo.Update(ctx, inv)
}
