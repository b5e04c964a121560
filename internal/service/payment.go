package service

import (
	"context"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// PaymentService manages stored payment methods and serves transaction
// history. Charging lives in PaymentProcessorService.
type PaymentService interface {
	CreatePaymentMethod(ctx context.Context, req *dto.CreatePaymentMethodRequest) (*dto.PaymentMethodResponse, error)
	GetPaymentMethods(ctx context.Context, customerID string) (*dto.ListPaymentMethodsResponse, error)
	SetDefaultPaymentMethod(ctx context.Context, customerID, methodID string) error
	DeletePaymentMethod(ctx context.Context, customerID, methodID string) error
	GetCustomerPayments(ctx context.Context, customerID string) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

func (s *paymentService) CreatePaymentMethod(ctx context.Context, req *dto.CreatePaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	if req == nil {
		return nil, ierr.NewError("create payment method request cannot be nil").
			WithHint("Request payload is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.Locks.Lock(req.CustomerID)
	defer s.Locks.Unlock(req.CustomerID)

	method := req.ToMethod(ctx)

	// The customer's first method becomes the default even when not
	// requested, so charging without an explicit method always works
	// once any method exists.
	existing, err := s.PaymentRepo.ListMethods(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		method.IsDefault = true
	}

	if err := method.Validate(); err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.CreateMethod(ctx, method); err != nil {
		return nil, err
	}

	if method.IsDefault && len(existing) > 0 {
		if err := s.PaymentRepo.SetDefaultMethod(ctx, req.CustomerID, method.ID); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("created payment method",
		"payment_method_id", method.ID,
		"customer_id", method.CustomerID,
		"type", method.Type,
		"is_default", method.IsDefault)

	return &dto.PaymentMethodResponse{Method: method}, nil
}

func (s *paymentService) GetPaymentMethods(ctx context.Context, customerID string) (*dto.ListPaymentMethodsResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	methods, err := s.PaymentRepo.ListMethods(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentMethodResponse, len(methods))
	for i, m := range methods {
		items[i] = &dto.PaymentMethodResponse{Method: m}
	}
	return &dto.ListPaymentMethodsResponse{Items: items, Total: len(items)}, nil
}

func (s *paymentService) SetDefaultPaymentMethod(ctx context.Context, customerID, methodID string) error {
	if customerID == "" || methodID == "" {
		return ierr.NewError("customer ID and method ID are required").
			WithHint("Customer ID and payment method ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	s.Locks.Lock(customerID)
	defer s.Locks.Unlock(customerID)

	return s.PaymentRepo.SetDefaultMethod(ctx, customerID, methodID)
}

func (s *paymentService) DeletePaymentMethod(ctx context.Context, customerID, methodID string) error {
	if customerID == "" || methodID == "" {
		return ierr.NewError("customer ID and method ID are required").
			WithHint("Customer ID and payment method ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	s.Locks.Lock(customerID)
	defer s.Locks.Unlock(customerID)

	method, err := s.PaymentRepo.GetMethod(ctx, methodID)
	if err != nil {
		return err
	}
	if method.CustomerID != customerID {
		return ierr.NewError("payment method not found").
			WithHintf("Payment method %s not found", methodID).
			Mark(ierr.ErrNotFound)
	}

	if err := s.PaymentRepo.DeleteMethod(ctx, methodID); err != nil {
		return err
	}

	// Deleting the default promotes the newest remaining method.
	if method.IsDefault {
		remaining, err := s.PaymentRepo.ListMethods(ctx, customerID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.PaymentRepo.SetDefaultMethod(ctx, customerID, remaining[0].ID); err != nil {
				return err
			}
		}
	}

	s.Logger.Infow("deleted payment method",
		"payment_method_id", methodID,
		"customer_id", customerID)
	return nil
}

func (s *paymentService) GetCustomerPayments(ctx context.Context, customerID string) (*dto.ListPaymentsResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	payments, err := s.PaymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = &dto.PaymentResponse{Payment: p}
	}
	return &dto.ListPaymentsResponse{Items: items, Total: len(items)}, nil
}
