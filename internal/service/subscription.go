package service

import (
	"context"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/subscription"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// SubscriptionService owns the subscription lifecycle: creation,
// cancellation, expiry, and history queries.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetActiveSubscription(ctx context.Context, customerID string) (*dto.SubscriptionResponse, error)
	GetSubscriptionHistory(ctx context.Context, customerID string) (*dto.ListSubscriptionsResponse, error)
	CancelSubscription(ctx context.Context, customerID string, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error)
	// ExpireSubscription finalizes a current subscription whose period
	// has ended: cancelled when a period-end cancellation was requested,
	// expired otherwise. Callers drive this explicitly; there is no
	// background scheduler.
	ExpireSubscription(ctx context.Context, subscriptionID string) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if req == nil {
		return nil, ierr.NewError("create subscription request cannot be nil").
			WithHint("Request payload is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.Locks.Lock(req.CustomerID)
	defer s.Locks.Unlock(req.CustomerID)

	// A customer holds at most one current subscription.
	if existing, err := s.SubRepo.GetCurrent(ctx, req.CustomerID); err == nil {
		return nil, ierr.NewError("customer already has a current subscription").
			WithHintf("Customer %s already has subscription %s", req.CustomerID, existing.ID).
			WithReportableDetails(map[string]any{
				"customer_id":     req.CustomerID,
				"subscription_id": existing.ID,
				"status":          existing.SubscriptionStatus,
			}).
			Mark(ierr.ErrAlreadyExists)
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	p, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable {
		return nil, ierr.NewError("plan is not available").
			WithHintf("Plan %s is not open for subscription", p.ID).
			Mark(ierr.ErrNotFound)
	}

	now := time.Now().UTC()
	endDate, err := types.NextBillingDate(now, req.BillingCycle)
	if err != nil {
		return nil, err
	}

	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         req.CustomerID,
		PlanID:             p.ID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		BillingCycle:       req.BillingCycle,
		StartDate:          now,
		EndDate:            endDate,
		AutoRenew:          req.AutoRenew,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}

	if p.TrialDays > 0 {
		trialEnd := now.AddDate(0, 0, p.TrialDays)
		sub.SubscriptionStatus = types.SubscriptionStatusTrialing
		sub.TrialEnd = &trialEnd
	}

	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"customer_id", sub.CustomerID,
		"plan_id", sub.PlanID,
		"billing_cycle", sub.BillingCycle,
		"status", sub.SubscriptionStatus)

	return &dto.SubscriptionResponse{
		Subscription: sub,
		Plan:         &dto.PlanResponse{Plan: p},
	}, nil
}

func (s *subscriptionService) GetActiveSubscription(ctx context.Context, customerID string) (*dto.SubscriptionResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubRepo.GetCurrent(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SubscriptionResponse{Subscription: sub}
	if p, err := s.PlanRepo.Get(ctx, sub.PlanID); err == nil {
		resp.Plan = &dto.PlanResponse{Plan: p}
	}
	return resp, nil
}

func (s *subscriptionService) GetSubscriptionHistory(ctx context.Context, customerID string) (*dto.ListSubscriptionsResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	subs, err := s.SubRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubscriptionResponse, len(subs))
	for i, sub := range subs {
		items[i] = &dto.SubscriptionResponse{Subscription: sub}
	}
	return &dto.ListSubscriptionsResponse{Items: items, Total: len(items)}, nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, customerID string, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if req == nil {
		req = &dto.CancelSubscriptionRequest{}
	}

	s.Locks.Lock(customerID)
	defer s.Locks.Unlock(customerID)

	sub, err := s.SubRepo.GetCurrent(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub.CancelledAt = &now
	sub.AutoRenew = false
	sub.UpdatedBy = types.GetUserID(ctx)

	if req.Immediate {
		sub.SubscriptionStatus = types.SubscriptionStatusCancelled
		sub.EndDate = now
	}

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	// Immediate cancellation voids the subscription's open invoices so
	// the customer is not chased for a service that ended.
	if req.Immediate {
		if err := s.voidOpenInvoices(ctx, sub.ID, now); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("cancelled subscription",
		"subscription_id", sub.ID,
		"customer_id", customerID,
		"immediate", req.Immediate)

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) voidOpenInvoices(ctx context.Context, subscriptionID string, at time.Time) error {
	invoices, err := s.InvoiceRepo.ListBySubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if !inv.InvoiceStatus.IsPayable() {
			continue
		}
		voidedAt := at
		inv.InvoiceStatus = types.InvoiceStatusVoided
		inv.VoidedAt = &voidedAt
		inv.UpdatedBy = types.GetUserID(ctx)
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		s.Logger.Infow("voided invoice on cancellation",
			"invoice_id", inv.ID,
			"subscription_id", subscriptionID)
	}
	return nil
}

func (s *subscriptionService) ExpireSubscription(ctx context.Context, subscriptionID string) (*dto.SubscriptionResponse, error) {
	if subscriptionID == "" {
		return nil, ierr.NewError("subscription ID is required").
			WithHint("Subscription ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	s.Locks.Lock(sub.CustomerID)
	defer s.Locks.Unlock(sub.CustomerID)

	// Re-read under the lock; a concurrent flow may have advanced it.
	sub, err = s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if sub.SubscriptionStatus.IsTerminal() {
		return nil, ierr.NewError("subscription already terminal").
			WithHintf("Subscription %s is %s", sub.ID, sub.SubscriptionStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	if now.Before(sub.EndDate) {
		return nil, ierr.NewError("subscription period has not ended").
			WithHintf("Subscription %s runs until %s", sub.ID, sub.EndDate.Format(time.RFC3339)).
			Mark(ierr.ErrInvalidOperation)
	}

	// A period-end cancellation finishes as cancelled, a lapsed
	// subscription as expired.
	if sub.CancelledAt != nil {
		sub.SubscriptionStatus = types.SubscriptionStatusCancelled
	} else {
		sub.SubscriptionStatus = types.SubscriptionStatusExpired
	}
	sub.UpdatedBy = types.GetUserID(ctx)
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("finalized subscription",
		"subscription_id", sub.ID,
		"customer_id", sub.CustomerID,
		"status", sub.SubscriptionStatus)

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}
