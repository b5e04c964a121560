package service

import (
	"context"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/subscription"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// SubscriptionChangeService orchestrates plan changes and the feature
// entitlement questions that follow from them.
type SubscriptionChangeService interface {
	// ChangeSubscription supersedes the customer's current subscription
	// with one on the target plan, starting at the same instant the old
	// one ends. The full new cycle is invoiced; there is no proration.
	ChangeSubscription(ctx context.Context, req *dto.ChangeSubscriptionRequest) (*dto.PlanChangeResponse, error)
	// HasFeatureAccess reports whether the customer's current plan
	// includes the feature. No subscription or unknown feature denies.
	HasFeatureAccess(ctx context.Context, customerID, featureName string) (bool, error)
	// GetSubscriptionFeatures lists the current plan's features with
	// the customer's metered consumption against each.
	GetSubscriptionFeatures(ctx context.Context, customerID string) (*dto.SubscriptionFeaturesResponse, error)
	// HandleDowngradeResourceCleanup reports which resources exceed the
	// current plan's bounds. Advisory only; counters are left intact.
	HandleDowngradeResourceCleanup(ctx context.Context, customerID string) (*dto.DowngradeCleanupResponse, error)
}

type subscriptionChangeService struct {
	ServiceParams
	invoices InvoiceService
}

func NewSubscriptionChangeService(params ServiceParams) SubscriptionChangeService {
	return &subscriptionChangeService{
		ServiceParams: params,
		invoices:      NewInvoiceService(params),
	}
}

func (s *subscriptionChangeService) ChangeSubscription(ctx context.Context, req *dto.ChangeSubscriptionRequest) (*dto.PlanChangeResponse, error) {
	if req == nil {
		return nil, ierr.NewError("change subscription request cannot be nil").
			WithHint("Request payload is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.Locks.Lock(req.CustomerID)
	defer s.Locks.Unlock(req.CustomerID)

	current, err := s.SubRepo.GetCurrent(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	targetPlan, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if !targetPlan.IsAvailable {
		return nil, ierr.NewError("plan is not available").
			WithHintf("Plan %s is not open for subscription", targetPlan.ID).
			Mark(ierr.ErrNotFound)
	}

	if current.PlanID == targetPlan.ID {
		return nil, ierr.NewError("subscription already on this plan").
			WithHintf("Customer %s is already subscribed to plan %s", req.CustomerID, targetPlan.ID).
			Mark(ierr.ErrInvalidOperation)
	}

	currentPlan, err := s.PlanRepo.Get(ctx, current.PlanID)
	if err != nil {
		return nil, err
	}
	changeType := types.ClassifyPlanChange(currentPlan.Type, targetPlan.Type)

	cycle := current.BillingCycle
	if req.BillingCycle != "" {
		cycle = req.BillingCycle
	}

	// The old subscription ends and the new one starts at the same
	// instant, leaving no gap and no overlap.
	now := time.Now().UTC()
	current.SubscriptionStatus = types.SubscriptionStatusCancelled
	current.CancelledAt = &now
	current.EndDate = now
	current.AutoRenew = false
	current.UpdatedBy = types.GetUserID(ctx)
	if err := s.SubRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	endDate, err := types.NextBillingDate(now, cycle)
	if err != nil {
		return nil, err
	}

	next := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		CustomerID:         req.CustomerID,
		PlanID:             targetPlan.ID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		BillingCycle:       cycle,
		StartDate:          now,
		EndDate:            endDate,
		AutoRenew:          true,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	if err := s.SubRepo.Create(ctx, next); err != nil {
		return nil, err
	}

	resp := &dto.PlanChangeResponse{
		Subscription: &dto.SubscriptionResponse{
			Subscription: next,
			Plan:         &dto.PlanResponse{Plan: targetPlan},
		},
		ChangeType: changeType,
	}

	// Free plans carry no recurring charge, so no invoice is issued.
	if !targetPlan.IsFree() {
		invResp, err := s.invoices.CreateInvoiceForSubscription(ctx, next)
		if err != nil {
			return nil, err
		}
		resp.Invoice = invResp
	}

	// A downgrade can leave counters above the new plan's bounds; report
	// them so the caller can reconcile. Usage is never reduced here.
	if changeType == types.PlanChangeTypeDowngrade {
		overuse, err := s.overLimitResources(ctx, req.CustomerID, targetPlan)
		if err != nil {
			return nil, err
		}
		resp.OverLimitResources = overuse
	}

	s.Logger.Infow("changed subscription plan",
		"customer_id", req.CustomerID,
		"old_subscription_id", current.ID,
		"new_subscription_id", next.ID,
		"old_plan_id", currentPlan.ID,
		"new_plan_id", targetPlan.ID,
		"change_type", changeType)

	return resp, nil
}

func (s *subscriptionChangeService) HasFeatureAccess(ctx context.Context, customerID, featureName string) (bool, error) {
	if customerID == "" || featureName == "" {
		return false, ierr.NewError("customer ID and feature name are required").
			WithHint("Customer ID and feature name cannot be empty").
			Mark(ierr.ErrValidation)
	}

	p, err := s.currentPlan(ctx, customerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	feature := p.FindFeature(featureName)
	return feature != nil && feature.Included, nil
}

func (s *subscriptionChangeService) GetSubscriptionFeatures(ctx context.Context, customerID string) (*dto.SubscriptionFeaturesResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubRepo.GetCurrent(ctx, customerID)
	if err != nil {
		return nil, err
	}
	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.UsageRepo.GetSnapshot(ctx, customerID)
	if err != nil {
		return nil, err
	}

	features := make([]*dto.SubscriptionFeatureResponse, len(p.Features))
	for i, f := range p.Features {
		fr := &dto.SubscriptionFeatureResponse{
			Name:         f.Name,
			Included:     f.Included,
			Limit:        f.Limit,
			CurrentUsage: snapshot.Get(f.Name),
		}
		if f.Included && f.Limit != nil {
			if limit, err := types.ParseResourceLimit(*f.Limit); err == nil && !limit.Unlimited && limit.Bound > 0 {
				pct := float64(fr.CurrentUsage) / float64(limit.Bound) * 100
				fr.UsagePercentage = &pct
			}
		}
		features[i] = fr
	}

	return &dto.SubscriptionFeaturesResponse{
		SubscriptionID: sub.ID,
		PlanID:         p.ID,
		Features:       features,
	}, nil
}

func (s *subscriptionChangeService) HandleDowngradeResourceCleanup(ctx context.Context, customerID string) (*dto.DowngradeCleanupResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	p, err := s.currentPlan(ctx, customerID)
	if err != nil {
		return nil, err
	}
	items, err := s.overLimitResources(ctx, customerID, p)
	if err != nil {
		return nil, err
	}
	return &dto.DowngradeCleanupResponse{CustomerID: customerID, Items: items}, nil
}

// overLimitResources compares the customer's counters against the plan's
// bounds. Excluded or absent features carry a zero bound.
func (s *subscriptionChangeService) overLimitResources(ctx context.Context, customerID string, p *plan.Plan) ([]*dto.ResourceOveruse, error) {
	snapshot, err := s.UsageRepo.GetSnapshot(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var items []*dto.ResourceOveruse
	for resource, used := range snapshot {
		feature := p.FindFeature(resource)

		var limit types.ResourceLimit
		if feature != nil && feature.Included {
			if feature.Limit == nil {
				continue
			}
			limit, err = types.ParseResourceLimit(*feature.Limit)
			if err != nil {
				return nil, err
			}
			if limit.Unlimited {
				continue
			}
		}

		if used > limit.Bound {
			items = append(items, &dto.ResourceOveruse{
				Resource: resource,
				Used:     used,
				Bound:    limit.Bound,
				Excess:   used - limit.Bound,
			})
		}
	}
	return items, nil
}

func (s *subscriptionChangeService) currentPlan(ctx context.Context, customerID string) (*plan.Plan, error) {
	sub, err := s.SubRepo.GetCurrent(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.PlanRepo.Get(ctx, sub.PlanID)
}
