package service

import (
	"context"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// UsageService meters resource consumption and answers quota questions
// against the customer's current plan.
type UsageService interface {
	// TrackResourceUsage applies a signed delta to the customer's
	// counter. Decrements clamp at zero.
	TrackResourceUsage(ctx context.Context, req *dto.TrackUsageRequest) (*dto.UsageResponse, error)
	GetResourceUsage(ctx context.Context, customerID, resource string) (*dto.UsageResponse, error)
	// GetUsageSnapshot returns every counter for the customer.
	GetUsageSnapshot(ctx context.Context, customerID string) (*dto.UsageSnapshotResponse, error)
	// GetResourceLimit resolves the limit the customer's current plan
	// places on a resource. Features absent from the plan or excluded
	// by it read as a zero bound.
	GetResourceLimit(ctx context.Context, customerID, resource string) (*dto.ResourceLimitResponse, error)
	// VerifyResourceLimit reports whether the requested amount fits
	// inside the plan limit on top of current usage. Denial is a
	// result, not an error.
	VerifyResourceLimit(ctx context.Context, customerID, resource string, requested int64) (*dto.VerifyLimitResponse, error)
}

type usageService struct {
	ServiceParams
}

func NewUsageService(params ServiceParams) UsageService {
	return &usageService{ServiceParams: params}
}

func (s *usageService) TrackResourceUsage(ctx context.Context, req *dto.TrackUsageRequest) (*dto.UsageResponse, error) {
	if req == nil {
		return nil, ierr.NewError("track usage request cannot be nil").
			WithHint("Request payload is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.Locks.Lock(req.CustomerID)
	defer s.Locks.Unlock(req.CustomerID)

	used, err := s.UsageRepo.Add(ctx, req.CustomerID, req.Resource, req.Delta)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("tracked resource usage",
		"customer_id", req.CustomerID,
		"resource", req.Resource,
		"delta", req.Delta,
		"used", used)

	return &dto.UsageResponse{
		CustomerID: req.CustomerID,
		Resource:   req.Resource,
		Used:       used,
	}, nil
}

func (s *usageService) GetResourceUsage(ctx context.Context, customerID, resource string) (*dto.UsageResponse, error) {
	if customerID == "" || resource == "" {
		return nil, ierr.NewError("customer ID and resource are required").
			WithHint("Customer ID and resource cannot be empty").
			Mark(ierr.ErrValidation)
	}

	used, err := s.UsageRepo.Get(ctx, customerID, resource)
	if err != nil {
		return nil, err
	}
	return &dto.UsageResponse{
		CustomerID: customerID,
		Resource:   resource,
		Used:       used,
	}, nil
}

func (s *usageService) GetUsageSnapshot(ctx context.Context, customerID string) (*dto.UsageSnapshotResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	snapshot, err := s.UsageRepo.GetSnapshot(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &dto.UsageSnapshotResponse{
		CustomerID: customerID,
		Usage:      snapshot,
	}, nil
}

func (s *usageService) GetResourceLimit(ctx context.Context, customerID, resource string) (*dto.ResourceLimitResponse, error) {
	if customerID == "" || resource == "" {
		return nil, ierr.NewError("customer ID and resource are required").
			WithHint("Customer ID and resource cannot be empty").
			Mark(ierr.ErrValidation)
	}

	limit, err := s.resolveLimit(ctx, customerID, resource)
	if err != nil {
		return nil, err
	}
	return &dto.ResourceLimitResponse{
		Resource:  resource,
		Unlimited: limit.Unlimited,
		Bound:     limit.Bound,
	}, nil
}

func (s *usageService) VerifyResourceLimit(ctx context.Context, customerID, resource string, requested int64) (*dto.VerifyLimitResponse, error) {
	if customerID == "" || resource == "" {
		return nil, ierr.NewError("customer ID and resource are required").
			WithHint("Customer ID and resource cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if requested < 0 {
		return nil, ierr.NewError("requested amount must not be negative").
			WithHint("Requested amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}

	limit, err := s.resolveLimit(ctx, customerID, resource)
	if err != nil {
		return nil, err
	}

	used, err := s.UsageRepo.Get(ctx, customerID, resource)
	if err != nil {
		return nil, err
	}

	return &dto.VerifyLimitResponse{
		Resource:  resource,
		Allowed:   limit.Allows(used, requested),
		Used:      used,
		Requested: requested,
	}, nil
}

// resolveLimit maps the customer's current plan feature onto a resource
// limit. No current subscription, a missing feature, or an excluded one
// all deny by default with a zero bound. An included feature without a
// limit string is unbounded.
func (s *usageService) resolveLimit(ctx context.Context, customerID, resource string) (types.ResourceLimit, error) {
	sub, err := s.SubRepo.GetCurrent(ctx, customerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return types.ResourceLimit{}, nil
		}
		return types.ResourceLimit{}, err
	}

	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return types.ResourceLimit{}, err
	}

	feature := p.FindFeature(resource)
	if feature == nil || !feature.Included {
		return types.ResourceLimit{}, nil
	}
	if feature.Limit == nil {
		return types.ResourceLimit{Unlimited: true}, nil
	}
	return types.ParseResourceLimit(*feature.Limit)
}
