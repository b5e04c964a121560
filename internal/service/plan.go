package service

import (
	"context"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/cache"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// PlanService exposes the plan catalog.
type PlanService interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlans(ctx context.Context) (*dto.ListPlansResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	// GetPlanPriority returns the tier rank used to classify plan
	// changes, free=0 through enterprise=3.
	GetPlanPriority(ctx context.Context, id string) (int, error)
	// IsPlanFree reports whether the plan carries no recurring charge.
	IsPlanFree(ctx context.Context, id string) (bool, error)
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

func (s *planService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if req == nil {
		return nil, ierr.NewError("create plan request cannot be nil").
			WithHint("Request payload is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPlan(ctx)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created plan",
		"plan_id", p.ID,
		"plan_type", p.Type,
		"plan_name", p.Name)

	// New catalog entries invalidate cached listings.
	s.Cache.DeleteByPrefix(ctx, cache.PrefixPlan)

	return &dto.PlanResponse{Plan: p}, nil
}

func (s *planService) GetPlans(ctx context.Context) (*dto.ListPlansResponse, error) {
	cacheKey := cache.GenerateKey(cache.PrefixPlan, "list")
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if resp, ok := cached.(*dto.ListPlansResponse); ok {
			return resp, nil
		}
	}

	plans, err := s.PlanRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PlanResponse, len(plans))
	for i, p := range plans {
		items[i] = &dto.PlanResponse{Plan: p}
	}
	resp := &dto.ListPlansResponse{Items: items, Total: len(items)}

	s.Cache.Set(ctx, cacheKey, resp, 0)
	return resp, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	if id == "" {
		return nil, ierr.NewError("plan ID is required").
			WithHint("Plan ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	cacheKey := cache.GenerateKey(cache.PrefixPlan, id)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if resp, ok := cached.(*dto.PlanResponse); ok {
			return resp, nil
		}
	}

	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.PlanResponse{Plan: p}
	s.Cache.Set(ctx, cacheKey, resp, 0)
	return resp, nil
}

func (s *planService) GetPlanPriority(ctx context.Context, id string) (int, error) {
	resp, err := s.GetPlan(ctx, id)
	if err != nil {
		return 0, err
	}
	return resp.Type.Priority(), nil
}

func (s *planService) IsPlanFree(ctx context.Context, id string) (bool, error) {
	resp, err := s.GetPlan(ctx, id)
	if err != nil {
		return false, err
	}
	return resp.IsFree(), nil
}
