package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

type PlanServiceSuite struct {
	suite.Suite
	h   *testHarness
	svc PlanService
}

func TestPlanServiceSuite(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	s.h = newTestHarness(nil)
	s.svc = NewPlanService(s.h.params)
}

func (s *PlanServiceSuite) TestCreatePlan() {
	resp, err := s.svc.CreatePlan(s.h.ctx, &dto.CreatePlanRequest{
		Type:         types.PlanTypeBasic,
		Name:         "Basic",
		MonthlyPrice: decimal.NewFromInt(9),
		AnnualPrice:  decimal.NewFromInt(90),
		IsAvailable:  true,
		Features: []dto.PlanFeature{
			{Name: types.ResourceProjects, Included: true, Limit: limitStr("10")},
		},
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(types.PlanTypeBasic, resp.Type)
	s.Equal(1, resp.Version)
}

func (s *PlanServiceSuite) TestCreatePlanRejectsBadLimit() {
	_, err := s.svc.CreatePlan(s.h.ctx, &dto.CreatePlanRequest{
		Type: types.PlanTypeBasic,
		Name: "Basic",
		Features: []dto.PlanFeature{
			{Name: types.ResourceProjects, Included: true, Limit: limitStr("many")},
		},
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PlanServiceSuite) TestCreatePlanRejectsUnknownType() {
	_, err := s.svc.CreatePlan(s.h.ctx, &dto.CreatePlanRequest{
		Type: types.PlanType("platinum"),
		Name: "Platinum",
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PlanServiceSuite) TestGetPlansOrderedByPriorityAndFiltered() {
	s.h.seedPlan(types.PlanTypeEnterprise, 99)
	s.h.seedPlan(types.PlanTypeFree, 0)
	s.h.seedPlan(types.PlanTypePremium, 29, func(p *plan.Plan) { p.IsAvailable = false })

	resp, err := s.svc.GetPlans(s.h.ctx)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 2)
	s.Equal(types.PlanTypeFree, resp.Items[0].Type)
	s.Equal(types.PlanTypeEnterprise, resp.Items[1].Type)
}

func (s *PlanServiceSuite) TestGetPlanCachesAndInvalidates() {
	p := s.h.seedPlan(types.PlanTypeBasic, 9)

	first, err := s.svc.GetPlans(s.h.ctx)
	s.Require().NoError(err)
	s.Len(first.Items, 1)

	// A second read is served from cache even though it bypasses the
	// store; creating a plan through the service invalidates it.
	_, err = s.svc.CreatePlan(s.h.ctx, &dto.CreatePlanRequest{
		Type:         types.PlanTypePremium,
		Name:         "Premium",
		MonthlyPrice: decimal.NewFromInt(29),
		AnnualPrice:  decimal.NewFromInt(290),
		IsAvailable:  true,
	})
	s.Require().NoError(err)

	second, err := s.svc.GetPlans(s.h.ctx)
	s.Require().NoError(err)
	s.Len(second.Items, 2)

	got, err := s.svc.GetPlan(s.h.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
}

func (s *PlanServiceSuite) TestGetPlanNotFound() {
	_, err := s.svc.GetPlan(s.h.ctx, "plan_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PlanServiceSuite) TestPlanPriorityAndFree() {
	free := s.h.seedPlan(types.PlanTypeFree, 0)
	enterprise := s.h.seedPlan(types.PlanTypeEnterprise, 99)

	prio, err := s.svc.GetPlanPriority(s.h.ctx, free.ID)
	s.Require().NoError(err)
	s.Equal(0, prio)

	prio, err = s.svc.GetPlanPriority(s.h.ctx, enterprise.ID)
	s.Require().NoError(err)
	s.Equal(3, prio)

	isFree, err := s.svc.IsPlanFree(s.h.ctx, free.ID)
	s.Require().NoError(err)
	s.True(isFree)

	isFree, err = s.svc.IsPlanFree(s.h.ctx, enterprise.ID)
	s.Require().NoError(err)
	s.False(isFree)
}
