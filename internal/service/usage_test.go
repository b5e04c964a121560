package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

type UsageServiceSuite struct {
	suite.Suite
	h    *testHarness
	svc  UsageService
	subs SubscriptionService
}

func TestUsageServiceSuite(t *testing.T) {
	suite.Run(t, new(UsageServiceSuite))
}

func (s *UsageServiceSuite) SetupTest() {
	s.h = newTestHarness(nil)
	s.svc = NewUsageService(s.h.params)
	s.subs = NewSubscriptionService(s.h.params)
}

func (s *UsageServiceSuite) subscribe(customerID string, features []plan.Feature) {
	p := s.h.seedPlan(types.PlanTypeBasic, 9, func(p *plan.Plan) {
		p.Features = features
	})
	_, err := s.subs.CreateSubscription(s.h.ctx, &dto.CreateSubscriptionRequest{
		CustomerID:   customerID,
		PlanID:       p.ID,
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Require().NoError(err)
}

func (s *UsageServiceSuite) track(customerID, resource string, delta int64) *dto.UsageResponse {
	resp, err := s.svc.TrackResourceUsage(s.h.ctx, &dto.TrackUsageRequest{
		CustomerID: customerID,
		Resource:   resource,
		Delta:      delta,
	})
	s.Require().NoError(err)
	return resp
}

func (s *UsageServiceSuite) TestTrackClampsAtZero() {
	s.Equal(int64(5), s.track("cust_1", types.ResourceProjects, 5).Used)
	s.Equal(int64(3), s.track("cust_1", types.ResourceProjects, -2).Used)
	s.Equal(int64(0), s.track("cust_1", types.ResourceProjects, -10).Used)
}

func (s *UsageServiceSuite) TestUsageSnapshot() {
	s.track("cust_1", types.ResourceProjects, 5)
	s.track("cust_1", types.ResourceStorage, 2)

	snap, err := s.svc.GetUsageSnapshot(s.h.ctx, "cust_1")
	s.Require().NoError(err)
	s.Equal(int64(5), snap.Usage[types.ResourceProjects])
	s.Equal(int64(2), snap.Usage[types.ResourceStorage])
	s.Equal(int64(0), snap.Usage[types.ResourceTeamMembers])
}

func (s *UsageServiceSuite) TestUsageReadsZeroForUntracked() {
	resp, err := s.svc.GetResourceUsage(s.h.ctx, "cust_1", types.ResourceStorage)
	s.Require().NoError(err)
	s.Equal(int64(0), resp.Used)
}

func (s *UsageServiceSuite) TestLimitFromPlanFeature() {
	s.subscribe("cust_1", []plan.Feature{
		{Name: types.ResourceProjects, Included: true, Limit: limitStr("10")},
	})

	limit, err := s.svc.GetResourceLimit(s.h.ctx, "cust_1", types.ResourceProjects)
	s.Require().NoError(err)
	s.False(limit.Unlimited)
	s.Equal(int64(10), limit.Bound)
}

func (s *UsageServiceSuite) TestLimitDeniesByDefault() {
	s.subscribe("cust_1", []plan.Feature{
		{Name: types.ResourceProjects, Included: true, Limit: limitStr("10")},
		{Name: types.ResourceAPIRequests, Included: false},
	})

	// Feature excluded by the plan.
	limit, err := s.svc.GetResourceLimit(s.h.ctx, "cust_1", types.ResourceAPIRequests)
	s.Require().NoError(err)
	s.False(limit.Unlimited)
	s.Equal(int64(0), limit.Bound)

	// Feature the plan never mentions.
	limit, err = s.svc.GetResourceLimit(s.h.ctx, "cust_1", "customDomains")
	s.Require().NoError(err)
	s.Equal(int64(0), limit.Bound)
}

func (s *UsageServiceSuite) TestLimitWithoutSubscription() {
	limit, err := s.svc.GetResourceLimit(s.h.ctx, "cust_1", types.ResourceProjects)
	s.Require().NoError(err)
	s.False(limit.Unlimited)
	s.Equal(int64(0), limit.Bound)
}

func (s *UsageServiceSuite) TestVerifyBoundedLimit() {
	s.subscribe("cust_1", []plan.Feature{
		{Name: types.ResourceProjects, Included: true, Limit: limitStr("10")},
	})
	s.track("cust_1", types.ResourceProjects, 9)

	ok, err := s.svc.VerifyResourceLimit(s.h.ctx, "cust_1", types.ResourceProjects, 1)
	s.Require().NoError(err)
	s.True(ok.Allowed)

	denied, err := s.svc.VerifyResourceLimit(s.h.ctx, "cust_1", types.ResourceProjects, 2)
	s.Require().NoError(err)
	s.False(denied.Allowed)
	s.Equal(int64(9), denied.Used)
}

func (s *UsageServiceSuite) TestVerifyUnlimitedAlwaysAllows() {
	s.subscribe("cust_1", []plan.Feature{
		{Name: types.ResourceAPIRequests, Included: true, Limit: limitStr(types.LimitUnlimited)},
	})
	s.track("cust_1", types.ResourceAPIRequests, 1_000_000)

	ok, err := s.svc.VerifyResourceLimit(s.h.ctx, "cust_1", types.ResourceAPIRequests, 1_000_000)
	s.Require().NoError(err)
	s.True(ok.Allowed)
}

func (s *UsageServiceSuite) TestVerifyRejectsNegativeRequest() {
	_, err := s.svc.VerifyResourceLimit(s.h.ctx, "cust_1", types.ResourceProjects, -1)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}
