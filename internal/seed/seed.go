// Package seed installs the default plan catalog into an empty store.
package seed

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/logger"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

func limit(s string) *string { return &s }

// Plans returns the default catalog. Every call builds fresh instances
// with new IDs so seeding two stores never aliases records.
func Plans(ctx context.Context) []*plan.Plan {
	setupFee := decimal.NewFromInt(25)

	return []*plan.Plan{
		{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
			Type:         types.PlanTypeFree,
			Name:         "Free",
			Description:  "For individuals trying things out",
			MonthlyPrice: decimal.Zero,
			AnnualPrice:  decimal.Zero,
			Features: []plan.Feature{
				{Name: types.ResourceProjects, Included: true, Limit: limit("3")},
				{Name: types.ResourceStorage, Included: true, Limit: limit("1")},
				{Name: types.ResourceTeamMembers, Included: true, Limit: limit("1")},
				{Name: types.ResourceAPIRequests, Included: false},
			},
			IsAvailable: true,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
		{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
			Type:         types.PlanTypeBasic,
			Name:         "Basic",
			Description:  "For small teams getting started",
			MonthlyPrice: decimal.NewFromInt(9),
			AnnualPrice:  decimal.NewFromInt(90),
			TrialDays:    14,
			Features: []plan.Feature{
				{Name: types.ResourceProjects, Included: true, Limit: limit("10")},
				{Name: types.ResourceStorage, Included: true, Limit: limit("10")},
				{Name: types.ResourceTeamMembers, Included: true, Limit: limit("5")},
				{Name: types.ResourceAPIRequests, Included: true, Limit: limit("10000")},
			},
			IsAvailable: true,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
		{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
			Type:         types.PlanTypePremium,
			Name:         "Premium",
			Description:  "For growing teams that need room",
			MonthlyPrice: decimal.NewFromInt(29),
			AnnualPrice:  decimal.NewFromInt(290),
			TrialDays:    14,
			IsPopular:    true,
			Features: []plan.Feature{
				{Name: types.ResourceProjects, Included: true, Limit: limit("50")},
				{Name: types.ResourceStorage, Included: true, Limit: limit("100")},
				{Name: types.ResourceTeamMembers, Included: true, Limit: limit("20")},
				{Name: types.ResourceAPIRequests, Included: true, Limit: limit("100000")},
			},
			IsAvailable: true,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
		{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
			Type:         types.PlanTypeEnterprise,
			Name:         "Enterprise",
			Description:  "For organizations with no ceiling",
			MonthlyPrice: decimal.NewFromInt(99),
			AnnualPrice:  decimal.NewFromInt(990),
			SetupFee:     &setupFee,
			Features: []plan.Feature{
				{Name: types.ResourceProjects, Included: true, Limit: limit(types.LimitUnlimited)},
				{Name: types.ResourceStorage, Included: true, Limit: limit("1000")},
				{Name: types.ResourceTeamMembers, Included: true, Limit: limit(types.LimitUnlimited)},
				{Name: types.ResourceAPIRequests, Included: true, Limit: limit(types.LimitUnlimited)},
			},
			IsAvailable: true,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
	}
}

// Apply installs the default catalog, skipping plans that already exist.
func Apply(ctx context.Context, repo plan.Repository, log *logger.Logger) error {
	for _, p := range Plans(ctx) {
		if err := repo.Create(ctx, p); err != nil {
			if ierr.IsAlreadyExists(err) {
				continue
			}
			return err
		}
		log.Infow("seeded plan", "plan_id", p.ID, "plan_type", p.Type, "plan_name", p.Name)
	}
	return nil
}
