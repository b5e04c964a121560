package types

import (
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/samber/lo"
)

// PlanType identifies the tier of a plan. Tiers are ordered: a change to a
// plan with a higher priority is an upgrade, to a lower one a downgrade.
type PlanType string

const (
	PlanTypeFree       PlanType = "free"
	PlanTypeBasic      PlanType = "basic"
	PlanTypePremium    PlanType = "premium"
	PlanTypeEnterprise PlanType = "enterprise"
)

var planTypePriority = map[PlanType]int{
	PlanTypeFree:       0,
	PlanTypeBasic:      1,
	PlanTypePremium:    2,
	PlanTypeEnterprise: 3,
}

func (t PlanType) String() string {
	return string(t)
}

// Priority returns the ordering rank of the plan type, free=0 through
// enterprise=3.
func (t PlanType) Priority() int {
	return planTypePriority[t]
}

func (t PlanType) Validate() error {
	allowed := []PlanType{
		PlanTypeFree,
		PlanTypeBasic,
		PlanTypePremium,
		PlanTypeEnterprise,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid plan type").
			WithHint("Invalid plan type").
			WithReportableDetails(map[string]any{
				"plan_type":     t,
				"allowed_types": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlanChangeType classifies a plan change by comparing tier priorities.
type PlanChangeType string

const (
	PlanChangeTypeUpgrade   PlanChangeType = "upgrade"
	PlanChangeTypeDowngrade PlanChangeType = "downgrade"
	PlanChangeTypeLateral   PlanChangeType = "lateral"
)

func (t PlanChangeType) String() string {
	return string(t)
}

// ClassifyPlanChange compares two plan types and returns the change type.
func ClassifyPlanChange(from, to PlanType) PlanChangeType {
	switch {
	case to.Priority() > from.Priority():
		return PlanChangeTypeUpgrade
	case to.Priority() < from.Priority():
		return PlanChangeTypeDowngrade
	default:
		return PlanChangeTypeLateral
	}
}
