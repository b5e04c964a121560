package plan

import (
	"github.com/shopspring/decimal"

	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// Plan is a purchasable tier with pricing and feature definitions.
// Plans are immutable once published; catalog changes register new plans.
type Plan struct {
	ID          string         `json:"id"`
	Type        types.PlanType `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`

	// MonthlyPrice is the price for one monthly billing cycle.
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	// AnnualPrice is the price for one annual billing cycle.
	AnnualPrice decimal.Decimal `json:"annual_price"`
	// QuarterlyPrice, when set, overrides the derived quarterly price of
	// three monthly cycles.
	QuarterlyPrice *decimal.Decimal `json:"quarterly_price,omitempty"`
	// SetupFee is charged once, on the customer's first invoice only.
	SetupFee *decimal.Decimal `json:"setup_fee,omitempty"`

	// TrialDays, when positive, starts new subscriptions in a trial
	// window of that many days.
	TrialDays int `json:"trial_days"`

	Features    []Feature `json:"features"`
	IsPopular   bool      `json:"is_popular"`
	IsAvailable bool      `json:"is_available"`

	types.BaseModel
}

// Feature is a single capability granted (or withheld) by a plan, with an
// optional limit string for metered resources ("10", "unlimited").
type Feature struct {
	Name     string  `json:"name"`
	Included bool    `json:"included"`
	Limit    *string `json:"limit,omitempty"`
}

// PriceFor returns the plan's price for one cycle of the given length.
// Quarterly pricing derives from three monthly cycles unless the plan
// defines its own quarterly price.
func (p *Plan) PriceFor(cycle types.BillingCycle) (decimal.Decimal, error) {
	switch cycle {
	case types.BillingCycleMonthly:
		return p.MonthlyPrice, nil
	case types.BillingCycleQuarterly:
		if p.QuarterlyPrice != nil {
			return *p.QuarterlyPrice, nil
		}
		return p.MonthlyPrice.Mul(decimal.NewFromInt(3)), nil
	case types.BillingCycleAnnual:
		return p.AnnualPrice, nil
	default:
		return decimal.Zero, ierr.NewError("invalid billing cycle").
			WithHintf("Plan %s has no price for cycle %q", p.ID, cycle).
			Mark(ierr.ErrValidation)
	}
}

// FindFeature returns the plan feature with the given name, or nil.
func (p *Plan) FindFeature(name string) *Feature {
	for i := range p.Features {
		if p.Features[i].Name == name {
			return &p.Features[i]
		}
	}
	return nil
}

// IsFree reports whether the plan carries no recurring charge.
func (p *Plan) IsFree() bool {
	return p.Type == types.PlanTypeFree || p.MonthlyPrice.IsZero()
}

// Validate checks the structural invariants of a plan before it enters the
// catalog.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return ierr.NewError("plan name is required").
			WithHint("Plan name must not be empty").
			Mark(ierr.ErrValidation)
	}
	if err := p.Type.Validate(); err != nil {
		return err
	}
	if p.MonthlyPrice.IsNegative() || p.AnnualPrice.IsNegative() {
		return ierr.NewError("negative plan price").
			WithHint("Plan prices must not be negative").
			WithReportableDetails(map[string]any{
				"plan_id":       p.ID,
				"monthly_price": p.MonthlyPrice,
				"annual_price":  p.AnnualPrice,
			}).
			Mark(ierr.ErrValidation)
	}
	if p.SetupFee != nil && p.SetupFee.IsNegative() {
		return ierr.NewError("negative setup fee").
			WithHint("Setup fee must not be negative").
			Mark(ierr.ErrValidation)
	}
	if p.TrialDays < 0 {
		return ierr.NewError("negative trial days").
			WithHint("Trial days must not be negative").
			Mark(ierr.ErrValidation)
	}
	for _, f := range p.Features {
		if f.Limit == nil {
			continue
		}
		if _, err := types.ParseResourceLimit(*f.Limit); err != nil {
			return err
		}
	}
	return nil
}
