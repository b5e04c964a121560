package dto

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/validator"
)

type CreatePlanRequest struct {
	Type           types.PlanType   `json:"type" validate:"required"`
	Name           string           `json:"name" validate:"required"`
	Description    string           `json:"description"`
	MonthlyPrice   decimal.Decimal  `json:"monthly_price"`
	AnnualPrice    decimal.Decimal  `json:"annual_price"`
	QuarterlyPrice *decimal.Decimal `json:"quarterly_price,omitempty"`
	SetupFee       *decimal.Decimal `json:"setup_fee,omitempty"`
	TrialDays      int              `json:"trial_days" validate:"min=0"`
	Features       []PlanFeature    `json:"features"`
	IsPopular      bool             `json:"is_popular"`
	IsAvailable    bool             `json:"is_available"`
}

type PlanFeature struct {
	Name     string  `json:"name" validate:"required"`
	Included bool    `json:"included"`
	Limit    *string `json:"limit,omitempty"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.MonthlyPrice.IsNegative() || r.AnnualPrice.IsNegative() {
		return ierr.NewError("negative plan price").
			WithHint("Plan prices must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPlan converts the request into a catalog plan with a fresh ID and
// default base model fields.
func (r *CreatePlanRequest) ToPlan(ctx context.Context) *plan.Plan {
	features := make([]plan.Feature, len(r.Features))
	for i, f := range r.Features {
		features[i] = plan.Feature{
			Name:     f.Name,
			Included: f.Included,
			Limit:    f.Limit,
		}
	}
	return &plan.Plan{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Type:           r.Type,
		Name:           r.Name,
		Description:    r.Description,
		MonthlyPrice:   r.MonthlyPrice,
		AnnualPrice:    r.AnnualPrice,
		QuarterlyPrice: r.QuarterlyPrice,
		SetupFee:       r.SetupFee,
		TrialDays:      r.TrialDays,
		Features:       features,
		IsPopular:      r.IsPopular,
		IsAvailable:    r.IsAvailable,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

type PlanResponse struct {
	*plan.Plan
}

type ListPlansResponse struct {
	Items []*PlanResponse `json:"items"`
	Total int             `json:"total"`
}
