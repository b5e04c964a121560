package dto

import (
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/subscription"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/validator"
)

type CreateSubscriptionRequest struct {
	CustomerID   string             `json:"customer_id" validate:"required"`
	PlanID       string             `json:"plan_id" validate:"required"`
	BillingCycle types.BillingCycle `json:"billing_cycle" validate:"required"`
	AutoRenew    bool               `json:"auto_renew"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.BillingCycle.Validate()
}

type CancelSubscriptionRequest struct {
	// Immediate terminates the subscription now; otherwise it stays
	// active until the end of the paid period and does not renew.
	Immediate bool `json:"immediate"`
}

type ChangeSubscriptionRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	PlanID     string `json:"plan_id" validate:"required"`
	// BillingCycle, when set, switches the cycle along with the plan.
	// Empty keeps the current cycle.
	BillingCycle types.BillingCycle `json:"billing_cycle,omitempty"`
}

func (r *ChangeSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillingCycle != "" {
		return r.BillingCycle.Validate()
	}
	return nil
}

type SubscriptionResponse struct {
	*subscription.Subscription
	Plan *PlanResponse `json:"plan,omitempty"`
}

type ListSubscriptionsResponse struct {
	Items []*SubscriptionResponse `json:"items"`
	Total int                     `json:"total"`
}

// PlanChangeResponse reports the outcome of a plan change: the superseding
// subscription, how the change was classified, and the invoice issued for
// the new plan. On a downgrade, OverLimitResources lists counters that now
// exceed the new plan's bounds; usage itself is left untouched.
type PlanChangeResponse struct {
	Subscription       *SubscriptionResponse `json:"subscription"`
	ChangeType         types.PlanChangeType  `json:"change_type"`
	Invoice            *InvoiceResponse      `json:"invoice,omitempty"`
	OverLimitResources []*ResourceOveruse    `json:"over_limit_resources,omitempty"`
}

// SubscriptionFeatureResponse is one plan feature annotated with the
// customer's current consumption against it.
type SubscriptionFeatureResponse struct {
	Name     string  `json:"name"`
	Included bool    `json:"included"`
	Limit    *string `json:"limit,omitempty"`
	// CurrentUsage is the metered counter; zero for unmetered features.
	CurrentUsage int64 `json:"current_usage"`
	// UsagePercentage is consumption over the bound, nil for unlimited
	// or unmetered features.
	UsagePercentage *float64 `json:"usage_percentage,omitempty"`
}

type SubscriptionFeaturesResponse struct {
	SubscriptionID string                         `json:"subscription_id"`
	PlanID         string                         `json:"plan_id"`
	Features       []*SubscriptionFeatureResponse `json:"features"`
}
