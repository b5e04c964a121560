package subscription

import (
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// Subscription binds a customer to a plan for a billing period.
// Superseded records are never deleted; they remain for history queries.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `json:"id"`

	// CustomerID is the identifier of the subscribing customer
	CustomerID string `json:"customer_id"`

	// PlanID is the identifier of the subscribed plan
	PlanID string `json:"plan_id"`

	// SubscriptionStatus is the lifecycle state of the subscription
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status"`

	// BillingCycle governs the period length and price
	BillingCycle types.BillingCycle `json:"billing_cycle"`

	// StartDate is the start of the current billing period
	StartDate time.Time `json:"start_date"`

	// EndDate is the end of the current billing period
	EndDate time.Time `json:"end_date"`

	// CancelledAt is set when the subscription is cancelled
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// TrialEnd is the end of the trial window, when the plan grants one
	TrialEnd *time.Time `json:"trial_end,omitempty"`

	// AutoRenew controls whether the subscription renews at EndDate.
	// Cancelling at period end clears it while leaving the subscription
	// active until EndDate.
	AutoRenew bool `json:"auto_renew"`

	types.BaseModel
}

// IsCurrent reports whether this record is the customer's one current
// subscription.
func (s *Subscription) IsCurrent() bool {
	return s.SubscriptionStatus.IsCurrent()
}

// InTrial reports whether the subscription is inside its trial window at t.
func (s *Subscription) InTrial(t time.Time) bool {
	return s.SubscriptionStatus == types.SubscriptionStatusTrialing &&
		s.TrialEnd != nil && t.Before(*s.TrialEnd)
}
