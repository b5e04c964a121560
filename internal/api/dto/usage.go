package dto

import (
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/validator"
)

type TrackUsageRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Resource   string `json:"resource" validate:"required"`
	// Delta is the signed change to apply; decrements clamp at zero.
	Delta int64 `json:"delta"`
}

func (r *TrackUsageRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UsageResponse struct {
	CustomerID string `json:"customer_id"`
	Resource   string `json:"resource"`
	Used       int64  `json:"used"`
}

// UsageSnapshotResponse is every counter the customer has ever touched.
// Resources never tracked are absent and read as zero.
type UsageSnapshotResponse struct {
	CustomerID string           `json:"customer_id"`
	Usage      map[string]int64 `json:"usage"`
}

// ResourceLimitResponse is the effective limit a customer's current plan
// places on one resource.
type ResourceLimitResponse struct {
	Resource  string `json:"resource"`
	Unlimited bool   `json:"unlimited"`
	// Bound is meaningful only when Unlimited is false.
	Bound int64 `json:"bound"`
}

// VerifyLimitResponse answers whether a requested amount of a resource
// fits inside the customer's plan limit.
type VerifyLimitResponse struct {
	Resource  string `json:"resource"`
	Allowed   bool   `json:"allowed"`
	Used      int64  `json:"used"`
	Requested int64  `json:"requested"`
}

// ResourceOveruse flags one resource whose recorded usage exceeds the
// bound of the customer's new plan after a downgrade.
type ResourceOveruse struct {
	Resource string `json:"resource"`
	Used     int64  `json:"used"`
	Bound    int64  `json:"bound"`
	Excess   int64  `json:"excess"`
}

// DowngradeCleanupResponse is the advisory list of resources a customer
// must shed to fit inside a lower tier. Nothing is deleted automatically.
type DowngradeCleanupResponse struct {
	CustomerID string             `json:"customer_id"`
	Items      []*ResourceOveruse `json:"items"`
}
