package usage

import "github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"

// ResourceUsage is a customer's counter for one metered resource.
// Counters never go negative; decrements clamp at zero.
type ResourceUsage struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Resource   string `json:"resource"`
	Used       int64  `json:"used"`

	types.BaseModel
}

// Snapshot is a point-in-time view of all counters for a customer.
// Resources never tracked are simply absent and read as zero.
type Snapshot map[string]int64

// Get returns the counter for a resource, defaulting to zero.
func (s Snapshot) Get(resource string) int64 {
	return s[resource]
}
