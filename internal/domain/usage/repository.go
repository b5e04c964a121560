package usage

import "context"

// Repository defines the interface for resource usage persistence
type Repository interface {
	// Add applies a signed delta to the customer's counter for the
	// resource, creating it at zero on first use and clamping the
	// result at zero. It returns the resulting counter value.
	Add(ctx context.Context, customerID, resource string, delta int64) (int64, error)
	// Get returns the counter for one resource, zero when absent.
	Get(ctx context.Context, customerID, resource string) (int64, error)
	// GetSnapshot returns all counters for a customer.
	GetSnapshot(ctx context.Context, customerID string) (Snapshot, error)
}
