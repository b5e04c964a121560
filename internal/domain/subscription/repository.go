package subscription

import "context"

// Repository defines the interface for subscription persistence
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	// Update applies the record only if its Version matches the stored
	// one, then increments it; otherwise it fails with a version
	// conflict.
	Update(ctx context.Context, sub *Subscription) error
	// GetCurrent returns the customer's one active/trialing/past-due
	// subscription, or a not-found error.
	GetCurrent(ctx context.Context, customerID string) (*Subscription, error)
	// ListByCustomer returns every subscription of the customer,
	// newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*Subscription, error)
}
