package invoice

import "context"

// Repository defines the interface for invoice persistence
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	// Update applies the record only if its Version matches the stored
	// one, then increments it.
	Update(ctx context.Context, inv *Invoice) error
	// ListByCustomer returns the customer's invoices, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*Invoice, error)
	// ListBySubscription returns the invoices issued for a subscription.
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*Invoice, error)
	// CountByCustomer returns how many invoices the customer has ever
	// been issued. The setup fee applies only when this is zero.
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	// NextSequence returns the next value of the global invoice number
	// sequence. Values are unique and strictly increasing.
	NextSequence(ctx context.Context) (int64, error)
}
