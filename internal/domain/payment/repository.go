package payment

import "context"

// Repository defines the interface for payment persistence
type Repository interface {
	// Transaction operations
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// Update applies the record only if its Version matches the stored
	// one, then increments it.
	Update(ctx context.Context, payment *Payment) error
	// ListByCustomer returns the customer's transactions, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*Payment, error)
	// ListByInvoice returns every transaction attempted against an
	// invoice, oldest first.
	ListByInvoice(ctx context.Context, invoiceID string) ([]*Payment, error)

	// Payment method operations
	CreateMethod(ctx context.Context, method *Method) error
	GetMethod(ctx context.Context, id string) (*Method, error)
	UpdateMethod(ctx context.Context, method *Method) error
	DeleteMethod(ctx context.Context, id string) error
	ListMethods(ctx context.Context, customerID string) ([]*Method, error)
	// GetDefaultMethod returns the customer's default method, or a
	// not-found error when none is set.
	GetDefaultMethod(ctx context.Context, customerID string) (*Method, error)
	// SetDefaultMethod atomically marks the given method default and
	// clears the flag on every other method of the customer.
	SetDefaultMethod(ctx context.Context, customerID, methodID string) error
}
