package memory

import (
	"context"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/payment"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// PaymentStore implements payment.Repository with separate stores for
// transactions and saved payment methods.
type PaymentStore struct {
	payments *store[*payment.Payment]
	methods  *store[*payment.Method]
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		payments: newStore[*payment.Payment](),
		methods:  newStore[*payment.Method](),
	}
}

func (s *PaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if p.ID == "" {
		return ierr.NewError("payment ID cannot be empty").
			WithHint("Payment ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	stored := *p
	return s.payments.create(p.ID, &stored)
}

func (s *PaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.payments.get(id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Payment %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *PaymentStore) Update(ctx context.Context, p *payment.Payment) error {
	existing, err := s.payments.get(p.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Payment %s not found", p.ID).
			Mark(ierr.ErrNotFound)
	}

	if existing.Version != p.Version {
		return ierr.NewError("payment version conflict").
			WithHintf("Payment %s was modified concurrently", p.ID).
			WithReportableDetails(map[string]any{
				"expected_version": p.Version,
				"stored_version":   existing.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	stored := *p
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	if err := s.payments.update(p.ID, &stored); err != nil {
		return err
	}

	p.Version = stored.Version
	p.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *PaymentStore) ListByCustomer(ctx context.Context, customerID string) ([]*payment.Payment, error) {
	payments := s.payments.list(ctx, func(_ context.Context, p *payment.Payment) bool {
		return p.CustomerID == customerID
	}, paymentSortDesc)
	return copyPayments(payments), nil
}

func (s *PaymentStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*payment.Payment, error) {
	payments := s.payments.list(ctx, func(_ context.Context, p *payment.Payment) bool {
		return p.InvoiceID != nil && *p.InvoiceID == invoiceID
	}, paymentSortAsc)
	return copyPayments(payments), nil
}

func (s *PaymentStore) CreateMethod(ctx context.Context, m *payment.Method) error {
	if m == nil {
		return ierr.NewError("payment method cannot be nil").
			WithHint("Payment method cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if m.ID == "" {
		return ierr.NewError("payment method ID cannot be empty").
			WithHint("Payment method ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	stored := *m
	return s.methods.create(m.ID, &stored)
}

func (s *PaymentStore) GetMethod(ctx context.Context, id string) (*payment.Method, error) {
	m, err := s.methods.get(id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Payment method %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *m
	return &copied, nil
}

func (s *PaymentStore) UpdateMethod(ctx context.Context, m *payment.Method) error {
	existing, err := s.methods.get(m.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Payment method %s not found", m.ID).
			Mark(ierr.ErrNotFound)
	}

	if existing.Version != m.Version {
		return ierr.NewError("payment method version conflict").
			WithHintf("Payment method %s was modified concurrently", m.ID).
			Mark(ierr.ErrVersionConflict)
	}

	stored := *m
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	if err := s.methods.update(m.ID, &stored); err != nil {
		return err
	}

	m.Version = stored.Version
	m.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *PaymentStore) DeleteMethod(ctx context.Context, id string) error {
	if err := s.methods.delete(id); err != nil {
		return ierr.WithError(err).
			WithHintf("Payment method %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *PaymentStore) ListMethods(ctx context.Context, customerID string) ([]*payment.Method, error) {
	methods := s.methods.list(ctx, func(_ context.Context, m *payment.Method) bool {
		return m.CustomerID == customerID
	}, methodSortFn)
	result := make([]*payment.Method, len(methods))
	for i, m := range methods {
		copied := *m
		result[i] = &copied
	}
	return result, nil
}

func (s *PaymentStore) GetDefaultMethod(ctx context.Context, customerID string) (*payment.Method, error) {
	methods := s.methods.list(ctx, func(_ context.Context, m *payment.Method) bool {
		return m.CustomerID == customerID && m.IsDefault
	}, nil)
	if len(methods) == 0 {
		return nil, ierr.NewError("no default payment method").
			WithHintf("Customer %s has no default payment method", customerID).
			Mark(ierr.ErrNotFound)
	}
	copied := *methods[0]
	return &copied, nil
}

// SetDefaultMethod marks the given method as default and clears the flag on
// every other method of the same customer in one critical section.
func (s *PaymentStore) SetDefaultMethod(ctx context.Context, customerID, methodID string) error {
	s.methods.mu.Lock()
	defer s.methods.mu.Unlock()

	target, ok := s.methods.items[methodID]
	if !ok || target.CustomerID != customerID {
		return ierr.NewError("payment method not found").
			WithHintf("Payment method %s not found", methodID).
			Mark(ierr.ErrNotFound)
	}

	now := time.Now().UTC()
	for id, m := range s.methods.items {
		if m.CustomerID != customerID {
			continue
		}
		isDefault := id == methodID
		if m.IsDefault == isDefault {
			continue
		}
		copied := *m
		copied.IsDefault = isDefault
		copied.Version++
		copied.UpdatedAt = now
		s.methods.items[id] = &copied
	}
	return nil
}

func copyPayments(payments []*payment.Payment) []*payment.Payment {
	result := make([]*payment.Payment, len(payments))
	for i, p := range payments {
		copied := *p
		result[i] = &copied
	}
	return result
}

func paymentSortDesc(i, j *payment.Payment) bool {
	if !i.Date.Equal(j.Date) {
		return i.Date.After(j.Date)
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func paymentSortAsc(i, j *payment.Payment) bool {
	if !i.Date.Equal(j.Date) {
		return i.Date.Before(j.Date)
	}
	return i.CreatedAt.Before(j.CreatedAt)
}

// methodSortFn surfaces the default method first, then newest.
func methodSortFn(i, j *payment.Method) bool {
	if i.IsDefault != j.IsDefault {
		return i.IsDefault
	}
	return i.CreatedAt.After(j.CreatedAt)
}

// Clear resets all stored transactions and methods.
func (s *PaymentStore) Clear() {
	s.payments.clear()
	s.methods.clear()
}
