package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/invoice"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// InvoiceStore implements invoice.Repository
type InvoiceStore struct {
	*store[*invoice.Invoice]
	sequence atomic.Int64
}

func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{store: newStore[*invoice.Invoice]()}
}

func (s *InvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			WithHint("Invoice cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if inv.ID == "" {
		return ierr.NewError("invoice ID cannot be empty").
			WithHint("Invoice ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	stored := *inv
	return s.create(inv.ID, &stored)
}

func (s *InvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.get(id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *inv
	return &copied, nil
}

func (s *InvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	existing, err := s.get(inv.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Invoice %s not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}

	if existing.Version != inv.Version {
		return ierr.NewError("invoice version conflict").
			WithHintf("Invoice %s was modified concurrently", inv.ID).
			WithReportableDetails(map[string]any{
				"expected_version": inv.Version,
				"stored_version":   existing.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	stored := *inv
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	if err := s.update(inv.ID, &stored); err != nil {
		return err
	}

	inv.Version = stored.Version
	inv.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *InvoiceStore) ListByCustomer(ctx context.Context, customerID string) ([]*invoice.Invoice, error) {
	return s.listCopied(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.CustomerID == customerID
	}), nil
}

func (s *InvoiceStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]*invoice.Invoice, error) {
	return s.listCopied(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.SubscriptionID != nil && *inv.SubscriptionID == subscriptionID
	}), nil
}

func (s *InvoiceStore) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	invoices := s.list(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.CustomerID == customerID
	}, nil)
	return len(invoices), nil
}

func (s *InvoiceStore) NextSequence(ctx context.Context) (int64, error) {
	return s.sequence.Add(1), nil
}

func (s *InvoiceStore) listCopied(ctx context.Context, filterFn FilterFunc[*invoice.Invoice]) []*invoice.Invoice {
	invoices := s.list(ctx, filterFn, invoiceSortFn)
	result := make([]*invoice.Invoice, len(invoices))
	for i, inv := range invoices {
		copied := *inv
		result[i] = &copied
	}
	return result
}

// invoiceSortFn orders newest first.
func invoiceSortFn(i, j *invoice.Invoice) bool {
	if !i.Date.Equal(j.Date) {
		return i.Date.After(j.Date)
	}
	return i.InvoiceNumber > j.InvoiceNumber
}

// Clear resets all stored data including the number sequence.
func (s *InvoiceStore) Clear() {
	s.clear()
	s.sequence.Store(0)
}
