package memory

import (
	"context"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/subscription"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// SubscriptionStore implements subscription.Repository
type SubscriptionStore struct {
	*store[*subscription.Subscription]
}

func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{store: newStore[*subscription.Subscription]()}
}

func (s *SubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").
			WithHint("Subscription cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if sub.ID == "" {
		return ierr.NewError("subscription ID cannot be empty").
			WithHint("Subscription ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	stored := *sub
	return s.create(sub.ID, &stored)
}

func (s *SubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.get(id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Subscription %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *sub
	return &copied, nil
}

func (s *SubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	existing, err := s.get(sub.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Subscription %s not found", sub.ID).
			Mark(ierr.ErrNotFound)
	}

	if existing.Version != sub.Version {
		return ierr.NewError("subscription version conflict").
			WithHintf("Subscription %s was modified concurrently", sub.ID).
			WithReportableDetails(map[string]any{
				"expected_version": sub.Version,
				"stored_version":   existing.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	stored := *sub
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	if err := s.update(sub.ID, &stored); err != nil {
		return err
	}

	sub.Version = stored.Version
	sub.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *SubscriptionStore) GetCurrent(ctx context.Context, customerID string) (*subscription.Subscription, error) {
	subs := s.list(ctx, func(_ context.Context, sub *subscription.Subscription) bool {
		return sub.CustomerID == customerID && sub.IsCurrent()
	}, subscriptionSortFn)

	if len(subs) == 0 {
		return nil, ierr.NewError("no current subscription").
			WithHintf("Customer %s has no current subscription", customerID).
			Mark(ierr.ErrNotFound)
	}

	copied := *subs[0]
	return &copied, nil
}

func (s *SubscriptionStore) ListByCustomer(ctx context.Context, customerID string) ([]*subscription.Subscription, error) {
	subs := s.list(ctx, func(_ context.Context, sub *subscription.Subscription) bool {
		return sub.CustomerID == customerID
	}, subscriptionSortFn)

	result := make([]*subscription.Subscription, len(subs))
	for i, sub := range subs {
		copied := *sub
		result[i] = &copied
	}
	return result, nil
}

// subscriptionSortFn orders newest first.
func subscriptionSortFn(i, j *subscription.Subscription) bool {
	if !i.StartDate.Equal(j.StartDate) {
		return i.StartDate.After(j.StartDate)
	}
	return i.CreatedAt.After(j.CreatedAt)
}

// Clear resets all stored data
func (s *SubscriptionStore) Clear() {
	s.clear()
}
