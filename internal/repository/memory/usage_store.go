package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/usage"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// UsageStore implements usage.Repository. Counters are keyed by
// customer and resource so deltas for different resources never
// contend on the same entry.
type UsageStore struct {
	*store[*usage.ResourceUsage]
}

func NewUsageStore() *UsageStore {
	return &UsageStore{store: newStore[*usage.ResourceUsage]()}
}

func usageKey(customerID, resource string) string {
	return fmt.Sprintf("%s:%s", customerID, resource)
}

func (s *UsageStore) Add(ctx context.Context, customerID, resource string, delta int64) (int64, error) {
	if customerID == "" || resource == "" {
		return 0, ierr.NewError("customer ID and resource are required").
			WithHint("Customer ID and resource cannot be empty").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := usageKey(customerID, resource)
	entry, ok := s.items[key]
	if !ok {
		entry = &usage.ResourceUsage{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RESOURCE_USAGE),
			CustomerID: customerID,
			Resource:   resource,
			Used:       0,
			BaseModel:  types.GetDefaultBaseModel(ctx),
		}
		s.items[key] = entry
	}

	entry.Used += delta
	if entry.Used < 0 {
		entry.Used = 0
	}
	entry.Version++
	entry.UpdatedAt = time.Now().UTC()
	return entry.Used, nil
}

func (s *UsageStore) Get(ctx context.Context, customerID, resource string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.items[usageKey(customerID, resource)]
	if !ok {
		return 0, nil
	}
	return entry.Used, nil
}

func (s *UsageStore) GetSnapshot(ctx context.Context, customerID string) (usage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(usage.Snapshot)
	for _, entry := range s.items {
		if entry.CustomerID == customerID {
			snapshot[entry.Resource] = entry.Used
		}
	}
	return snapshot, nil
}

// Clear resets all counters.
func (s *UsageStore) Clear() {
	s.clear()
}
