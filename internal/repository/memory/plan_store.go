package memory

import (
	"context"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/plan"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// PlanStore implements plan.Repository. Plans are immutable once
// registered, so there is no update path.
type PlanStore struct {
	*store[*plan.Plan]
}

func NewPlanStore() *PlanStore {
	return &PlanStore{store: newStore[*plan.Plan]()}
}

func (s *PlanStore) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return ierr.NewError("plan cannot be nil").
			WithHint("Plan cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if p.ID == "" {
		return ierr.NewError("plan ID cannot be empty").
			WithHint("Plan ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	stored := *p
	return s.create(p.ID, &stored)
}

func (s *PlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := s.get(id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Plan %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *PlanStore) List(ctx context.Context) ([]*plan.Plan, error) {
	return s.listCopied(ctx, func(_ context.Context, p *plan.Plan) bool {
		return p.IsAvailable
	}), nil
}

func (s *PlanStore) ListAll(ctx context.Context) ([]*plan.Plan, error) {
	return s.listCopied(ctx, nil), nil
}

func (s *PlanStore) listCopied(ctx context.Context, filterFn FilterFunc[*plan.Plan]) []*plan.Plan {
	plans := s.list(ctx, filterFn, planSortFn)
	result := make([]*plan.Plan, len(plans))
	for i, p := range plans {
		copied := *p
		result[i] = &copied
	}
	return result
}

// planSortFn keeps catalog order stable: ascending tier priority, then id.
func planSortFn(i, j *plan.Plan) bool {
	if i.Type.Priority() != j.Type.Priority() {
		return i.Type.Priority() < j.Type.Priority()
	}
	return i.ID < j.ID
}

// Clear resets all stored data
func (s *PlanStore) Clear() {
	s.clear()
}
