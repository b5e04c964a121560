package plan

import "context"

// Repository defines the interface for plan catalog persistence
type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	// List returns available plans in stable priority order.
	List(ctx context.Context) ([]*Plan, error)
	// ListAll returns every plan including unavailable ones.
	ListAll(ctx context.Context) ([]*Plan, error)
}
