package gateway

import (
	"context"
	"sync"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// StaticGateway returns a scripted sequence of outcomes and records
// every request it receives. It exists for deterministic tests.
type StaticGateway struct {
	mu       sync.Mutex
	outcomes []bool
	calls    []*ChargeRequest
}

// NewStaticGateway scripts the given approve/decline sequence. Once the
// sequence is exhausted every further charge is approved.
func NewStaticGateway(outcomes ...bool) *StaticGateway {
	return &StaticGateway{outcomes: outcomes}
}

func (g *StaticGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, req)

	succeeded := true
	if len(g.outcomes) > 0 {
		succeeded = g.outcomes[0]
		g.outcomes = g.outcomes[1:]
	}

	if !succeeded {
		return &ChargeResult{
			Succeeded:     false,
			DeclineReason: declineReasonRandom,
		}, nil
	}
	return &ChargeResult{
		Succeeded:     true,
		TransactionID: types.GenerateUUIDWithPrefix("txn"),
	}, nil
}

// Calls returns the requests received so far.
func (g *StaticGateway) Calls() []*ChargeRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*ChargeRequest(nil), g.calls...)
}
