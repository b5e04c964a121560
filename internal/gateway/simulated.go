package gateway

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/config"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

const (
	declineReasonRandom  = "card_declined"
	declineReasonTimeout = "gateway_timeout"
)

// SimulatedGateway approves charges with a configured probability after
// a configured artificial latency. It stands in for a real provider
// integration and never talks to the network.
type SimulatedGateway struct {
	successRate float64
	latency     time.Duration
	timeout     time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

// NewSimulatedGateway builds a gateway from the payment configuration.
func NewSimulatedGateway(cfg *config.Configuration) *SimulatedGateway {
	return &SimulatedGateway{
		successRate: cfg.Payment.GatewaySuccessRate,
		latency:     cfg.Payment.GatewayLatency,
		timeout:     cfg.Payment.GatewayTimeout,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the randomness source. Tests use a fixed seed to
// make approval sequences reproducible.
func (g *SimulatedGateway) WithRand(r *rand.Rand) *SimulatedGateway {
	g.rand = r
	return g
}

func (g *SimulatedGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	if req == nil {
		return nil, ierr.NewError("charge request cannot be nil").
			WithHint("Charge request cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			// A call that outlives its deadline counts as a decline so
			// the caller records a failed transaction rather than an
			// indeterminate one.
			return &ChargeResult{
				Succeeded:     false,
				DeclineReason: declineReasonTimeout,
			}, nil
		}
	}

	g.mu.Lock()
	roll := g.rand.Float64()
	g.mu.Unlock()

	if roll >= g.successRate {
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
