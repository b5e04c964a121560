package gateway

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/config"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

func chargeRequest() *ChargeRequest {
	return &ChargeRequest{
		CustomerID:      "cust_1",
		PaymentMethodID: "pm_1",
		MethodType:      types.PaymentMethodTypeCreditCard,
		Amount:          decimal.NewFromInt(10),
	}
}

func TestSimulatedGatewayAlwaysApproves(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Payment.GatewaySuccessRate = 1.0
	cfg.Payment.GatewayLatency = 0
	gw := NewSimulatedGateway(cfg).WithRand(rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		result, err := gw.Charge(context.Background(), chargeRequest())
		require.NoError(t, err)
		assert.True(t, result.Succeeded)
		assert.NotEmpty(t, result.TransactionID)
	}
}

func TestSimulatedGatewayAlwaysDeclines(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Payment.GatewaySuccessRate = 0
	cfg.Payment.GatewayLatency = 0
	gw := NewSimulatedGateway(cfg).WithRand(rand.New(rand.NewSource(1)))

	result, err := gw.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, declineReasonRandom, result.DeclineReason)
	assert.Empty(t, result.TransactionID)
}

func TestSimulatedGatewayTimeoutDeclines(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Payment.GatewaySuccessRate = 1.0
	cfg.Payment.GatewayLatency = 50 * time.Millisecond
	cfg.Payment.GatewayTimeout = 5 * time.Millisecond
	gw := NewSimulatedGateway(cfg)

	result, err := gw.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, declineReasonTimeout, result.DeclineReason)
}

func TestStaticGatewayScriptsOutcomes(t *testing.T) {
	gw := NewStaticGateway(false, true)

	first, err := gw.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.False(t, first.Succeeded)

	second, err := gw.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.True(t, second.Succeeded)

	// Exhausted scripts approve.
	third, err := gw.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.True(t, third.Succeeded)

	assert.Len(t, gw.Calls(), 3)
}
