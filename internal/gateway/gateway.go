package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// ChargeRequest describes a single charge attempt against an external
// payment provider.
type ChargeRequest struct {
	CustomerID      string
	PaymentMethodID string
	MethodType      types.PaymentMethodType
	Amount          decimal.Decimal
	InvoiceID       string
	IdempotencyKey  string
}

// ChargeResult is the provider's answer. A decline is a normal result,
// not an error; Err returns from Charge are reserved for transport and
// infrastructure failures.
type ChargeResult struct {
	Succeeded     bool
	TransactionID string
	DeclineReason string
}

// PaymentGateway is the boundary to the external payment provider.
type PaymentGateway interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}
