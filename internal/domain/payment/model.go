package payment

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// Payment represents one transaction attempt at charging a payment method
// against an invoice. An invoice may accumulate several before one
// succeeds; at most one may be succeeded.
type Payment struct {
	// Unique identifier for this payment transaction
	ID string `json:"id"`
	// CustomerID is the owner of the transaction
	CustomerID string `json:"customer_id"`
	// InvoiceID is the invoice being paid, when the transaction targets one
	InvoiceID *string `json:"invoice_id,omitempty"`
	// PaymentMethodID identifies which method was charged
	PaymentMethodID string `json:"payment_method_id"`
	// PaymentMethodType records the method's type at charge time
	PaymentMethodType types.PaymentMethodType `json:"payment_method_type"`
	// PaymentStatus is the current state of this transaction
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	// Amount is the charged value
	Amount decimal.Decimal `json:"amount"`
	// Date is when the transaction was initiated
	Date time.Time `json:"date"`
	// GatewayTransactionID is the identifier reported by the gateway (optional)
	GatewayTransactionID *string `json:"gateway_transaction_id,omitempty"`
	// ErrorMessage explains why the transaction failed (optional)
	ErrorMessage *string `json:"error_message,omitempty"`
	// SucceededAt is when the charge completed (optional)
	SucceededAt *time.Time `json:"succeeded_at,omitempty"`
	// FailedAt is when the charge failed (optional)
	FailedAt *time.Time `json:"failed_at,omitempty"`
	// Metadata carries additional custom key-value pairs (optional)
	Metadata types.Metadata `json:"metadata,omitempty"`

	types.BaseModel
}

// Validate validates the payment transaction.
func (p *Payment) Validate() error {
	if p.CustomerID == "" {
		return ierr.NewError("invalid customer id").
			WithHint("Customer id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if p.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must not be negative").
			Mark(ierr.ErrValidation)
	}
	if p.PaymentMethodID == "" {
		return ierr.NewError("invalid payment method id").
			WithHint("Payment method id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if err := p.PaymentMethodType.Validate(); err != nil {
		return err
	}
	return nil
}

// Method represents a stored payment method. At most one method per
// customer is the default.
type Method struct {
	ID string `json:"id"`
	// DisplayID is a short human-readable label, e.g. `PM-XYZ12A8Q`,
	// shown to the customer in place of the opaque ID.
	DisplayID  string                  `json:"display_id"`
	CustomerID string                  `json:"customer_id"`
	Type       types.PaymentMethodType `json:"type"`
	// Details is opaque to the billing core; the gateway interprets it.
	Details   types.Metadata `json:"details,omitempty"`
	IsDefault bool           `json:"is_default"`

	types.BaseModel
}

// Validate validates the payment method.
func (m *Method) Validate() error {
	if m.CustomerID == "" {
		return ierr.NewError("invalid customer id").
			WithHint("Customer id must not be empty").
			Mark(ierr.ErrValidation)
	}
	return m.Type.Validate()
}
