package types

import (
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/samber/lo"
)

// PaymentStatus represents the status of a payment transaction.
// pending -> processing -> {succeeded, failed} are the transitions owned by
// the payment processor; refunds are a separate flow acting on succeeded
// transactions.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusProcessing        PaymentStatus = "processing"
	PaymentStatusSucceeded         PaymentStatus = "succeeded"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the transaction record is immutable.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSucceeded ||
		s == PaymentStatusFailed ||
		s == PaymentStatusRefunded ||
		s == PaymentStatusPartiallyRefunded
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusProcessing,
		PaymentStatusSucceeded,
		PaymentStatusFailed,
		PaymentStatusRefunded,
		PaymentStatusPartiallyRefunded,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid payment status").
			WithHint("Invalid payment status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethodType represents the type of payment method
type PaymentMethodType string

const (
	PaymentMethodTypeCreditCard   PaymentMethodType = "credit_card"
	PaymentMethodTypePaypal       PaymentMethodType = "paypal"
	PaymentMethodTypeBankTransfer PaymentMethodType = "bank_transfer"
	PaymentMethodTypeCrypto       PaymentMethodType = "crypto"
)

func (t PaymentMethodType) String() string {
	return string(t)
}

func (t PaymentMethodType) Validate() error {
	allowed := []PaymentMethodType{
		PaymentMethodTypeCreditCard,
		PaymentMethodTypePaypal,
		PaymentMethodTypeBankTransfer,
		PaymentMethodTypeCrypto,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid payment method type").
			WithHint("Invalid payment method type").
			WithReportableDetails(map[string]any{
				"payment_method_type": t,
				"allowed_types":       allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
