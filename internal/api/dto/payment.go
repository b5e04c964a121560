package dto

import (
	"context"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/payment"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/validator"
)

type CreatePaymentMethodRequest struct {
	CustomerID string                  `json:"customer_id" validate:"required"`
	Type       types.PaymentMethodType `json:"type" validate:"required"`
	Details    types.Metadata          `json:"details,omitempty"`
	SetDefault bool                    `json:"set_default"`
}

func (r *CreatePaymentMethodRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

// ToMethod converts the request into a stored payment method.
func (r *CreatePaymentMethodRequest) ToMethod(ctx context.Context) *payment.Method {
	return &payment.Method{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_METHOD),
		DisplayID:  types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PAYMENT_METHOD),
		CustomerID: r.CustomerID,
		Type:       r.Type,
		Details:    r.Details,
		IsDefault:  r.SetDefault,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

type PaymentMethodResponse struct {
	*payment.Method
}

type ListPaymentMethodsResponse struct {
	Items []*PaymentMethodResponse `json:"items"`
	Total int                      `json:"total"`
}

type ProcessPaymentRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	InvoiceID  string `json:"invoice_id" validate:"required"`
	// PaymentMethodID, when empty, falls back to the customer's default
	// method.
	PaymentMethodID string         `json:"payment_method_id,omitempty"`
	Metadata        types.Metadata `json:"metadata,omitempty"`
}

func (r *ProcessPaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type PaymentResponse struct {
	*payment.Payment
}

type ListPaymentsResponse struct {
	Items []*PaymentResponse `json:"items"`
	Total int                `json:"total"`
}
