package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// Invoice represents the invoice domain model. Totals always satisfy
// total = subtotal + tax, with every amount non-negative.
type Invoice struct {
	ID             string              `json:"id"`
	CustomerID     string              `json:"customer_id"`
	SubscriptionID *string             `json:"subscription_id,omitempty"`
	InvoiceNumber  string              `json:"invoice_number"`
	InvoiceStatus  types.InvoiceStatus `json:"invoice_status"`
	Date           time.Time           `json:"date"`
	DueDate        time.Time           `json:"due_date"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Tax            decimal.Decimal     `json:"tax"`
	Total          decimal.Decimal     `json:"total"`
	LineItems      []*LineItem         `json:"line_items,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	PaidAt         *time.Time          `json:"paid_at,omitempty"`
	VoidedAt       *time.Time          `json:"voided_at,omitempty"`
	// PDFURL is a reference placeholder; rendering is delegated to an
	// external document generator.
	PDFURL *string `json:"pdf_url,omitempty"`

	types.BaseModel
}

// LineItem is a single charge on an invoice.
type LineItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	PlanID      *string         `json:"plan_id,omitempty"`
}

// IsPastDue reports whether the invoice's grace period has elapsed at t.
func (i *Invoice) IsPastDue(t time.Time) bool {
	return t.After(i.DueDate)
}

// Validate checks the invoice amount invariants.
func (i *Invoice) Validate() error {
	if i.Subtotal.IsNegative() {
		return ierr.NewError("negative subtotal").
			WithHint("Invoice subtotal must be non negative").
			Mark(ierr.ErrValidation)
	}
	if i.Tax.IsNegative() {
		return ierr.NewError("negative tax").
			WithHint("Invoice tax must be non negative").
			Mark(ierr.ErrValidation)
	}
	if !i.Total.Equal(i.Subtotal.Add(i.Tax)) {
		return ierr.NewError("invoice total mismatch").
			WithHint("Invoice total must equal subtotal plus tax").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"subtotal":   i.Subtotal,
				"tax":        i.Tax,
				"total":      i.Total,
			}).
			Mark(ierr.ErrValidation)
	}
	for _, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a line item's amount invariants.
func (li *LineItem) Validate() error {
	if li.Quantity.IsNegative() || li.UnitPrice.IsNegative() || li.Amount.IsNegative() {
		return ierr.NewError("negative line item amount").
			WithHint("Line item amounts must be non negative").
			Mark(ierr.ErrValidation)
	}
	if !li.Amount.Equal(li.Quantity.Mul(li.UnitPrice)) {
		return ierr.NewError("line item amount mismatch").
			WithHint("Line item amount must equal quantity times unit price").
			Mark(ierr.ErrValidation)
	}
	return nil
}
