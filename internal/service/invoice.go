package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/api/dto"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/invoice"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/subscription"
	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/types"
)

// InvoiceService issues and serves invoices.
type InvoiceService interface {
	// CreateInvoiceForSubscription issues the invoice for one billing
	// period of the subscription: the plan's cycle price, plus the
	// setup fee when this is the customer's first invoice ever, plus
	// flat tax on the subtotal.
	CreateInvoiceForSubscription(ctx context.Context, sub *subscription.Subscription) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, customerID, invoiceID string) (*dto.InvoiceResponse, error)
	GetCustomerInvoices(ctx context.Context, customerID string) (*dto.ListInvoicesResponse, error)
	// GetInvoicePDFURL returns the reference under which an external
	// renderer would publish the document.
	GetInvoicePDFURL(ctx context.Context, customerID, invoiceID string) (*dto.InvoicePDFResponse, error)
	// MarkOverdueInvoices flips open invoices past their due date to
	// overdue and returns how many changed. Caller-driven sweep.
	MarkOverdueInvoices(ctx context.Context, customerID string) (int, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoiceForSubscription(ctx context.Context, sub *subscription.Subscription) (*dto.InvoiceResponse, error) {
	if sub == nil {
		return nil, ierr.NewError("subscription cannot be nil").
			WithHint("Subscription is required").
			Mark(ierr.ErrValidation)
	}

	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}

	cyclePrice, err := p.PriceFor(sub.BillingCycle)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoiceID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)

	lineItems := []*invoice.LineItem{
		{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   invoiceID,
			Description: fmt.Sprintf("%s plan (%s)", p.Name, sub.BillingCycle),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   cyclePrice,
			Amount:      cyclePrice,
			PlanID:      &p.ID,
		},
	}
	subtotal := cyclePrice

	// The setup fee applies exactly once, on the customer's very first
	// invoice.
	if p.SetupFee != nil && p.SetupFee.IsPositive() {
		count, err := s.InvoiceRepo.CountByCustomer(ctx, sub.CustomerID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			fee := *p.SetupFee
			lineItems = append(lineItems, &invoice.LineItem{
				ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
				InvoiceID:   invoiceID,
				Description: "One-time setup fee",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   fee,
				Amount:      fee,
				PlanID:      &p.ID,
			})
			subtotal = subtotal.Add(fee)
		}
	}

	taxRate, err := s.Config.ParsedTaxRate()
	if err != nil {
		return nil, err
	}
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax)

	seq, err := s.InvoiceRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}

	subID := sub.ID
	inv := &invoice.Invoice{
		ID:             invoiceID,
		CustomerID:     sub.CustomerID,
		SubscriptionID: &subID,
		InvoiceNumber:  invoice.FormatInvoiceNumber(seq),
		InvoiceStatus:  types.InvoiceStatusOpen,
		Date:           now,
		DueDate:        now.AddDate(0, 0, s.Config.Billing.InvoiceDueDays),
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          total,
		LineItems:      lineItems,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"customer_id", inv.CustomerID,
		"subscription_id", sub.ID,
		"total", inv.Total)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, customerID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := s.getOwnedInvoice(ctx, customerID, invoiceID)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetCustomerInvoices(ctx context.Context, customerID string) (*dto.ListInvoicesResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	invoices, err := s.InvoiceRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = &dto.InvoiceResponse{Invoice: inv}
	}
	return &dto.ListInvoicesResponse{Items: items, Total: len(items)}, nil
}

func (s *invoiceService) GetInvoicePDFURL(ctx context.Context, customerID, invoiceID string) (*dto.InvoicePDFResponse, error) {
	inv, err := s.getOwnedInvoice(ctx, customerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.PDFURL != nil {
		return &dto.InvoicePDFResponse{InvoiceID: inv.ID, URL: *inv.PDFURL}, nil
	}

	// Rendering is delegated to an external document generator; until it
	// reports back, the invoice resolves to a stable well-known path.
	url := fmt.Sprintf("/invoices/%s/pdf", inv.ID)
	return &dto.InvoicePDFResponse{InvoiceID: inv.ID, URL: url}, nil
}

func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, customerID string) (int, error) {
	if customerID == "" {
		return 0, ierr.NewError("customer ID is required").
			WithHint("Customer ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	invoices, err := s.InvoiceRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	changed := 0
	for _, inv := range invoices {
		if inv.InvoiceStatus != types.InvoiceStatusOpen || !inv.IsPastDue(now) {
			continue
		}
		inv.InvoiceStatus = types.InvoiceStatusOverdue
		inv.UpdatedBy = types.GetUserID(ctx)
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		s.Logger.Infow("marked invoices overdue",
			"customer_id", customerID,
			"count", changed)
	}
	return changed, nil
}

// getOwnedInvoice fetches an invoice and enforces that it belongs to the
// requesting customer. A foreign invoice reads as not found so IDs do not
// leak across customers.
func (s *invoiceService) getOwnedInvoice(ctx context.Context, customerID, invoiceID string) (*invoice.Invoice, error) {
	if customerID == "" || invoiceID == "" {
		return nil, ierr.NewError("customer ID and invoice ID are required").
			WithHint("Customer ID and invoice ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.CustomerID != customerID {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s not found", invoiceID).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}
