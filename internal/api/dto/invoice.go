package dto

import (
	"github.com/RealMorph/JSoftware-HubTech-sub013/internal/domain/invoice"
)

type InvoiceResponse struct {
	*invoice.Invoice
}

type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

// InvoicePDFResponse carries the reference under which an external
// document generator would publish the rendered invoice.
type InvoicePDFResponse struct {
	InvoiceID string `json:"invoice_id"`
	URL       string `json:"url"`
}
