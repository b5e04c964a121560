package invoice

import "fmt"

// FormatInvoiceNumber renders a sequence value as the customer-visible
// invoice number, e.g. INV-000042.
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}
