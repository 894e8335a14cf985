// services/engine.go
package services

import (
	"fmt"
	"strings"
	"time"

	"invoicedash-backend/models"
)

// Totals is the derived monetary triple of an invoice.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives subtotal, tax and total from the line items.
// Items whose name is blank after trimming do not count; the per-item
// total is quantity x unit price. Pure given the items and the rate.
func ComputeTotals(items []models.InvoiceItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	tax := subtotal * taxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// PriceItems drops blank-name rows and recomputes each remaining line's
// total from its quantity and unit price.
func PriceItems(items []models.InvoiceItem) []models.InvoiceItem {
	priced := make([]models.InvoiceItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		item.TotalPrice = float64(item.Quantity) * item.UnitPrice
		priced = append(priced, item)
	}
	return priced
}

// GenerateInvoiceNumber builds a human-readable invoice number:
// PREFIX-YYYY-###### with the last six digits of the millisecond
// timestamp. Advisory only; collisions are possible under concurrent
// creation and the durable identifier is always store-assigned.
func GenerateInvoiceNumber(prefix string) string {
	now := time.Now()
	suffix := now.UnixMilli() % 1000000
	return fmt.Sprintf("%s-%d-%06d", prefix, now.Year(), suffix)
}
