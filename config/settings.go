package config

import (
	"os"
	"strconv"
)

// DefaultTaxRate is the system-wide tax rate applied to every invoice
// subtotal. Override with the TAX_RATE env variable (e.g. "0.10").
const DefaultTaxRate = 0.18

// InvoiceNumberPrefix is the short business code on generated invoice numbers.
const InvoiceNumberPrefix = "INV"

// TaxRate returns the configured tax rate, falling back to DefaultTaxRate.
func TaxRate() float64 {
	if env := os.Getenv("TAX_RATE"); env != "" {
		if rate, err := strconv.ParseFloat(env, 64); err == nil && rate >= 0 {
			return rate
		}
	}
	return DefaultTaxRate
}
