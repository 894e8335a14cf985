// services/reports.go
package services

import (
	"sort"
	"strings"
	"time"

	"invoicedash-backend/models"
	"invoicedash-backend/utils"
)

// InvoiceFilter is the set of list filters the dashboard offers. Zero
// values (or "all") pass everything through.
type InvoiceFilter struct {
	Search    string
	Status    string
	DateRange string // today, week, month, year, all
}

// FilterInvoices applies search, status and date-range filters to an
// already visibility-filtered invoice set and sorts the result newest
// first. With empty filters the (sorted) input passes through unchanged.
func FilterInvoices(invoices []models.Invoice, filter InvoiceFilter, now time.Time) []models.Invoice {
	filtered := make([]models.Invoice, 0, len(invoices))

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var cutoff time.Time
	switch filter.DateRange {
	case "today":
		cutoff = utils.BeginningOfDay(now)
	case "week":
		cutoff = now.AddDate(0, 0, -7)
	case "month":
		cutoff = now.AddDate(0, -1, 0)
	case "year":
		cutoff = now.AddDate(-1, 0, 0)
	}

	for _, inv := range invoices {
		if search != "" {
			if !strings.Contains(strings.ToLower(inv.InvoiceNumber), search) &&
				!strings.Contains(strings.ToLower(inv.Customer.Name), search) &&
				!strings.Contains(strings.ToLower(inv.Customer.Email), search) {
				continue
			}
		}
		if filter.Status != "" && filter.Status != "all" && inv.Status != filter.Status {
			continue
		}
		if !cutoff.IsZero() && inv.InvoiceDate.Before(cutoff) {
			continue
		}
		filtered = append(filtered, inv)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].InvoiceDate.After(filtered[j].InvoiceDate)
	})
	return filtered
}

// FinancialSummary is the aggregate view behind the reports page.
type FinancialSummary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	PaidRevenue         float64 `json:"paidRevenue"`
	PendingRevenue      float64 `json:"pendingRevenue"`
	OverdueRevenue      float64 `json:"overdueRevenue"`
	CurrentMonthRevenue float64 `json:"currentMonthRevenue"`
	LastMonthRevenue    float64 `json:"lastMonthRevenue"`
	MonthlyGrowth       float64 `json:"monthlyGrowth"`  // percent
	CollectionRate      float64 `json:"collectionRate"` // percent
	AvgInvoiceValue     float64 `json:"avgInvoiceValue"`
	TotalInvoices       int     `json:"totalInvoices"`
	PaidInvoices        int     `json:"paidInvoices"`
	PendingInvoices     int     `json:"pendingInvoices"`
	OverdueInvoices     int     `json:"overdueInvoices"`
	DraftInvoices       int     `json:"draftInvoices"`
}

// ComputeFinancialSummary folds the visible invoice set into the report
// aggregates. Divisions guard their zero denominators.
func ComputeFinancialSummary(invoices []models.Invoice, now time.Time) FinancialSummary {
	var s FinancialSummary
	s.TotalInvoices = len(invoices)

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfLastMonth := firstOfMonth.AddDate(0, -1, 0)

	for _, inv := range invoices {
		s.TotalRevenue += inv.Total
		switch inv.Status {
		case models.StatusPaid:
			s.PaidRevenue += inv.Total
			s.PaidInvoices++
		case models.StatusSent:
			s.PendingRevenue += inv.Total
			s.PendingInvoices++
		case models.StatusOverdue:
			s.OverdueRevenue += inv.Total
			s.OverdueInvoices++
		case models.StatusDraft:
			s.DraftInvoices++
		}

		if !inv.InvoiceDate.Before(firstOfMonth) {
			s.CurrentMonthRevenue += inv.Total
		} else if !inv.InvoiceDate.Before(firstOfLastMonth) {
			s.LastMonthRevenue += inv.Total
		}
	}

	if s.LastMonthRevenue > 0 {
		s.MonthlyGrowth = (s.CurrentMonthRevenue - s.LastMonthRevenue) / s.LastMonthRevenue * 100
	}
	if s.TotalRevenue > 0 {
		s.CollectionRate = s.PaidRevenue / s.TotalRevenue * 100
	}
	if s.TotalInvoices > 0 {
		s.AvgInvoiceValue = s.TotalRevenue / float64(s.TotalInvoices)
	}
	return s
}

// MonthRevenue is one bucket of the revenue chart.
type MonthRevenue struct {
	Key     string  `json:"key"`   // YYYY-MM, the sort key
	Month   string  `json:"month"` // display label, e.g. "Jan 2024"
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// MonthlyRevenue groups invoices by calendar month of their invoice date,
// sorted ascending by month key, keeping the most recent `months` buckets.
func MonthlyRevenue(invoices []models.Invoice, months int) []MonthRevenue {
	buckets := make(map[string]*MonthRevenue)
	keys := make([]string, 0)

	for _, inv := range invoices {
		key := inv.InvoiceDate.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthRevenue{Key: key, Month: inv.InvoiceDate.Format("Jan 2006")}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.Revenue += inv.Total
		b.Count++
	}

	sort.Strings(keys)
	if months > 0 && len(keys) > months {
		keys = keys[len(keys)-months:]
	}

	result := make([]MonthRevenue, 0, len(keys))
	for _, key := range keys {
		result = append(result, *buckets[key])
	}
	return result
}

// CustomerRevenue is one row of the top-customers ranking.
type CustomerRevenue struct {
	CustomerID string  `json:"customerId"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Count      int     `json:"count"`
}

// TopCustomers groups invoices by customer, sums revenue and invoice
// count, and returns the biggest `limit` spenders. Revenue ties keep
// first-seen input order.
func TopCustomers(invoices []models.Invoice, limit int) []CustomerRevenue {
	totals := make(map[string]*CustomerRevenue)
	order := make([]*CustomerRevenue, 0)

	for _, inv := range invoices {
		id := inv.CustomerID.String()
		row, ok := totals[id]
		if !ok {
			row = &CustomerRevenue{CustomerID: id, Name: inv.Customer.Name}
			totals[id] = row
			order = append(order, row)
		}
		row.Revenue += inv.Total
		row.Count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Revenue > order[j].Revenue
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	result := make([]CustomerRevenue, 0, len(order))
	for _, row := range order {
		result = append(result, *row)
	}
	return result
}
