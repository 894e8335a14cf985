package services

import (
	"testing"
	"time"

	"invoicedash-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func invoiceOn(date time.Time, number string, total float64, status string) models.Invoice {
	return models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: number,
		InvoiceDate:   date,
		Total:         total,
		Status:        status,
	}
}

func TestFilterInvoices(t *testing.T) {
	newest := invoiceOn(reportNow, "INV-2024-000003", 300, models.StatusDraft)
	newest.Customer = models.Customer{Name: "ABC Construction Ltd", Email: "contact@abcconstruction.com"}
	middle := invoiceOn(reportNow.AddDate(0, 0, -3), "INV-2024-000002", 200, models.StatusSent)
	middle.Customer = models.Customer{Name: "XYZ Hardware Store", Email: "orders@xyzhardware.com"}
	oldest := invoiceOn(reportNow.AddDate(0, -2, 0), "INV-2024-000001", 100, models.StatusPaid)
	oldest.Customer = models.Customer{Name: "ABC Construction Ltd", Email: "contact@abcconstruction.com"}

	invoices := []models.Invoice{newest, middle, oldest}

	t.Run("pass-through filters leave the set unchanged", func(t *testing.T) {
		filtered := FilterInvoices(invoices, InvoiceFilter{Status: "all", DateRange: "all"}, reportNow)
		assert.Equal(t, invoices, filtered)

		again := FilterInvoices(filtered, InvoiceFilter{}, reportNow)
		assert.Equal(t, filtered, again)
	})

	t.Run("search matches number, customer name and email case-insensitively", func(t *testing.T) {
		byNumber := FilterInvoices(invoices, InvoiceFilter{Search: "000002"}, reportNow)
		require.Len(t, byNumber, 1)
		assert.Equal(t, "INV-2024-000002", byNumber[0].InvoiceNumber)

		byName := FilterInvoices(invoices, InvoiceFilter{Search: "abc construction"}, reportNow)
		assert.Len(t, byName, 2)

		byEmail := FilterInvoices(invoices, InvoiceFilter{Search: "ORDERS@XYZ"}, reportNow)
		require.Len(t, byEmail, 1)
		assert.Equal(t, "INV-2024-000002", byEmail[0].InvoiceNumber)

		assert.Empty(t, FilterInvoices(invoices, InvoiceFilter{Search: "nonexistent"}, reportNow))
	})

	t.Run("status filter is exact", func(t *testing.T) {
		filtered := FilterInvoices(invoices, InvoiceFilter{Status: models.StatusSent}, reportNow)
		require.Len(t, filtered, 1)
		assert.Equal(t, "INV-2024-000002", filtered[0].InvoiceNumber)
	})

	t.Run("date range bounds the invoice date", func(t *testing.T) {
		today := FilterInvoices(invoices, InvoiceFilter{DateRange: "today"}, reportNow)
		require.Len(t, today, 1)
		assert.Equal(t, "INV-2024-000003", today[0].InvoiceNumber)

		week := FilterInvoices(invoices, InvoiceFilter{DateRange: "week"}, reportNow)
		assert.Len(t, week, 2)

		year := FilterInvoices(invoices, InvoiceFilter{DateRange: "year"}, reportNow)
		assert.Len(t, year, 3)
	})

	t.Run("result is sorted newest first", func(t *testing.T) {
		shuffled := []models.Invoice{oldest, newest, middle}
		filtered := FilterInvoices(shuffled, InvoiceFilter{}, reportNow)

		require.Len(t, filtered, 3)
		assert.Equal(t, "INV-2024-000003", filtered[0].InvoiceNumber)
		assert.Equal(t, "INV-2024-000002", filtered[1].InvoiceNumber)
		assert.Equal(t, "INV-2024-000001", filtered[2].InvoiceNumber)
	})
}

func TestComputeFinancialSummary(t *testing.T) {
	t.Run("folds revenue by status and month", func(t *testing.T) {
		invoices := []models.Invoice{
			invoiceOn(reportNow, "a", 300, models.StatusPaid),
			invoiceOn(reportNow.AddDate(0, 0, -1), "b", 100, models.StatusSent),
			invoiceOn(reportNow.AddDate(0, -1, 0), "c", 200, models.StatusOverdue),
			invoiceOn(reportNow.AddDate(0, -1, 0), "d", 0, models.StatusDraft),
		}

		s := ComputeFinancialSummary(invoices, reportNow)

		assert.InDelta(t, 600.0, s.TotalRevenue, 1e-9)
		assert.InDelta(t, 300.0, s.PaidRevenue, 1e-9)
		assert.InDelta(t, 100.0, s.PendingRevenue, 1e-9)
		assert.InDelta(t, 200.0, s.OverdueRevenue, 1e-9)
		assert.Equal(t, 4, s.TotalInvoices)
		assert.Equal(t, 1, s.PaidInvoices)
		assert.Equal(t, 1, s.PendingInvoices)
		assert.Equal(t, 1, s.OverdueInvoices)
		assert.Equal(t, 1, s.DraftInvoices)

		assert.InDelta(t, 400.0, s.CurrentMonthRevenue, 1e-9)
		assert.InDelta(t, 200.0, s.LastMonthRevenue, 1e-9)
		assert.InDelta(t, 100.0, s.MonthlyGrowth, 1e-9) // 400 vs 200
		assert.InDelta(t, 50.0, s.CollectionRate, 1e-9) // 300 of 600
		assert.InDelta(t, 150.0, s.AvgInvoiceValue, 1e-9)
	})

	t.Run("zero denominators stay zero", func(t *testing.T) {
		s := ComputeFinancialSummary(nil, reportNow)

		assert.Equal(t, 0.0, s.MonthlyGrowth)
		assert.Equal(t, 0.0, s.CollectionRate)
		assert.Equal(t, 0.0, s.AvgInvoiceValue)
	})
}

func TestMonthlyRevenue(t *testing.T) {
	invoices := []models.Invoice{
		invoiceOn(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), "a", 100, models.StatusPaid),
		invoiceOn(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "b", 50, models.StatusPaid),
		invoiceOn(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), "c", 25, models.StatusSent),
	}

	t.Run("groups by month ascending", func(t *testing.T) {
		series := MonthlyRevenue(invoices, 6)

		require.Len(t, series, 2)
		assert.Equal(t, "2024-01", series[0].Key)
		assert.Equal(t, "Jan 2024", series[0].Month)
		assert.InDelta(t, 50.0, series[0].Revenue, 1e-9)
		assert.Equal(t, "2024-03", series[1].Key)
		assert.InDelta(t, 125.0, series[1].Revenue, 1e-9)
		assert.Equal(t, 2, series[1].Count)
	})

	t.Run("keeps only the most recent buckets", func(t *testing.T) {
		series := MonthlyRevenue(invoices, 1)

		require.Len(t, series, 1)
		assert.Equal(t, "2024-03", series[0].Key)
	})
}

func TestTopCustomers(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	withCustomer := func(inv models.Invoice, id uuid.UUID, name string) models.Invoice {
		inv.CustomerID = id
		inv.Customer = models.Customer{ID: id, Name: name}
		return inv
	}

	invoices := []models.Invoice{
		withCustomer(invoiceOn(reportNow, "a", 100, models.StatusPaid), first, "ABC Construction Ltd"),
		withCustomer(invoiceOn(reportNow, "b", 150, models.StatusSent), second, "XYZ Hardware Store"),
		withCustomer(invoiceOn(reportNow, "c", 200, models.StatusPaid), first, "ABC Construction Ltd"),
	}

	t.Run("sums revenue per customer, descending", func(t *testing.T) {
		top := TopCustomers(invoices, 5)

		require.Len(t, top, 2)
		assert.Equal(t, "ABC Construction Ltd", top[0].Name)
		assert.InDelta(t, 300.0, top[0].Revenue, 1e-9)
		assert.Equal(t, 2, top[0].Count)
		assert.Equal(t, "XYZ Hardware Store", top[1].Name)
		assert.InDelta(t, 150.0, top[1].Revenue, 1e-9)
	})

	t.Run("revenue ties keep first-seen order", func(t *testing.T) {
		tied := []models.Invoice{
			withCustomer(invoiceOn(reportNow, "a", 100, models.StatusPaid), second, "XYZ Hardware Store"),
			withCustomer(invoiceOn(reportNow, "b", 100, models.StatusPaid), first, "ABC Construction Ltd"),
			withCustomer(invoiceOn(reportNow, "c", 100, models.StatusPaid), third, "Tool Town Supply"),
		}

		top := TopCustomers(tied, 5)

		require.Len(t, top, 3)
		assert.Equal(t, "XYZ Hardware Store", top[0].Name)
		assert.Equal(t, "ABC Construction Ltd", top[1].Name)
		assert.Equal(t, "Tool Town Supply", top[2].Name)
	})

	t.Run("limit truncates the ranking", func(t *testing.T) {
		top := TopCustomers(invoices, 1)

		require.Len(t, top, 1)
		assert.Equal(t, "ABC Construction Ltd", top[0].Name)
	})
}
