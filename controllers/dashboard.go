package controllers

import (
	"net/http"
	"time"

	"invoicedash-backend/config"
	"invoicedash-backend/models"
	"invoicedash-backend/services"
	"invoicedash-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the headline numbers for the landing page,
// computed over the invoice set visible to the actor
func GetDashboardOverview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Preload("Customer").
		Order("invoice_date DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	visible := services.VisibleInvoices(user, invoices)
	summary := services.ComputeFinancialSummary(visible, time.Now())

	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)

	// Five most recent invoices for the activity panel
	recent := visible
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":  totalCustomers,
		"totalInvoices":   summary.TotalInvoices,
		"totalRevenue":    summary.TotalRevenue,
		"monthlyRevenue":  summary.CurrentMonthRevenue,
		"paidInvoices":    summary.PaidInvoices,
		"pendingInvoices": summary.PendingInvoices,
		"overdueInvoices": summary.OverdueInvoices,
		"draftInvoices":   summary.DraftInvoices,
		"recentInvoices":  recent,
	})
}
