// controllers/report.go
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

// ReportController handles all reporting functions
type ReportController struct{}

// GetReportAnalytics returns the aggregate financial views: summary,
// monthly revenue series and top customers. Requires the view_reports
// permission.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	if !services.HasPermission(user, services.PermViewReports) {
		utils.RespondWithError(c, http.StatusForbidden, "You do not have permission to view reports")
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

	c.JSON(http.StatusOK, gin.H{
		"summary":        services.ComputeFinancialSummary(visible, time.Now()),
		"monthlyRevenue": services.MonthlyRevenue(visible, 6),
		"topCustomers":   services.TopCustomers(visible, 5),
	})
}
