// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"invoicedash-backend/config"
	"invoicedash-backend/models"
	"invoicedash-backend/services"
	"invoicedash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceItemInput defines the structure for an invoice line item
type InvoiceItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"min=0"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	CustomerID       uuid.UUID          `json:"customerId" binding:"required"`
	InvoiceDate      *time.Time         `json:"invoiceDate"`
	DueDate          *time.Time         `json:"dueDate"`
	Items            []InvoiceItemInput `json:"items" binding:"required,min=1"`
	Status           string             `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	Notes            string             `json:"notes"`
	StorekeeperName  string             `json:"storekeeperName"`
	SalesOfficerName string             `json:"salesOfficerName"`
	DriverName       string             `json:"driverName"`
	VehiclePlate     string             `json:"vehiclePlate"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	CustomerID       *uuid.UUID          `json:"customerId"`
	InvoiceDate      *time.Time          `json:"invoiceDate"`
	DueDate          *time.Time          `json:"dueDate"`
	Items            *[]InvoiceItemInput `json:"items"`
	Status           *string             `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	Notes            *string             `json:"notes"`
	StorekeeperName  *string             `json:"storekeeperName"`
	SalesOfficerName *string             `json:"salesOfficerName"`
	DriverName       *string             `json:"driverName"`
	VehiclePlate     *string             `json:"vehiclePlate"`
}

// UpdateStatusInput is the body of the status-only update
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=draft sent paid overdue"`
}

func buildItems(inputs []InvoiceItemInput) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.InvoiceItem{
			Name:        in.Name,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		})
	}
	return items
}

// CreateInvoice creates a new invoice with server-side computed totals
func CreateInvoice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	if !services.HasPermission(user, services.PermCreateInvoice) {
		utils.RespondWithError(c, http.StatusForbidden, "You do not have permission to create invoices")
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate customer exists
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Blank-name rows are dropped, line totals recomputed
	items := services.PriceItems(buildItems(input.Items))
	if len(items) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invoice needs at least one named item")
		return
	}
	totals := services.ComputeTotals(items, config.TaxRate())

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}

	invoice := models.Invoice{
		CreatedByUserID:  user.ID,
		InvoiceNumber:    services.GenerateInvoiceNumber(config.InvoiceNumberPrefix),
		CustomerID:       input.CustomerID,
		InvoiceDate:      invoiceDate,
		DueDate:          input.DueDate,
		Subtotal:         totals.Subtotal,
		Tax:              totals.Tax,
		Total:            totals.Total,
		Status:           status,
		Notes:            input.Notes,
		StorekeeperName:  input.StorekeeperName,
		SalesOfficerName: input.SalesOfficerName,
		DriverName:       input.DriverName,
		VehiclePlate:     input.VehiclePlate,
		Items:            items,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	tx.Commit()

	invoice.Customer = customer
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves the invoices visible to the actor, with optional
// search, status and date-range filters
func GetInvoices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Preload("Items").Preload("Customer").
		Order("invoice_date DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	visible := services.VisibleInvoices(user, invoices)
	filtered := services.FilterInvoices(visible, services.InvoiceFilter{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		DateRange: c.Query("dateRange"),
	}, time.Now())

	c.JSON(http.StatusOK, filtered)
}

// loadVisibleInvoice fetches one invoice and enforces the visibility rule
func loadVisibleInvoice(c *gin.Context, user *models.User) (*models.Invoice, bool) {
	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return nil, false
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("Customer").
		First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if user.Role == models.RoleSalesOfficer && invoice.CreatedByUserID != user.ID {
		utils.RespondWithError(c, http.StatusForbidden, "You do not have access to this invoice")
		return nil, false
	}

	return &invoice, true
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	invoice, ok := loadVisibleInvoice(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice
func UpdateInvoice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	invoice, ok := loadVisibleInvoice(c, user)
	if !ok {
		return
	}

	if !services.CanEditInvoice(user, invoice) {
		utils.RespondWithError(c, http.StatusForbidden, "You do not have permission to edit this invoice")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if input.CustomerID != nil {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", *input.CustomerID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		invoice.CustomerID = *input.CustomerID
		invoice.Customer = customer
	}

	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}

	// If items are being updated, replace them wholesale and recompute
	if input.Items != nil {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}

		items := services.PriceItems(buildItems(*input.Items))
		if len(items) == 0 {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest, "Invoice needs at least one named item")
			return
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}

		totals := services.ComputeTotals(items, config.TaxRate())
		invoice.Items = items
		invoice.Subtotal = totals.Subtotal
		invoice.Tax = totals.Tax
		invoice.Total = totals.Total
	}

	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.StorekeeperName != nil {
		invoice.StorekeeperName = *input.StorekeeperName
	}
	if input.SalesOfficerName != nil {
		invoice.SalesOfficerName = *input.SalesOfficerName
	}
	if input.DriverName != nil {
		invoice.DriverName = *input.DriverName
	}
	if input.VehiclePlate != nil {
		invoice.VehiclePlate = *input.VehiclePlate
	}

	if err := tx.Save(invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoiceStatus changes only the lifecycle status of an invoice
func UpdateInvoiceStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	invoice, ok := loadVisibleInvoice(c, user)
	if !ok {
		return
	}

	if !services.CanEditInvoice(user, invoice) {
		utils.RespondWithError(c, http.StatusForbidden, "You do not have permission to edit this invoice")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := config.DB.Model(invoice).Update("status", input.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}

	invoice.Status = input.Status
	c.JSON(http.StatusOK, invoice)
}
