// controllers/invoice_pdf.go
package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"invoicedash-backend/models"
	"invoicedash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoicePDF renders an invoice as a PDF document
func DownloadInvoicePDF(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	invoice, ok := loadVisibleInvoice(c, user)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Invoice "+invoice.InvoiceNumber)
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Invoice Date: "+invoice.InvoiceDate.Format("2006-01-02"))
	pdf.Ln(7)
	if invoice.DueDate != nil {
		pdf.Cell(0, 7, "Due Date: "+invoice.DueDate.Format("2006-01-02"))
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, "Status: "+invoice.Status)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 7, "Bill To")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, invoice.Customer.Name)
	pdf.Ln(6)
	if invoice.Customer.Address != "" {
		pdf.Cell(0, 6, invoice.Customer.Address)
		pdf.Ln(6)
	}
	if invoice.Customer.City != "" {
		pdf.Cell(0, 6, fmt.Sprintf("%s, %s %s", invoice.Customer.City, invoice.Customer.State, invoice.Customer.ZipCode))
		pdf.Ln(6)
	}
	if invoice.Customer.Email != "" {
		pdf.Cell(0, 6, invoice.Customer.Email)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	// Line items table
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range invoice.Items {
		name := item.Name
		if item.Description != "" {
			name = name + " - " + item.Description
		}
		pdf.CellFormat(80, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, strconv.Itoa(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.TotalPrice), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(145, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", invoice.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(145, 7, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", invoice.Tax), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(145, 7, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", invoice.Total), "", 1, "R", false, 0, "")

	if invoice.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, "Notes: "+invoice.Notes, "", "L", false)
	}

	if hasDeliveryMetadata(invoice) {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, "Delivery")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		writeDeliveryLine(pdf, "Storekeeper", invoice.StorekeeperName)
		writeDeliveryLine(pdf, "Sales Officer", invoice.SalesOfficerName)
		writeDeliveryLine(pdf, "Driver", invoice.DriverName)
		writeDeliveryLine(pdf, "Vehicle Plate", invoice.VehiclePlate)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	filename := invoice.InvoiceNumber + ".pdf"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func hasDeliveryMetadata(invoice *models.Invoice) bool {
	return invoice.StorekeeperName != "" || invoice.SalesOfficerName != "" ||
		invoice.DriverName != "" || invoice.VehiclePlate != ""
}

func writeDeliveryLine(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	pdf.Cell(0, 5, label+": "+value)
	pdf.Ln(5)
}
