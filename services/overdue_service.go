// services/overdue_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"invoicedash-backend/models"
	"invoicedash-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// OverdueService runs the one automated status transition in the system:
// sent invoices past their due date become overdue, and the customer gets
// a payment reminder.
type OverdueService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewOverdueService(db *gorm.DB) *OverdueService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &OverdueService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *OverdueService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.ProcessOverdueInvoices)

	c.Start()
	log.Println("Overdue invoice scheduler started")
}

// ProcessOverdueInvoices marks every sent invoice whose due date has
// passed as overdue and sends a reminder for each one.
func (s *OverdueService) ProcessOverdueInvoices() {
	log.Println("Starting overdue invoice processing...")

	today := utils.BeginningOfDay(time.Now())

	var invoices []models.Invoice
	if err := s.db.Preload("Customer").
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.StatusSent, today).
		Find(&invoices).Error; err != nil {
		log.Printf("Failed to fetch overdue candidates: %v", err)
		return
	}

	for _, invoice := range invoices {
		if err := s.db.Model(&models.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("status", models.StatusOverdue).Error; err != nil {
			log.Printf("Invoice %s: failed to mark overdue: %v", invoice.InvoiceNumber, err)
			continue
		}
		s.sendPaymentReminder(invoice)
	}

	log.Printf("Overdue invoice processing completed, %d invoice(s) marked", len(invoices))
}

// paymentReminderMessage builds the reminder text, including how many
// days the invoice has been outstanding when the due date is known.
func paymentReminderMessage(invoice models.Invoice, now time.Time) string {
	if invoice.DueDate != nil {
		days := utils.DaysBetween(*invoice.DueDate, now)
		return fmt.Sprintf(
			"Hi %s, invoice %s for %.2f is %d day(s) overdue. Please arrange payment at your earliest convenience.",
			invoice.Customer.Name, invoice.InvoiceNumber, invoice.Total, days)
	}
	return fmt.Sprintf(
		"Hi %s, invoice %s for %.2f is past its due date. Please arrange payment at your earliest convenience.",
		invoice.Customer.Name, invoice.InvoiceNumber, invoice.Total)
}

func (s *OverdueService) sendPaymentReminder(invoice models.Invoice) {
	if invoice.Customer.Phone == "" {
		log.Printf("Invoice %s: customer has no phone, skipping reminder", invoice.InvoiceNumber)
		return
	}

	message := paymentReminderMessage(invoice, time.Now())

	// WhatsApp when the phone is E.164, else SMS
	channel := "sms"
	to := invoice.Customer.Phone
	if strings.HasPrefix(invoice.Customer.Phone, "+") {
		to = "whatsapp:" + invoice.Customer.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder for invoice %s: %v", invoice.InvoiceNumber, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent for invoice %s, SID: %s", invoice.InvoiceNumber, *resp.Sid)
	} else {
		log.Printf("Reminder sent for invoice %s, but no SID returned", invoice.InvoiceNumber)
	}

	reminderLog := models.ReminderLog{
		InvoiceID:    invoice.ID,
		CustomerID:   invoice.CustomerID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for invoice %s: %v", invoice.InvoiceNumber, err)
	}
}
