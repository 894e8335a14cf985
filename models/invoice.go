package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses. The lifecycle is advisory (draft -> sent -> paid|overdue);
// any editor may set any of the four values.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

type Invoice struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"createdBy"`

	InvoiceNumber string     `gorm:"index;not null" json:"invoiceNumber"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	InvoiceDate   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"invoiceDate"`
	DueDate       *time.Time `json:"dueDate"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax      float64 `gorm:"type:decimal(10,2);default:0.0" json:"tax"`
	Total    float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	Status string `gorm:"type:varchar(20);default:'draft'" json:"status"`
	Notes  string `json:"notes"`

	// Delivery and signature metadata, filled in when goods leave the store.
	StorekeeperName  string `json:"storekeeperName"`
	SalesOfficerName string `json:"salesOfficerName"`
	DriverName       string `json:"driverName"`
	VehiclePlate     string `json:"vehiclePlate"`

	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Quantity    int       `gorm:"default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);not null" json:"total"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return
}

// ValidStatus reports whether s is one of the four invoice statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}
