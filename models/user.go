package models

import (
	"invoicedash-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles an operator can hold. Assigned at registration, changed only
// through user management.
const (
	RoleAdmin            = "admin"
	RoleManagingDirector = "managing_director"
	RoleSalesOfficer     = "sales_officer"
	RoleStorekeeper      = "storekeeper"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`

	Role     string `gorm:"type:varchar(20);not null" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	LastLogin *time.Time `json:"lastLogin"`

	Invoices []Invoice `gorm:"foreignKey:CreatedByUserID" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
