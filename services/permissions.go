// services/permissions.go
package services

import (
	"invoicedash-backend/models"
)

// PermissionAll short-circuits every other permission token.
const PermissionAll = "all"

// Permission tokens checked by the handlers.
const (
	PermCreateInvoice   = "create_invoice"
	PermViewAllInvoices = "view_all_invoices"
	PermViewOwnInvoices = "view_own_invoices"
	PermEditOwnInvoices = "edit_own_invoices"
	PermViewInvoices    = "view_invoices"
	PermViewReports     = "view_reports"
	PermManageUsers     = "manage_users"
	PermUpdateInventory = "update_inventory"
)

// rolePermissions is the static role table. Roles not listed here get no
// permissions at all.
var rolePermissions = map[string][]string{
	models.RoleAdmin:            {PermissionAll},
	models.RoleManagingDirector: {PermViewAllInvoices, PermViewReports, PermManageUsers},
	models.RoleSalesOfficer:     {PermCreateInvoice, PermViewOwnInvoices, PermEditOwnInvoices},
	models.RoleStorekeeper:      {PermViewInvoices, PermUpdateInventory},
}

// HasPermission reports whether the user may perform the action named by
// the permission token. Nil or inactive users are always denied.
func HasPermission(user *models.User, permission string) bool {
	if user == nil || !user.IsActive {
		return false
	}
	for _, p := range rolePermissions[user.Role] {
		if p == PermissionAll || p == permission {
			return true
		}
	}
	return false
}

// VisibleInvoices narrows the invoice set to what the user may see:
// sales officers see only what they created, every other role sees the
// whole slice unchanged. Applied before any search or status filtering.
func VisibleInvoices(user *models.User, invoices []models.Invoice) []models.Invoice {
	if user == nil {
		return nil
	}
	if user.Role != models.RoleSalesOfficer {
		return invoices
	}
	visible := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.CreatedByUserID == user.ID {
			visible = append(visible, inv)
		}
	}
	return visible
}

// CanEditInvoice reports whether the user may mutate the invoice,
// including its status: admins always, sales officers only on their own.
func CanEditInvoice(user *models.User, invoice *models.Invoice) bool {
	if user == nil || invoice == nil {
		return false
	}
	if HasPermission(user, PermissionAll) {
		return true
	}
	return user.Role == models.RoleSalesOfficer && user.IsActive &&
		invoice.CreatedByUserID == user.ID
}
