package services

import (
	"testing"

	"invoicedash-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeUser(role string) *models.User {
	return &models.User{ID: uuid.New(), Role: role, IsActive: true}
}

func TestHasPermission(t *testing.T) {
	t.Run("admin passes every token", func(t *testing.T) {
		admin := activeUser(models.RoleAdmin)

		assert.True(t, HasPermission(admin, PermissionAll))
		assert.True(t, HasPermission(admin, PermCreateInvoice))
		assert.True(t, HasPermission(admin, PermViewReports))
	})

	t.Run("only admin holds the unrestricted set", func(t *testing.T) {
		for _, role := range []string{models.RoleManagingDirector, models.RoleSalesOfficer, models.RoleStorekeeper} {
			assert.False(t, HasPermission(activeUser(role), PermissionAll), role)
		}
	})

	t.Run("role table matched verbatim", func(t *testing.T) {
		director := activeUser(models.RoleManagingDirector)
		assert.True(t, HasPermission(director, PermViewAllInvoices))
		assert.True(t, HasPermission(director, PermViewReports))
		assert.True(t, HasPermission(director, PermManageUsers))
		assert.False(t, HasPermission(director, PermCreateInvoice))

		officer := activeUser(models.RoleSalesOfficer)
		assert.True(t, HasPermission(officer, PermCreateInvoice))
		assert.True(t, HasPermission(officer, PermViewOwnInvoices))
		assert.False(t, HasPermission(officer, PermViewReports))

		keeper := activeUser(models.RoleStorekeeper)
		assert.True(t, HasPermission(keeper, PermViewInvoices))
		assert.True(t, HasPermission(keeper, PermUpdateInventory))
		assert.False(t, HasPermission(keeper, PermCreateInvoice))
	})

	t.Run("nil, inactive and unknown-role users are denied", func(t *testing.T) {
		assert.False(t, HasPermission(nil, PermCreateInvoice))

		inactive := activeUser(models.RoleAdmin)
		inactive.IsActive = false
		assert.False(t, HasPermission(inactive, PermCreateInvoice))

		assert.False(t, HasPermission(activeUser("intern"), PermViewInvoices))
	})
}

func TestVisibleInvoices(t *testing.T) {
	officer := activeUser(models.RoleSalesOfficer)
	other := uuid.New()

	invoices := []models.Invoice{
		{CreatedByUserID: officer.ID, InvoiceNumber: "INV-2024-000001"},
		{CreatedByUserID: other, InvoiceNumber: "INV-2024-000002"},
		{CreatedByUserID: officer.ID, InvoiceNumber: "INV-2024-000003"},
	}

	t.Run("sales officer sees only their own", func(t *testing.T) {
		visible := VisibleInvoices(officer, invoices)

		require.Len(t, visible, 2)
		assert.Equal(t, "INV-2024-000001", visible[0].InvoiceNumber)
		assert.Equal(t, "INV-2024-000003", visible[1].InvoiceNumber)
	})

	t.Run("every other role sees the full set unchanged", func(t *testing.T) {
		for _, role := range []string{models.RoleAdmin, models.RoleManagingDirector, models.RoleStorekeeper} {
			visible := VisibleInvoices(activeUser(role), invoices)
			assert.Equal(t, invoices, visible, role)
		}
	})

	t.Run("nil user sees nothing", func(t *testing.T) {
		assert.Empty(t, VisibleInvoices(nil, invoices))
	})
}

func TestCanEditInvoice(t *testing.T) {
	officer := activeUser(models.RoleSalesOfficer)
	own := &models.Invoice{CreatedByUserID: officer.ID}
	foreign := &models.Invoice{CreatedByUserID: uuid.New()}

	assert.True(t, CanEditInvoice(activeUser(models.RoleAdmin), foreign))
	assert.True(t, CanEditInvoice(officer, own))
	assert.False(t, CanEditInvoice(officer, foreign))
	assert.False(t, CanEditInvoice(activeUser(models.RoleManagingDirector), foreign))
	assert.False(t, CanEditInvoice(activeUser(models.RoleStorekeeper), foreign))
	assert.False(t, CanEditInvoice(nil, own))
	assert.False(t, CanEditInvoice(officer, nil))
}
