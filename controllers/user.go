// controllers/user.go
package controllers

import (
	"errors"
	"net/http"

	"invoicedash-backend/config"
	"invoicedash-backend/models"
	"invoicedash-backend/services"
	"invoicedash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserWithStats decorates a user with their invoicing activity
type UserWithStats struct {
	models.User
	InvoiceCount int64   `json:"invoiceCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin managing_director sales_officer storekeeper"`
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin managing_director sales_officer storekeeper"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// requireUserManager loads the actor and rejects anyone without the
// unrestricted permission set
func requireUserManager(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return nil, false
	}
	if !services.HasPermission(user, services.PermissionAll) {
		utils.RespondWithError(c, http.StatusForbidden, "You do not have permission to manage users")
		return nil, false
	}
	return user, true
}

// GetUsers lists every user with their invoice count and revenue
func GetUsers(c *gin.Context) {
	if _, ok := requireUserManager(c); !ok {
		return
	}

	var users []models.User
	if err := config.DB.Order("created_at").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	result := make([]UserWithStats, 0, len(users))
	for _, u := range users {
		var count int64
		var revenue float64
		config.DB.Model(&models.Invoice{}).Where("created_by_user_id = ?", u.ID).Count(&count)
		config.DB.Model(&models.Invoice{}).Where("created_by_user_id = ?", u.ID).
			Select("COALESCE(SUM(total), 0)").Scan(&revenue)

		result = append(result, UserWithStats{
			User:         u,
			InvoiceCount: count,
			TotalRevenue: revenue,
		})
	}

	c.JSON(http.StatusOK, result)
}

// CreateUser creates a new user with an explicit role
func CreateUser(c *gin.Context) {
	if _, ok := requireUserManager(c); !ok {
		return
	}

	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := config.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     input.Role,
		IsActive: true,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, newUser)
}

// UpdateUser edits another user's name, role, active flag or password
func UpdateUser(c *gin.Context) {
	if _, ok := requireUserManager(c); !ok {
		return
	}

	userID := c.Param("id")
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = hashed
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func DeleteUser(c *gin.Context) {
	actor, ok := requireUserManager(c)
	if !ok {
		return
	}

	userID := c.Param("id")
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if actor.ID == userUUID {
		utils.RespondWithError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
