// controllers/context.go
package controllers

import (
	"invoicedash-backend/config"
	"invoicedash-backend/models"

	"github.com/gin-gonic/gin"
)

// currentUser loads the authenticated actor for this request from the
// user id the auth middleware put into the context. Every permission
// check runs against this freshly loaded record, not the token claims.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		return nil, false
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}
