// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"tailorly-backend/config"
	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email           string       `json:"email" binding:"required,email"`
	Phone           string       `json:"phone" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	Password        string       `json:"password" binding:"required,min=8"`
	BusinessName    string       `json:"businessName"`
	BusinessAddress string       `json:"businessAddress"`
	WorkingHours    models.JSONB `json:"workingHours"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput

	// Bind and validate input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if email or phone already exists
	var existingTailor models.Tailor
	result := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingTailor)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newTailor := models.Tailor{
		Email:           input.Email,
		Phone:           input.Phone,
		Name:            input.Name,
		Password:        input.Password, // Hashed in BeforeCreate hook
		BusinessName:    input.BusinessName,
		BusinessAddress: input.BusinessAddress,
		WorkingHours:    input.WorkingHours,
		IsActive:        true,
	}

	// Set default working hours if not provided
	if newTailor.WorkingHours == nil {
		newTailor.WorkingHours = models.JSONB{
			"monday":    map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"tuesday":   map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"wednesday": map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"thursday":  map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"friday":    map[string]interface{}{"open": "09:00", "close": "18:00", "closed": false},
			"saturday":  map[string]interface{}{"open": "10:00", "close": "16:00", "closed": false},
			"sunday":    map[string]interface{}{"open": "09:00", "close": "18:00", "closed": true},
		}
	}

	if err := config.DB.Create(&newTailor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(newTailor.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	// Return response without password
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"tailor": gin.H{
			"id":           newTailor.ID,
			"email":        newTailor.Email,
			"phone":        newTailor.Phone,
			"businessName": newTailor.BusinessName,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var tailor models.Tailor
	result := config.DB.Where("email = ? OR phone = ?", identifier, identifier).First(&tailor)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, tailor.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(tailor.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&tailor).Update("last_login", &now)

	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"tailor": gin.H{
			"id":           tailor.ID,
			"email":        tailor.Email,
			"phone":        tailor.Phone,
			"businessName": tailor.BusinessName,
		},
	})
}

func Me(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "Tailor ID not found in context")
		return
	}

	var tailor models.Tailor
	if err := config.DB.First(&tailor, "id = ?", tailorID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tailor": gin.H{
			"id":           tailor.ID,
			"email":        tailor.Email,
			"name":         tailor.Name,
			"businessName": tailor.BusinessName,
		},
	})
}
