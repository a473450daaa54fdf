// controllers/profile.go
package controllers

import (
	"net/http"

	"tailorly-backend/config"
	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
}

func GetProfile(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor not found")
		return
	}

	var tailor models.Tailor
	if err := config.DB.First(&tailor, "id = ?", tailorID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tailor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                  tailor.Name,
		"email":                 tailor.Email,
		"phone":                 tailor.Phone,
		"businessName":          tailor.BusinessName,
		"businessAddress":       tailor.BusinessAddress,
		"workingHours":          tailor.WorkingHours,
		"appointmentReminders":  tailor.AppointmentReminders,
		"whatsAppNotifications": tailor.WhatsAppNotifications,
		"smsNotifications":      tailor.SMSNotifications,
	})
}

func UpdateProfile(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var tailor models.Tailor
	if err := config.DB.First(&tailor, "id = ?", tailorID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tailor not found")
		return
	}

	tailor.Name = input.Name
	tailor.Phone = input.Phone
	tailor.BusinessName = input.BusinessName
	tailor.BusinessAddress = input.BusinessAddress

	if err := config.DB.Save(&tailor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateWorkingHours(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor not found")
		return
	}

	var input struct {
		WorkingHours models.JSONB `json:"workingHours"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Tailor{}).Where("id = ?", tailorID).
		Update("working_hours", input.WorkingHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor not found")
		return
	}

	var input struct {
		AppointmentReminders  bool `json:"appointmentReminders"`
		WhatsAppNotifications bool `json:"whatsAppNotifications"`
		SMSNotifications      bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Tailor{}).Where("id = ?", tailorID).
		Updates(map[string]interface{}{
			"appointment_reminders":   input.AppointmentReminders,
			"whats_app_notifications": input.WhatsAppNotifications,
			"sms_notifications":       input.SMSNotifications,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
