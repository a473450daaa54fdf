// controllers/client.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"tailorly-backend/config"
	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name         string       `json:"name" binding:"required"`
	Email        *string      `json:"email"`
	Phone        *string      `json:"phone"`
	Address      string       `json:"address"`
	Measurements models.JSONB `json:"measurements"`
	Preferences  models.JSONB `json:"preferences"`
	Notes        string       `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name         *string       `json:"name"`
	Email        *string       `json:"email"`
	Phone        *string       `json:"phone"`
	Address      *string       `json:"address"`
	Measurements *models.JSONB `json:"measurements"`
	Preferences  *models.JSONB `json:"preferences"`
	Notes        *string       `json:"notes"`
	IsActive     *bool         `json:"isActive"`
}

// CreateClient creates a new client for the tailor
func CreateClient(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client := models.Client{
		ID:           uuid.New(),
		TailorID:     tailorUUID,
		Name:         input.Name,
		Address:      input.Address,
		Measurements: input.Measurements,
		Preferences:  input.Preferences,
		Notes:        input.Notes,
		IsActive:     true,
	}

	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if client.Measurements == nil {
		client.Measurements = models.JSONB{}
	}
	if client.Preferences == nil {
		client.Preferences = models.JSONB{}
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves the tailor's clients with optional search and pagination
func GetClients(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Client{}).Where("tailor_id = ?", tailorUUID)

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	var clients []models.Client
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages,
		},
	})
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing client
	var client models.Client
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Measurements != nil {
		client.Measurements = *input.Measurements
	}
	if input.Preferences != nil {
		client.Preferences = *input.Preferences
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func DeleteClient(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, clientUUID).
		Delete(&models.Client{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
