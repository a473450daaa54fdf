// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"tailorly-backend/config"
	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOrderInput defines the expected JSON structure for creating an order
type CreateOrderInput struct {
	ClientID    string     `json:"clientId" binding:"required"`
	Service     string     `json:"service" binding:"required"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount" binding:"required,min=0"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	Notes       string     `json:"notes"`
}

// UpdateOrderInput defines the expected JSON structure for updating an order
type UpdateOrderInput struct {
	Service     *string    `json:"service"`
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	DueDate     *time.Time `json:"dueDate"`
	Notes       *string    `json:"notes"`
}

// UpdateOrderStatusInput carries the status transition for an order
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress ready completed cancelled"`
}

// CreateOrder creates a new order for an existing client
func CreateOrder(c *gin.Context) {
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

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	clientUUID, err := uuid.Parse(input.ClientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	// Check the client exists and belongs to this tailor
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

	status := input.Status
	if status == "" {
		status = models.OrderPending
	}

	order := models.Order{
		ID:          uuid.New(),
		TailorID:    tailorUUID,
		ClientID:    clientUUID,
		Service:     input.Service,
		Description: input.Description,
		Amount:      input.Amount,
		Status:      status,
		OrderDate:   time.Now(),
		DueDate:     input.DueDate,
		Notes:       input.Notes,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders retrieves the tailor's orders, optionally filtered by status or client
func GetOrders(c *gin.Context) {
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

	query := config.DB.Where("tailor_id = ?", tailorUUID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		clientUUID, err := uuid.Parse(clientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}
		query = query.Where("client_id = ?", clientUUID)
	}

	var orders []models.Order
	if err := query.Order("order_date DESC").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder retrieves a specific order by ID
func GetOrder(c *gin.Context) {
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

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder updates an existing order
func UpdateOrder(c *gin.Context) {
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

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Service != nil {
		order.Service = *input.Service
	}
	if input.Description != nil {
		order.Description = *input.Description
	}
	if input.Amount != nil {
		order.Amount = *input.Amount
	}
	if input.DueDate != nil {
		order.DueDate = input.DueDate
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through its workflow states
func UpdateOrderStatus(c *gin.Context) {
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

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	order.Status = input.Status
	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder soft deletes an order
func DeleteOrder(c *gin.Context) {
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

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	result := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, orderUUID).
		Delete(&models.Order{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
