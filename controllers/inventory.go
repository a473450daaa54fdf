// controllers/inventory.go
package controllers

import (
	"errors"
	"net/http"

	"tailorly-backend/config"
	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInventoryItemInput defines the expected JSON structure for creating an inventory item
type CreateInventoryItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" binding:"min=0"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price" binding:"min=0"`
	MinQuantity float64 `json:"minQuantity" binding:"min=0"`
}

// UpdateInventoryItemInput defines the expected JSON structure for updating an inventory item
type UpdateInventoryItemInput struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit"`
	Price       *float64 `json:"price"`
	MinQuantity *float64 `json:"minQuantity"`
}

// AdjustQuantityInput carries a stock adjustment
type AdjustQuantityInput struct {
	Quantity  float64 `json:"quantity" binding:"required,min=0"`
	Operation string  `json:"operation" binding:"required,oneof=add subtract set"`
}

// CreateInventoryItem creates a new inventory item for the tailor
func CreateInventoryItem(c *gin.Context) {
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

	var input CreateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := input.Category
	if category == "" {
		category = "General"
	}

	item := models.InventoryItem{
		ID:          uuid.New(),
		TailorID:    tailorUUID,
		Name:        input.Name,
		Category:    category,
		Description: input.Description,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		Price:       input.Price,
		MinQuantity: input.MinQuantity,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetInventory retrieves the tailor's inventory, optionally filtered by
// category or restricted to items at or below their minimum quantity
func GetInventory(c *gin.Context) {
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

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("lowStock") == "true" {
		query = query.Where("quantity <= min_quantity")
	}

	var items []models.InventoryItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve inventory")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetInventoryItem retrieves a specific inventory item by ID
func GetInventoryItem(c *gin.Context) {
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

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateInventoryItem updates an existing inventory item
func UpdateInventoryItem(c *gin.Context) {
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

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var input UpdateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.MinQuantity != nil {
		item.MinQuantity = *input.MinQuantity
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update inventory item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// AdjustInventoryQuantity adds to, subtracts from or sets an item's stock level
func AdjustInventoryQuantity(c *gin.Context) {
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

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var input AdjustQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	switch input.Operation {
	case "add":
		item.Quantity += input.Quantity
	case "subtract":
		item.Quantity -= input.Quantity
		if item.Quantity < 0 {
			item.Quantity = 0
		}
	case "set":
		item.Quantity = input.Quantity
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update inventory quantity")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem soft deletes an inventory item
func DeleteInventoryItem(c *gin.Context) {
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

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	result := config.DB.Where("tailor_id = ? AND id = ?", tailorUUID, itemUUID).
		Delete(&models.InventoryItem{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete inventory item")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}
