package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebook/internal/config"
	"ridebook/internal/models"
)

// CreateVehicleClass registers a new bookable vehicle tier.
func CreateVehicleClass(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		DisplayName string `json:"display_name" binding:"required"`
		BaseFare    int64  `json:"base_fare"`
		PerKM       int64  `json:"per_km"`
		UpgradeFee  int64  `json:"upgrade_fee"`
		Capacity    int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle class input: " + err.Error()})
		return
	}
	if input.BaseFare < 0 || input.PerKM < 0 || input.UpgradeFee < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fares must not be negative"})
		return
	}

	class := models.VehicleClass{
		Name:        input.Name,
		DisplayName: input.DisplayName,
		BaseFare:    input.BaseFare,
		PerKM:       input.PerKM,
		UpgradeFee:  input.UpgradeFee,
		Capacity:    input.Capacity,
		Active:      true,
	}
	if err := config.DB.Create(&class).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "vehicle class name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle class: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle_class": class})
}

// ListVehicleClasses returns all vehicle tiers. Public listing shows active
// only; admins pass ?all=true.
func ListVehicleClasses(c *gin.Context) {
	query := config.DB.Order("base_fare ASC")
	if c.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}

	var classes []models.VehicleClass
	if err := query.Find(&classes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicle classes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": classes})
}

// UpdateVehicleClass modifies a tier's pricing or availability.
func UpdateVehicleClass(c *gin.Context) {
	id := c.Param("id")

	var class models.VehicleClass
	if err := config.DB.First(&class, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle class not found"})
		return
	}

	var input struct {
		DisplayName *string `json:"display_name"`
		BaseFare    *int64  `json:"base_fare"`
		PerKM       *int64  `json:"per_km"`
		UpgradeFee  *int64  `json:"upgrade_fee"`
		Capacity    *int    `json:"capacity"`
		Active      *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	if input.DisplayName != nil {
		class.DisplayName = *input.DisplayName
	}
	if input.BaseFare != nil {
		class.BaseFare = *input.BaseFare
	}
	if input.PerKM != nil {
		class.PerKM = *input.PerKM
	}
	if input.UpgradeFee != nil {
		class.UpgradeFee = *input.UpgradeFee
	}
	if input.Capacity != nil {
		class.Capacity = *input.Capacity
	}
	if input.Active != nil {
		class.Active = *input.Active
	}

	config.DB.Save(&class)
	c.JSON(http.StatusOK, gin.H{"vehicle_class": class})
}

// DeleteVehicleClass soft-disables a tier rather than removing rows that
// bookings reference.
func DeleteVehicleClass(c *gin.Context) {
	id := c.Param("id")

	var class models.VehicleClass
	if err := config.DB.First(&class, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle class not found"})
		return
	}

	class.Active = false
	config.DB.Save(&class)
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle class disabled"})
}
