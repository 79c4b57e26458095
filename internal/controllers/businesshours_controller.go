package controllers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"ridebook/internal/config"
	"ridebook/internal/models"
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// GetBusinessHours returns the weekly schedule.
func GetBusinessHours(c *gin.Context) {
	var hours []models.BusinessHours
	if err := config.DB.Order("weekday ASC").Find(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch business hours"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hours})
}

// PutBusinessHours replaces the weekly schedule in one call.
func PutBusinessHours(c *gin.Context) {
	var input struct {
		Days []struct {
			Weekday int    `json:"weekday"`
			Open    string `json:"open"`
			Close   string `json:"close"`
			Closed  bool   `json:"closed"`
		} `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, d := range input.Days {
		if d.Weekday < 0 || d.Weekday > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be 0-6"})
			return
		}
		if !d.Closed && (!hhmmRe.MatchString(d.Open) || !hhmmRe.MatchString(d.Close)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "open/close must be HH:MM"})
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	for _, d := range input.Days {
		row := models.BusinessHours{Weekday: d.Weekday, Open: d.Open, Close: d.Close, Closed: d.Closed}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "close", "closed"}),
		}).Create(&row).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save business hours: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	var hours []models.BusinessHours
	config.DB.Order("weekday ASC").Find(&hours)
	c.JSON(http.StatusOK, gin.H{"data": hours})
}
