package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ridebook/internal/config"
	"ridebook/internal/models"
)

// CreatePolicyVersion adds a new revision of a policy slug. The version
// number is one past the current highest for that slug.
func CreatePolicyVersion(c *gin.Context) {
	var input struct {
		Slug  string `json:"slug" binding:"required"`
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	var latest models.Policy
	version := 1
	err := tx.Where("slug = ?", input.Slug).Order("version DESC").First(&latest).Error
	switch {
	case err == nil:
		version = latest.Version + 1
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first revision
	default:
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	policy := models.Policy{
		Slug:    input.Slug,
		Version: version,
		Title:   input.Title,
		Body:    input.Body,
	}
	if err := tx.Create(&policy).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create policy: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"policy": policy})
}

// ListPolicyVersions lists every revision of a slug, newest first.
func ListPolicyVersions(c *gin.Context) {
	slug := c.Param("slug")

	var policies []models.Policy
	if err := config.DB.Where("slug = ?", slug).Order("version DESC").Find(&policies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch policies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": policies})
}

// PublishPolicy marks a revision published and effective now.
func PublishPolicy(c *gin.Context) {
	id := c.Param("id")

	var policy models.Policy
	if err := config.DB.First(&policy, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Policy not found"})
		return
	}

	now := time.Now()
	policy.Published = true
	policy.EffectiveAt = &now
	if err := config.DB.Save(&policy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Publish failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

// GetPublishedPolicy serves the latest published revision of a slug to
// customers (unauthenticated).
func GetPublishedPolicy(c *gin.Context) {
	slug := c.Param("slug")

	var policy models.Policy
	if err := config.DB.Where("slug = ? AND published = ?", slug, true).
		Order("version DESC").First(&policy).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No published policy for this slug"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}
