package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebook/internal/config"
	"ridebook/internal/models"
)

// integrationResponse redacts credential values; the admin UI only needs
// to know which keys are configured.
func integrationResponse(i models.Integration) gin.H {
	keys := []string{}
	var creds map[string]interface{}
	if len(i.Credentials) > 0 {
		if err := json.Unmarshal(i.Credentials, &creds); err == nil {
			for k := range creds {
				keys = append(keys, k)
			}
		}
	}
	return gin.H{
		"ID":              i.ID,
		"CreatedAt":       i.CreatedAt,
		"UpdatedAt":       i.UpdatedAt,
		"provider":        i.Provider,
		"display_name":    i.DisplayName,
		"enabled":         i.Enabled,
		"credential_keys": keys,
	}
}

// CreateIntegration stores a third-party credential configuration.
func CreateIntegration(c *gin.Context) {
	var input struct {
		Provider    string                 `json:"provider" binding:"required"`
		DisplayName string                 `json:"display_name"`
		Credentials map[string]interface{} `json:"credentials"`
		Enabled     bool                   `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credsJSON, _ := json.Marshal(input.Credentials)
	integration := models.Integration{
		Provider:    input.Provider,
		DisplayName: input.DisplayName,
		Credentials: credsJSON,
		Enabled:     input.Enabled,
	}
	if err := config.DB.Create(&integration).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "integration for this provider already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create integration: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"integration": integrationResponse(integration)})
}

// ListIntegrations lists configured providers, credentials redacted.
func ListIntegrations(c *gin.Context) {
	var integrations []models.Integration
	if err := config.DB.Order("provider ASC").Find(&integrations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch integrations"})
		return
	}

	out := make([]gin.H, 0, len(integrations))
	for _, i := range integrations {
		out = append(out, integrationResponse(i))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// UpdateIntegration replaces credentials and/or toggles the provider.
func UpdateIntegration(c *gin.Context) {
	id := c.Param("id")

	var integration models.Integration
	if err := config.DB.First(&integration, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}

	var input struct {
		DisplayName *string                `json:"display_name"`
		Credentials map[string]interface{} `json:"credentials"`
		Enabled     *bool                  `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.DisplayName != nil {
		integration.DisplayName = *input.DisplayName
	}
	if input.Credentials != nil {
		credsJSON, _ := json.Marshal(input.Credentials)
		integration.Credentials = credsJSON
	}
	if input.Enabled != nil {
		integration.Enabled = *input.Enabled
	}

	if err := config.DB.Save(&integration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"integration": integrationResponse(integration)})
}

// DeleteIntegration removes a provider configuration.
func DeleteIntegration(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Integration{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete integration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Integration deleted"})
}
