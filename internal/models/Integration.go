package models

import "gorm.io/gorm"

// Integration is a third-party credential configuration managed by admins.
// Credentials is a JSON object; values are redacted on read.
type Integration struct {
	gorm.Model
	Provider    string `json:"provider" gorm:"uniqueIndex" binding:"required"`
	DisplayName string `json:"display_name"`
	Credentials []byte `json:"-" gorm:"type:jsonb"`
	Enabled     bool   `json:"enabled" gorm:"default:false"`
}
