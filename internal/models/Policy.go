package models

import (
	"time"

	"gorm.io/gorm"
)

// Policy is versioned legal text (terms, privacy, cancellation policy).
// Each new revision of a slug gets version+1; reads default to the latest
// published version.
type Policy struct {
	gorm.Model
	Slug        string     `json:"slug" gorm:"index:idx_policy_slug_version,unique" binding:"required"`
	Version     int        `json:"version" gorm:"index:idx_policy_slug_version,unique"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Published   bool       `json:"published" gorm:"default:false"`
	EffectiveAt *time.Time `json:"effective_at,omitempty"`
}
