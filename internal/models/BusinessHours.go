package models

import "gorm.io/gorm"

// BusinessHours holds one row per weekday (0 = Sunday).
type BusinessHours struct {
	gorm.Model
	Weekday int    `json:"weekday" gorm:"uniqueIndex"`
	Open    string `json:"open"`  // "HH:MM"
	Close   string `json:"close"` // "HH:MM"
	Closed  bool   `json:"closed" gorm:"default:false"`
}
