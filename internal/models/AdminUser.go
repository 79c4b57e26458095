package models

import "gorm.io/gorm"

// AdminUser extends a User with a back-office role and permission grants.
type AdminUser struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Role        string `json:"role"` // "superadmin", "manager", "support"
	Permissions []byte `json:"permissions" gorm:"type:jsonb"`
}
