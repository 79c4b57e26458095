package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name             string `json:"name"`
	Email            string `json:"email" gorm:"unique"`
	Password         string `json:"-"`
	Phone            string `json:"phone"`
	Role             string `json:"role"` // "rider", "driver", "admin"
	StripeCustomerID string `json:"stripe_customer_id,omitempty"`

	// Actor-specific relations
	Driver *Driver    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"driver,omitempty"`
	Admin  *AdminUser `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"admin,omitempty"`
}
