package models

import "gorm.io/gorm"

// Customer is the profile attached to an account at registration.
// Exactly one per user.
type Customer struct {
	gorm.Model
	UserID    int    `json:"userId" gorm:"uniqueIndex"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
