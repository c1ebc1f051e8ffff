package models

import (
	"time"

	"github.com/luckbank/luckbank-backend/pkg/enums"
)

// User represents the canonical customer identity document.
type User struct {
	Base         `bson:",inline"`
	FirstName    string       `bson:"first_name" json:"first_name"`
	LastName     string       `bson:"last_name" json:"last_name"`
	Email        string       `bson:"email" json:"email"`
	PasswordHash string       `bson:"password" json:"-"`
	Phone        string       `bson:"phone" json:"phone"`
	Status       enums.Status `bson:"status" json:"status"`
	IsActive     bool         `bson:"is_active" json:"is_active"`
	LastLogin    *time.Time   `bson:"last_login,omitempty" json:"last_login,omitempty"`
}
