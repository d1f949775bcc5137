package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered person on the platform.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FullName    string    `json:"full_name" validate:"required,min=2,max=100"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string    `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	BirthDate   time.Time `json:"birth_date" validate:"required"`
	Nationality string    `json:"nationality" validate:"required,max=100"`
	Gender      string    `json:"gender" validate:"required,max=50"`
	Phone       string    `json:"phone" validate:"required,numeric,min=9,max=15"`
	Resident    bool      `json:"resident"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt (soft delete)
}
