package models

import (
	"time"

	"gorm.io/gorm"
)

// Categories is the fixed set of establishment types a business may declare.
var Categories = []string{
	"Restaurante", "Café", "Loja", "Serviços",
	"Saúde", "Educação", "Entretenimento", "Outro",
}

// Business represents an establishment listed on the platform.
//
// Photos holds the blob names of the uploaded originals, in upload order.
// Derivative URLs are computed from these names, never stored.
// IsActive is the soft-delete flag: inactive businesses are excluded from
// listings and detail reads but stay addressable for referential cleanup.
type Business struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Category    string   `json:"category" validate:"required,oneof=Restaurante Café Loja Serviços Saúde Educação Entretenimento Outro"`
	Street      string   `json:"street" validate:"required,min=5,max=200"`
	PostalCode  string   `json:"postal_code" validate:"required,postalcode"`
	Phone       string   `json:"phone" validate:"required,numeric,min=9,max=15"`
	Email       string   `json:"email" validate:"required,email"`
	Website     string   `json:"website" validate:"omitempty,url"`
	Description string   `json:"description" validate:"required,max=1000"`
	Photos      []string `json:"photos" gorm:"serializer:json"`
	OwnerID     string   `json:"owner_id" gorm:"index;type:varchar(36)"`
	IsActive    bool     `json:"is_active"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// PublicView is the concealed projection served to unauthenticated listing
// requests: contact fields stripped, only the first photo kept.
type PublicView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Street      string    `json:"street"`
	PostalCode  string    `json:"postal_code"`
	Description string    `json:"description"`
	Photos      []string  `json:"photos"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public returns the concealed projection of b.
func (b *Business) Public() PublicView {
	photos := b.Photos
	if len(photos) > 1 {
		photos = photos[:1]
	}
	if photos == nil {
		photos = []string{}
	}
	return PublicView{
		ID:          b.ID,
		Name:        b.Name,
		Category:    b.Category,
		Street:      b.Street,
		PostalCode:  b.PostalCode,
		Description: b.Description,
		Photos:      photos,
		CreatedAt:   b.CreatedAt,
	}
}
