package models

import "time"

// Favorite links a user to a business they marked as favourite.
//
// BusinessName and BusinessCategory are denormalized snapshots copied from
// the business at creation time so favourite listings render without a join.
// They must be rewritten whenever the referenced business changes; the
// favourite itself must be removed when the business is deleted. Unlike the
// other models there is no soft delete here: a removed favourite must free
// its (user, business) slot.
type Favorite struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID           string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_business;type:varchar(36)"`
	BusinessID       string    `json:"business_id" gorm:"index;uniqueIndex:idx_user_business;type:varchar(36)"`
	BusinessName     string    `json:"business_name"`
	BusinessCategory string    `json:"business_category"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FavoriteWithBusiness pairs a favourite with the live business record for
// fields that are not denormalized onto the favourite itself.
type FavoriteWithBusiness struct {
	Favorite Favorite `json:"favorite"`
	Business Business `json:"business"`
}
