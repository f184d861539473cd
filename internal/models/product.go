package models

import "time"

// Size is a garment size. Only the values in Sizes are valid.
type Size string

const (
	SizeP  Size = "P"
	SizeM  Size = "M"
	SizeG  Size = "G"
	SizeGG Size = "GG"
)

// Sizes lists the accepted sizes in display order.
var Sizes = []Size{SizeP, SizeM, SizeG, SizeGG}

// Product represents a clothing item in the store.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Price     float64   `json:"price" gorm:"not null" validate:"gte=0"`
	Size      Size      `json:"size" gorm:"type:varchar(2);not null;check:size IN ('P','M','G','GG')" validate:"required,oneof=P M G GG"`
	Stock     int       `json:"stock" gorm:"default:0" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// ProductChanges names the product fields to update. Nil fields are left untouched.
type ProductChanges struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Size  *Size    `json:"size,omitempty"`
	Stock *int     `json:"stock,omitempty"`
}
