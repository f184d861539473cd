package models

import "time"

// Supplier represents a company the store buys from. TaxID holds the
// 14-digit registration number, digits only, and is unique.
type Supplier struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	TaxID     string    `json:"tax_id" gorm:"type:varchar(14);uniqueIndex;not null" validate:"tax_id"`
	Email     string    `json:"email" validate:"omitempty,loose_email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// SupplierChanges names the supplier fields to update.
type SupplierChanges struct {
	Name     *string `json:"name,omitempty"`
	TaxID    *string `json:"tax_id,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Category *string `json:"category,omitempty"`
}
