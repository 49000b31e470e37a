package models

import "time"

// ChargeItemDefinition is the billable catalog entry; it maps to an Odoo
// product.
type ChargeItemDefinition struct {
	ID              uint              `gorm:"primary_key" json:"id"`
	ExternalId      string            `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Title           string            `gorm:"size:255;not null" json:"title"`
	Status          string            `gorm:"size:20;not null" json:"status"`
	CategoryId      uint              `gorm:"index;not null" json:"category_id"`
	Category        *ResourceCategory `json:"category,omitempty"`
	PriceComponents PriceComponents   `gorm:"type:json" json:"price_components"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
