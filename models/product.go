package models

import "time"

// Product is a stocked item. It syncs to Odoo only through its linked
// charge item definition; AlternateIdentifier carries the HSN code.
type Product struct {
	ID                     uint                  `gorm:"primary_key" json:"id"`
	ExternalId             string                `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Name                   string                `gorm:"size:255" json:"name"`
	ChargeItemDefinitionId *uint                 `gorm:"index" json:"charge_item_definition_id"`
	ChargeItemDefinition   *ChargeItemDefinition `json:"charge_item_definition,omitempty"`
	AlternateIdentifier    string                `gorm:"size:64" json:"alternate_identifier"`
	CreatedAt              time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}
