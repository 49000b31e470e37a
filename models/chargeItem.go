package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeItem is one billed service/product instance; invoice lines are
// built from the charge items attached to the paid invoice.
type ChargeItem struct {
	ID                     uint                  `gorm:"primary_key" json:"id"`
	ExternalId             string                `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Quantity               decimal.Decimal       `gorm:"type:decimal(20,6)" json:"quantity"`
	UnitPriceComponents    PriceComponents       `gorm:"type:json" json:"unit_price_components"`
	TotalPriceComponents   PriceComponents       `gorm:"type:json" json:"total_price_components"`
	ChargeItemDefinitionId *uint                 `gorm:"index" json:"charge_item_definition_id"`
	ChargeItemDefinition   *ChargeItemDefinition `json:"charge_item_definition,omitempty"`
	PaidInvoiceId          *uint                 `gorm:"index" json:"paid_invoice_id"`
	// ServiceResource + ServiceResourceId point at the clinical record the
	// charge originated from (service request, appointment, dispense).
	ServiceResource   string    `gorm:"size:50" json:"service_resource"`
	ServiceResourceId string    `gorm:"size:36" json:"service_resource_id"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
