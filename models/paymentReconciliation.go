package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentReconciliation struct {
	ID              uint            `gorm:"primary_key" json:"id"`
	ExternalId      string          `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Status          string          `gorm:"size:20;index;not null" json:"status"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,6)" json:"amount"`
	Method          string          `gorm:"size:20" json:"method"`
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
	PaymentDatetime time.Time       `json:"payment_datetime"`
	// IsCreditNote marks a refund (money going back to the payer).
	IsCreditNote bool `gorm:"default:false" json:"is_credit_note"`
	// IssuerType is set when a third party (insurer) issues the payment.
	IssuerType      string            `gorm:"size:20" json:"issuer_type"`
	AccountId       uint              `gorm:"index;not null" json:"account_id"`
	Account         *Account          `json:"account,omitempty"`
	TargetInvoiceId *uint             `gorm:"index" json:"target_invoice_id"`
	TargetInvoice   *Invoice          `json:"target_invoice,omitempty"`
	FacilityId      uint              `gorm:"index;not null" json:"facility_id"`
	Facility        *Facility         `json:"facility,omitempty"`
	LocationId      uint              `gorm:"index;not null" json:"location_id"`
	Location        *FacilityLocation `json:"location,omitempty"`
	CreatedById     uint              `gorm:"index" json:"created_by_id"`
	CreatedBy       *User             `json:"created_by,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	previousStatus string `gorm:"-"`
}
