package models

import (
	"strings"
	"time"
)

type Invoice struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	ExternalId string    `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Status     string    `gorm:"size:20;index;not null" json:"status"`
	// Number is the Odoo-assigned invoice number, written back after a
	// successful sync.
	Number      *string   `gorm:"size:64" json:"number"`
	PatientId   uint      `gorm:"index;not null" json:"patient_id"`
	Patient     *Patient  `json:"patient,omitempty"`
	FacilityId  uint      `gorm:"index;not null" json:"facility_id"`
	Facility    *Facility `json:"facility,omitempty"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// previousStatus is captured by BeforeUpdate from the persisted row so
	// the post-update dispatch can see the transition. Never stored.
	previousStatus string `gorm:"-"`
}

func (inv *Invoice) IsCancelledStatus() bool {
	for _, s := range InvoiceCancelledStatuses {
		if inv.Status == s {
			return true
		}
	}
	return false
}

// NumberOnlyUpdate reports whether an update's column selection touches
// exactly the Odoo number write-back. Such writes must not re-enter the
// invoice sync hook.
func NumberOnlyUpdate(selects []string) bool {
	return len(selects) == 1 && strings.EqualFold(selects[0], "number")
}
