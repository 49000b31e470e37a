package models

import (
	"strconv"
	"time"
)

// Account is the patient billing account. Tags hold tag external ids
// (insurance tagging); Extensions is the plugin extension namespace with
// config-driven keys (insurance company id, Odoo payment method line).
type Account struct {
	ID         uint         `gorm:"primary_key" json:"id"`
	ExternalId string       `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	PatientId  uint         `gorm:"index;not null" json:"patient_id"`
	Patient    *Patient     `json:"patient,omitempty"`
	Tags       StringList   `gorm:"type:json" json:"tags"`
	Extensions ExtensionMap `gorm:"type:json" json:"extensions"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// ExtensionIntStrict reads an integer-valued extension, distinguishing
// "absent" from "present but malformed".
func (a *Account) ExtensionIntStrict(key string) (value int, present bool, err error) {
	raw, ok := a.Extensions.Get(key)
	if !ok {
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return 0, true, convErr
	}
	return n, true, nil
}
