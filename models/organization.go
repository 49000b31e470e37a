package models

import (
	"database/sql/driver"
	"time"
)

// OrgContact is the structured slice of organization metadata the sync
// cares about.
type OrgContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	State string `json:"state"`
}

func (c OrgContact) Value() (driver.Value, error) {
	return jsonValue(c)
}

func (c *OrgContact) Scan(src any) error {
	return jsonScan(src, c)
}

type Organization struct {
	ID         uint       `gorm:"primary_key" json:"id"`
	ExternalId string     `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	OrgType    string     `gorm:"size:50;index" json:"org_type"`
	Contact    OrgContact `gorm:"type:json" json:"contact"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
