package models

import "time"

type Facility struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	ExternalId string    `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	State      string    `gorm:"size:100" json:"state"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FacilityLocation is a physical location inside a facility; cash counters
// are locations.
type FacilityLocation struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	ExternalId string    `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	FacilityId uint      `gorm:"index;not null" json:"facility_id"`
	Facility   *Facility `json:"facility,omitempty"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FacilityUser grants a user access to a facility and its locations.
type FacilityUser struct {
	ID         uint `gorm:"primary_key" json:"id"`
	FacilityId uint `gorm:"uniqueIndex:idx_facility_user;not null" json:"facility_id"`
	UserId     uint `gorm:"uniqueIndex:idx_facility_user;not null" json:"user_id"`
}
