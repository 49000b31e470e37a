package models

import "time"

type Patient struct {
	ID          uint       `gorm:"primary_key" json:"id"`
	ExternalId  string     `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	PhoneNumber string     `gorm:"size:30" json:"phone_number"`
	Gender      string     `gorm:"size:20" json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	// Government-issued identifier; which identifier is official is
	// decided by host configuration.
	OfficialIdentifier string    `gorm:"size:64" json:"official_identifier"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
