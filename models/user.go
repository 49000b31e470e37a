package models

import "time"

type User struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	ExternalId  string    `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Username    string    `gorm:"size:150;uniqueIndex" json:"username"`
	Prefix      string    `gorm:"size:50" json:"prefix"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Suffix      string    `gorm:"size:50" json:"suffix"`
	Email       string    `gorm:"size:255" json:"email"`
	PhoneNumber string    `gorm:"size:30" json:"phone_number"`
	Deleted     bool      `gorm:"default:false" json:"deleted"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
