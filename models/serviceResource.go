package models

import "time"

// The three clinical records a charge item can originate from. Only the
// fields the billing sync needs (who the performing agent is) are kept.

type ServiceRequest struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	ExternalId  string    `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	RequesterId *uint     `gorm:"index" json:"requester_id"`
	Requester   *User     `json:"requester,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type TokenBooking struct {
	ID             uint      `gorm:"primary_key" json:"id"`
	ExternalId     string    `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	PractitionerId *uint     `gorm:"index" json:"practitioner_id"`
	Practitioner   *User     `json:"practitioner,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type MedicationDispense struct {
	ID                    uint            `gorm:"primary_key" json:"id"`
	ExternalId            string          `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	AuthorizingRequestId  *uint           `gorm:"index" json:"authorizing_request_id"`
	AuthorizingRequest    *ServiceRequest `json:"authorizing_request,omitempty"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
