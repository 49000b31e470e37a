package models

import "time"

// ResourceCategory is a tree of catalog categories. Only categories with
// ResourceType charge_item_definition are mirrored to Odoo.
type ResourceCategory struct {
	ID           uint              `gorm:"primary_key" json:"id"`
	ExternalId   string            `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Title        string            `gorm:"size:255;not null" json:"title"`
	ResourceType string            `gorm:"size:50;index" json:"resource_type"`
	ParentId     *uint             `gorm:"index" json:"parent_id"`
	Parent       *ResourceCategory `json:"parent,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
