package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryOrderExtension carries vendor bill details entered at goods
// receipt time.
type DeliveryOrderExtension struct {
	VendorBillNumber string `json:"vendor_bill_number,omitempty"`
	VendorBillDate   string `json:"vendor_bill_date,omitempty"`
	TotalDiscount    string `json:"total_discount,omitempty"`
}

func (e DeliveryOrderExtension) Value() (driver.Value, error) {
	return jsonValue(e)
}

func (e *DeliveryOrderExtension) Scan(value interface{}) error {
	return jsonScan(value, e)
}

// DeliveryOrder is an inbound goods order from a supplier. It syncs to a
// vendor bill in Odoo when completed, unless the supplier is internal.
type DeliveryOrder struct {
	ID         uint   `gorm:"primary_key" json:"id"`
	ExternalId string `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Status     string `gorm:"size:20;index;not null" json:"status"`
	// Origin is the purchase order reference this delivery fulfills.
	Origin     *string                `gorm:"size:100" json:"origin"`
	SupplierId uint                   `gorm:"index;not null" json:"supplier_id"`
	Supplier   *Organization          `json:"supplier,omitempty"`
	FacilityId uint                   `gorm:"index;not null" json:"facility_id"`
	Facility   *Facility              `json:"facility,omitempty"`
	Extensions DeliveryOrderExtension `gorm:"type:json" json:"extensions"`
	CreatedAt  time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
}

type SupplyDeliveryExtension struct {
	FreeQuantity     string `json:"free_quantity,omitempty"`
	PurchaseDiscount string `json:"purchase_discount,omitempty"`
}

func (e SupplyDeliveryExtension) Value() (driver.Value, error) {
	return jsonValue(e)
}

func (e *SupplyDeliveryExtension) Scan(value interface{}) error {
	return jsonScan(value, e)
}

// SupplyDelivery is one delivered item line under a delivery order.
type SupplyDelivery struct {
	ID                   uint                    `gorm:"primary_key" json:"id"`
	ExternalId           string                  `gorm:"size:36;uniqueIndex;not null" json:"external_id"`
	Status               string                  `gorm:"size:20;index;not null" json:"status"`
	DeliveryOrderId      uint                    `gorm:"index;not null" json:"delivery_order_id"`
	DeliveryOrder        *DeliveryOrder          `json:"delivery_order,omitempty"`
	SuppliedItemId       uint                    `gorm:"index;not null" json:"supplied_item_id"`
	SuppliedItem         *Product                `json:"supplied_item,omitempty"`
	SuppliedItemQuantity decimal.Decimal         `gorm:"type:decimal(20,6)" json:"supplied_item_quantity"`
	Extensions           SupplyDeliveryExtension `gorm:"type:json" json:"extensions"`
	CreatedAt            time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}
