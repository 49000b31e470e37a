package models

import (
	"github.com/ohcnetwork/care_odoo_bridge/events"
	"gorm.io/gorm"
)

// GORM lifecycle hooks. Every entity the Odoo sync cares about dispatches
// an event after create/update; registered handlers run inside the same
// transaction, so a handler error rolls the host write back.
//
// Status-carrying entities (invoice, payment) capture the persisted status
// in BeforeUpdate so handlers can key on the transition rather than just
// the new value.

func dispatchCreate(tx *gorm.DB, entity events.Entity, status string, record any) error {
	return events.Dispatch(tx, events.Event{
		Entity: entity,
		Action: events.ActionCreated,
		Status: status,
		Record: record,
	})
}

func dispatchUpdate(tx *gorm.DB, entity events.Entity, status, previous string, record any) error {
	return events.Dispatch(tx, events.Event{
		Entity:         entity,
		Action:         events.ActionUpdated,
		Status:         status,
		PreviousStatus: previous,
		Record:         record,
	})
}

func (u *User) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityUser, "", u)
}

func (u *User) AfterUpdate(tx *gorm.DB) error {
	return dispatchUpdate(tx, events.EntityUser, "", "", u)
}

func (inv *Invoice) BeforeUpdate(tx *gorm.DB) error {
	if NumberOnlyUpdate(tx.Statement.Selects) {
		return nil
	}
	var stored Invoice
	err := tx.Session(&gorm.Session{NewDB: true}).
		Select("status").
		Where("id = ?", inv.ID).
		First(&stored).Error
	if err != nil {
		return err
	}
	inv.previousStatus = stored.Status
	return nil
}

func (inv *Invoice) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityInvoice, inv.Status, inv)
}

func (inv *Invoice) AfterUpdate(tx *gorm.DB) error {
	// The Odoo number write-back updates only the number column and must
	// not re-trigger the invoice sync.
	if NumberOnlyUpdate(tx.Statement.Selects) {
		return nil
	}
	return dispatchUpdate(tx, events.EntityInvoice, inv.Status, inv.previousStatus, inv)
}

func (p *PaymentReconciliation) BeforeUpdate(tx *gorm.DB) error {
	var stored PaymentReconciliation
	err := tx.Session(&gorm.Session{NewDB: true}).
		Select("status").
		Where("id = ?", p.ID).
		First(&stored).Error
	if err != nil {
		return err
	}
	p.previousStatus = stored.Status
	return nil
}

func (p *PaymentReconciliation) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityPayment, p.Status, p)
}

func (p *PaymentReconciliation) AfterUpdate(tx *gorm.DB) error {
	return dispatchUpdate(tx, events.EntityPayment, p.Status, p.previousStatus, p)
}

func (d *ChargeItemDefinition) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityChargeItemDefinition, d.Status, d)
}

func (d *ChargeItemDefinition) AfterUpdate(tx *gorm.DB) error {
	return dispatchUpdate(tx, events.EntityChargeItemDefinition, d.Status, "", d)
}

func (c *ResourceCategory) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityResourceCategory, "", c)
}

func (c *ResourceCategory) AfterUpdate(tx *gorm.DB) error {
	return dispatchUpdate(tx, events.EntityResourceCategory, "", "", c)
}

func (o *Organization) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityOrganization, "", o)
}

func (o *Organization) AfterUpdate(tx *gorm.DB) error {
	return dispatchUpdate(tx, events.EntityOrganization, "", "", o)
}

func (d *DeliveryOrder) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityDeliveryOrder, d.Status, d)
}

func (d *DeliveryOrder) AfterUpdate(tx *gorm.DB) error {
	return dispatchUpdate(tx, events.EntityDeliveryOrder, d.Status, "", d)
}

func (p *Product) AfterCreate(tx *gorm.DB) error {
	return dispatchCreate(tx, events.EntityProduct, "", p)
}

func (p *Product) AfterUpdate(tx *gorm.DB) error {
	return dispatchUpdate(tx, events.EntityProduct, "", "", p)
}
