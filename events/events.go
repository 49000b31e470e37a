// Package events is the dispatch table between host-record lifecycle hooks
// and the Odoo sync resources. Handlers are registered against a closed set
// of (entity, status) keys at startup; model hooks fire events through
// Dispatch inside the host write's transaction, so a handler error aborts
// the originating write.
package events

import (
	"sync"

	"gorm.io/gorm"
)

type Entity string

const (
	EntityUser                 Entity = "user"
	EntityInvoice              Entity = "invoice"
	EntityPayment              Entity = "payment_reconciliation"
	EntityChargeItemDefinition Entity = "charge_item_definition"
	EntityResourceCategory     Entity = "resource_category"
	EntityOrganization         Entity = "organization"
	EntityDeliveryOrder        Entity = "delivery_order"
	EntityProduct              Entity = "product"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// AnyStatus matches regardless of the record's status field. Entities
// without a status machine register under it.
const AnyStatus = "*"

type Event struct {
	Entity Entity
	Action Action
	// Status is the record's status after the write; empty for entities
	// without one.
	Status string
	// PreviousStatus is the persisted status before the write, captured in
	// the pre-update phase. Empty on create.
	PreviousStatus string
	// Record is the saved model instance (*models.Invoice etc.).
	Record any
}

type Handler func(tx *gorm.DB, ev Event) error

type key struct {
	entity Entity
	status string
}

var (
	mu       sync.RWMutex
	handlers = map[key][]Handler{}
)

// Register binds a handler to (entity, status). status may be AnyStatus.
// Multiple handlers per key run in registration order.
func Register(entity Entity, status string, h Handler) {
	mu.Lock()
	defer mu.Unlock()
	k := key{entity: entity, status: status}
	handlers[k] = append(handlers[k], h)
}

// Reset drops all registrations. Test use only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[key][]Handler{}
}

// Dispatch runs the handlers registered for the event's exact status, then
// the AnyStatus handlers. The first handler error stops dispatch and
// propagates to the caller (the host write).
func Dispatch(tx *gorm.DB, ev Event) error {
	mu.RLock()
	exact := append([]Handler(nil), handlers[key{entity: ev.Entity, status: ev.Status}]...)
	catchAll := append([]Handler(nil), handlers[key{entity: ev.Entity, status: AnyStatus}]...)
	mu.RUnlock()

	for _, h := range exact {
		if err := h(tx, ev); err != nil {
			return err
		}
	}
	for _, h := range catchAll {
		if err := h(tx, ev); err != nil {
			return err
		}
	}
	return nil
}
