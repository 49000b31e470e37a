package resources

import (
	"context"

	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/events"
	"github.com/ohcnetwork/care_odoo_bridge/models"
)

// hookCtx recovers the request context the host write is running under.
func hookCtx(tx *gorm.DB) context.Context {
	if tx != nil && tx.Statement != nil && tx.Statement.Context != nil {
		return tx.Statement.Context
	}
	return context.Background()
}

// RegisterSyncHooks binds the Odoo sync resources to host lifecycle
// events. Handlers run inside the host write's transaction and receive it,
// so payload builders see uncommitted data; an error rolls the host write
// back.
func RegisterSyncHooks(deps Deps) {
	users := &UserResource{Deps: deps}
	partners := &PartnerResource{Deps: deps}
	categories := &CategoryResource{Deps: deps}
	products := &ProductResource{Deps: deps}
	invoices := &InvoiceResource{Deps: deps}
	payments := &PaymentResource{Deps: deps}
	deliveryOrders := &DeliveryOrderResource{Deps: deps}

	events.Register(events.EntityUser, events.AnyStatus, func(tx *gorm.DB, ev events.Event) error {
		user, ok := ev.Record.(*models.User)
		if !ok {
			return nil
		}
		_, err := users.SyncUser(hookCtx(tx), user)
		return err
	})

	events.Register(events.EntityInvoice, events.AnyStatus, func(tx *gorm.DB, ev events.Event) error {
		invoice, ok := ev.Record.(*models.Invoice)
		if !ok {
			return nil
		}
		switch invoiceActionForTransition(ev.PreviousStatus, ev.Status) {
		case invoiceActionSync:
			_, err := invoices.SyncInvoice(hookCtx(tx), tx, invoice.ExternalId)
			return err
		case invoiceActionReturn:
			_, err := invoices.SyncInvoiceReturn(hookCtx(tx), tx, invoice.ExternalId)
			return err
		}
		return nil
	})

	events.Register(events.EntityPayment, models.PaymentStatusActive, func(tx *gorm.DB, ev events.Event) error {
		payment, ok := ev.Record.(*models.PaymentReconciliation)
		if !ok {
			return nil
		}
		_, err := payments.SyncPayment(hookCtx(tx), tx, payment.ExternalId)
		return err
	})
	cancelPayment := func(tx *gorm.DB, ev events.Event) error {
		payment, ok := ev.Record.(*models.PaymentReconciliation)
		if !ok {
			return nil
		}
		_, err := payments.SyncPaymentCancel(hookCtx(tx), payment)
		return err
	}
	events.Register(events.EntityPayment, models.PaymentStatusCancelled, cancelPayment)
	events.Register(events.EntityPayment, models.PaymentStatusEnteredInError, cancelPayment)

	events.Register(events.EntityChargeItemDefinition, events.AnyStatus, func(tx *gorm.DB, ev events.Event) error {
		definition, ok := ev.Record.(*models.ChargeItemDefinition)
		if !ok {
			return nil
		}
		_, err := products.SyncDefinition(hookCtx(tx), tx, definition, "")
		return err
	})

	events.Register(events.EntityResourceCategory, events.AnyStatus, func(tx *gorm.DB, ev events.Event) error {
		category, ok := ev.Record.(*models.ResourceCategory)
		if !ok {
			return nil
		}
		if category.ResourceType != models.ResourceCategoryTypeChargeItemDefinition {
			return nil
		}
		_, err := categories.SyncCategory(hookCtx(tx), tx, category)
		return err
	})

	events.Register(events.EntityOrganization, events.AnyStatus, func(tx *gorm.DB, ev events.Event) error {
		org, ok := ev.Record.(*models.Organization)
		if !ok {
			return nil
		}
		if org.OrgType != models.OrgTypeProductSupplier {
			return nil
		}
		_, err := partners.SyncOrganization(hookCtx(tx), org)
		return err
	})

	events.Register(events.EntityDeliveryOrder, models.DeliveryOrderStatusCompleted, func(tx *gorm.DB, ev events.Event) error {
		order, ok := ev.Record.(*models.DeliveryOrder)
		if !ok {
			return nil
		}
		// Orders with an origin reference are fulfillments of a purchase
		// order already known to Odoo.
		if order.Origin != nil && *order.Origin != "" {
			return nil
		}
		_, err := deliveryOrders.SyncDeliveryOrder(hookCtx(tx), tx, order.ExternalId)
		return err
	})

	events.Register(events.EntityProduct, events.AnyStatus, func(tx *gorm.DB, ev events.Event) error {
		product, ok := ev.Record.(*models.Product)
		if !ok {
			return nil
		}
		_, err := products.SyncProduct(hookCtx(tx), tx, product)
		return err
	})
}
