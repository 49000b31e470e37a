package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// apiDateLayout is the dd-mm-yyyy format the addon expects on account
// moves.
const apiDateLayout = "02-01-2006"

type invoiceAction int

const (
	invoiceActionNone invoiceAction = iota
	invoiceActionSync
	invoiceActionReturn
)

// invoiceActionForTransition decides what an invoice status transition
// means for Odoo. A fresh "issued" pushes the invoice; moving from a
// billed status into a cancelled-class status reverses it. Cancelling a
// draft never reached Odoo and does nothing.
func invoiceActionForTransition(previous, next string) invoiceAction {
	if next == models.InvoiceStatusIssued && previous != models.InvoiceStatusIssued {
		return invoiceActionSync
	}
	cancelled := false
	for _, s := range models.InvoiceCancelledStatuses {
		if next == s {
			cancelled = true
			break
		}
	}
	if !cancelled {
		return invoiceActionNone
	}
	for _, s := range models.InvoiceReturnableFrom {
		if previous == s {
			return invoiceActionReturn
		}
	}
	return invoiceActionNone
}

// InvoiceResource mirrors issued invoices to Odoo customer account moves
// and cancelled invoices to reversals.
type InvoiceResource struct {
	Deps
}

func (r *InvoiceResource) loadInvoice(db *gorm.DB, externalId string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := db.Preload("Patient").Preload("Facility").
		Where("external_id = ?", externalId).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError(fmt.Sprintf("invoice %s not found", externalId))
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// resolveAgentId finds the commission agent for a charge item by walking
// back to the clinical record that produced it.
func resolveAgentId(db *gorm.DB, chargeItem *models.ChargeItem) (string, error) {
	switch chargeItem.ServiceResource {
	case models.ChargeItemResourceServiceRequest:
		var sr models.ServiceRequest
		err := db.Preload("Requester").
			Where("external_id = ?", chargeItem.ServiceResourceId).First(&sr).Error
		if err != nil {
			return "", err
		}
		if sr.Requester != nil {
			return sr.Requester.ExternalId, nil
		}
	case models.ChargeItemResourceAppointment:
		var booking models.TokenBooking
		err := db.Preload("Practitioner").
			Where("external_id = ?", chargeItem.ServiceResourceId).First(&booking).Error
		if err != nil {
			return "", err
		}
		if booking.Practitioner != nil {
			return booking.Practitioner.ExternalId, nil
		}
	case models.ChargeItemResourceMedicationDispense:
		var dispense models.MedicationDispense
		err := db.Preload("AuthorizingRequest.Requester").
			Where("external_id = ?", chargeItem.ServiceResourceId).First(&dispense).Error
		if err != nil {
			return "", err
		}
		if dispense.AuthorizingRequest != nil && dispense.AuthorizingRequest.Requester != nil {
			return dispense.AuthorizingRequest.Requester.ExternalId, nil
		}
	}
	return "", nil
}

func (r *InvoiceResource) buildInvoiceItems(db *gorm.DB, invoice *models.Invoice) ([]InvoiceItem, error) {
	var chargeItems []models.ChargeItem
	err := db.Preload("ChargeItemDefinition.Category.Parent").
		Where("paid_invoice_id = ?", invoice.ID).Find(&chargeItems).Error
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceItem, 0, len(chargeItems))
	for i := range chargeItems {
		chargeItem := &chargeItems[i]
		if chargeItem.ChargeItemDefinition == nil {
			continue
		}

		// Invoice lines must carry a real base price.
		basePrice, err := BasePriceStrict(chargeItem.UnitPriceComponents)
		if err != nil {
			return nil, err
		}

		productData, err := productDataFor(db, chargeItem.ChargeItemDefinition, "")
		if err != nil {
			return nil, err
		}

		discounts, err := AllDiscounts(chargeItem.UnitPriceComponents, chargeItem.TotalPriceComponents)
		if err != nil {
			return nil, err
		}

		agentId, err := resolveAgentId(db, chargeItem)
		if err != nil {
			return nil, err
		}

		items = append(items, InvoiceItem{
			ProductData: productData,
			Quantity:    chargeItem.Quantity.String(),
			SalePrice:   basePrice,
			FreeQty:     "0.0",
			XCareId:     chargeItem.ExternalId,
			AgentId:     agentId,
			Discounts:   discounts,
		})
	}
	return items, nil
}

// SyncInvoice pushes an issued invoice to Odoo and writes the assigned
// invoice number back onto the host record. A reconciliation check is
// scheduled after the push so an orphaned Odoo invoice gets reversed if
// the host transaction rolls back.
func (r *InvoiceResource) SyncInvoice(ctx context.Context, db *gorm.DB, externalId string) (int, error) {
	invoice, err := r.loadInvoice(db, externalId)
	if err != nil {
		return 0, err
	}

	state := DefaultState
	if invoice.Facility != nil && invoice.Facility.State != "" {
		state = invoice.Facility.State
	}
	partner := PartnerData{
		Name:        invoice.Patient.Name,
		XCareId:     invoice.Patient.ExternalId,
		PartnerType: PartnerTypePerson,
		Phone:       utils.NormalizePhone(invoice.Patient.PhoneNumber),
		State:       state,
		Agent:       false,
	}

	items, err := r.buildInvoiceItems(db, invoice)
	if err != nil {
		return 0, err
	}

	data := AccountMoveRequest{
		XCareId:      invoice.ExternalId,
		BillType:     BillTypeCustomer,
		InvoiceDate:  invoice.CreatedDate.Format(apiDateLayout),
		DueDate:      invoice.CreatedDate.Format(apiDateLayout),
		PartnerData:  partner,
		InvoiceItems: items,
		Reason:       "",
		XIdentifier:  invoice.Patient.OfficialIdentifier,
	}
	return r.pushAccountMove(ctx, db, invoice, data)
}

// pushAccountMove validates and sends a built customer account move,
// schedules the orphan-reconciliation check, and writes the Odoo-assigned
// invoice number back when the response carries one.
func (r *InvoiceResource) pushAccountMove(ctx context.Context, db *gorm.DB, invoice *models.Invoice, data AccountMoveRequest) (int, error) {
	if err := validationErrFromValidator(validate.Struct(data)); err != nil {
		return 0, err
	}

	payload, err := toPayload(data)
	if err != nil {
		return 0, err
	}
	resp, err := r.Odoo.Call(ctx, "api/account/move", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}

	r.scheduleReconciliation(models.JobTargetInvoice, invoice.ExternalId)

	if number := responseString(resp, "invoice", "name"); number != "" {
		err = db.Model(invoice).Select("number").
			Updates(map[string]any{"number": number}).Error
		if err != nil {
			return 0, err
		}
	}
	return responseInt(resp, "invoice", "id")
}

// SyncInvoiceReturn reverses a previously pushed invoice; the host status
// is carried as the reversal reason.
func (r *InvoiceResource) SyncInvoiceReturn(ctx context.Context, db *gorm.DB, externalId string) (int, error) {
	invoice, err := r.loadInvoice(db, externalId)
	if err != nil {
		return 0, err
	}

	data := AccountMoveReturnRequest{
		XCareId: invoice.ExternalId,
		Reason:  invoice.Status,
	}
	payload, err := toPayload(data)
	if err != nil {
		return 0, err
	}
	resp, err := r.Odoo.Call(ctx, "api/account/move/return", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}
	return responseInt(resp, "reverse_invoice", "id")
}
