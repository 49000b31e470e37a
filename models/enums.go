package models

// Invoice status machine. "issued" triggers a fresh sync; the
// cancelled-class statuses trigger the return flow when the previous
// status was issued or balanced.
const (
	InvoiceStatusDraft          = "draft"
	InvoiceStatusIssued         = "issued"
	InvoiceStatusBalanced       = "balanced"
	InvoiceStatusCancelled      = "cancelled"
	InvoiceStatusEnteredInError = "entered_in_error"
	InvoiceStatusVoided         = "voided"
)

var InvoiceCancelledStatuses = []string{
	InvoiceStatusCancelled,
	InvoiceStatusEnteredInError,
	InvoiceStatusVoided,
}

var InvoiceReturnableFrom = []string{
	InvoiceStatusIssued,
	InvoiceStatusBalanced,
}

const (
	PaymentStatusDraft          = "draft"
	PaymentStatusActive         = "active"
	PaymentStatusCancelled      = "cancelled"
	PaymentStatusEnteredInError = "entered_in_error"
)

// FHIR payment method codes as recorded on PaymentReconciliation.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCCCA = "ccca" // credit card
	PaymentMethodCCHK = "cchk" // certified check
	PaymentMethodCDAC = "cdac" // checking/debit account
	PaymentMethodCHCK = "chck" // check
	PaymentMethodDDPO = "ddpo" // direct deposit / payment order
	PaymentMethodDEBC = "debc" // debit card
)

const IssuerTypeInsurer = "insurer"

// Price-component kinds attached to charge items and definitions.
const (
	MonetaryComponentBase          = "base"
	MonetaryComponentSurcharge     = "surcharge"
	MonetaryComponentDiscount      = "discount"
	MonetaryComponentTax           = "tax"
	MonetaryComponentInformational = "informational"
)

// Inner codes of informational components.
const (
	InformationalCodePurchasePrice = "purchase_price"
	InformationalCodeMRP           = "mrp"
)

const OrgTypeProductSupplier = "product_supplier"

const ResourceCategoryTypeChargeItemDefinition = "charge_item_definition"

const (
	DeliveryOrderStatusCompleted  = "completed"
	SupplyDeliveryStatusCompleted = "completed"
)

// Service resources a charge item can originate from; used to resolve the
// performing agent for invoice lines.
const (
	ChargeItemResourceServiceRequest     = "service_request"
	ChargeItemResourceAppointment        = "appointment"
	ChargeItemResourceMedicationDispense = "medication_dispense"
)

const (
	DefinitionStatusActive  = "active"
	DefinitionStatusRetired = "retired"
	DefinitionStatusDraft   = "draft"
)
