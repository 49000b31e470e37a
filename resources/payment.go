package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

const paymentDateLayout = "2006-01-02"

// journalForMethod maps FHIR payment method codes onto addon journal
// types. Everything card-like that isn't an actual credit card settles
// through the bank journal.
var journalForMethod = map[string]string{
	models.PaymentMethodCash: JournalCash,
	models.PaymentMethodCCCA: JournalCard,
	models.PaymentMethodCCHK: JournalBank,
	models.PaymentMethodCDAC: JournalBank,
	models.PaymentMethodCHCK: JournalBank,
	models.PaymentMethodDDPO: JournalBank,
	models.PaymentMethodDEBC: JournalBank,
}

// validatePaymentRequest enforces the credit-journal contract: a Care of
// Account payment must name the charity/fund line that pays.
func validatePaymentRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(PaymentRequest)
	if req.JournalInput == JournalCredit && req.PaymentMethodLineId == nil {
		sl.ReportError(req.PaymentMethodLineId, "PaymentMethodLineId", "payment_method_line_id", "required_for_credit", "")
	}
}

// PaymentResource mirrors active payments to Odoo account-move payments
// and cancelled payments to payment cancellations.
type PaymentResource struct {
	Deps
}

func (r *PaymentResource) loadPayment(db *gorm.DB, externalId string) (*models.PaymentReconciliation, error) {
	var payment models.PaymentReconciliation
	err := db.Preload("Account.Patient").Preload("TargetInvoice").
		Preload("Location").Preload("CreatedBy").Preload("Facility").
		Where("external_id = ?", externalId).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError(fmt.Sprintf("payment %s not found", externalId))
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// checkInsurerPayment validates the insurance wiring for an insurer-issued
// payment. Config or data gaps are hard failures; a fully valid insurer
// payment is settled by the insurer later and is deliberately not pushed.
func (r *PaymentResource) checkInsurerPayment(payment *models.PaymentReconciliation) error {
	if r.Settings.InsuranceExtensionName == "" {
		return utils.NewValidationError(
			"CARE_ODOO_INSURANCE_EXTENSION_NAME must be configured when issuer is set on payment")
	}
	if r.Settings.InsuranceTagId == "" {
		return utils.NewValidationError(
			"CARE_INSURANCE_TAG_ID must be configured when issuer is set on payment")
	}
	if !payment.Account.Tags.Contains(r.Settings.InsuranceTagId) {
		return utils.NewValidationError("account must have insurance tag for insurance payments")
	}
	raw, ok := payment.Account.Extensions.Get(r.Settings.InsuranceExtensionName)
	if !ok {
		return utils.NewValidationError("account must have insurance company id when issuer is set on insurance")
	}
	if _, _, err := payment.Account.ExtensionIntStrict(r.Settings.InsuranceExtensionName); err != nil {
		return utils.NewValidationError(fmt.Sprintf(
			"invalid insurance company id %q, must be a valid integer", raw))
	}
	return nil
}

// resolveJournal picks the journal for a payment. An account linked to an
// Odoo payment method line pays on credit (Care of Account); otherwise the
// journal follows the payment method code.
func (r *PaymentResource) resolveJournal(payment *models.PaymentReconciliation) (journal string, lineId *int, err error) {
	raw, ok := payment.Account.Extensions.Get(r.Settings.AccountExtensionKey)
	if ok {
		id, _, convErr := payment.Account.ExtensionIntStrict(r.Settings.AccountExtensionKey)
		if convErr != nil {
			return "", nil, utils.NewValidationError(fmt.Sprintf(
				"invalid Odoo payment method line id %q on account %s", raw, payment.Account.ExternalId))
		}
		return JournalCredit, &id, nil
	}
	journal, ok = journalForMethod[payment.Method]
	if !ok {
		journal = JournalBank
	}
	return journal, nil, nil
}

// SyncPayment pushes an active payment to Odoo. Insurer-issued payments
// are validated and then skipped (returning 0); the insurer settles the
// invoice out of band. A reconciliation check is scheduled after a
// successful push.
func (r *PaymentResource) SyncPayment(ctx context.Context, db *gorm.DB, externalId string) (int, error) {
	payment, err := r.loadPayment(db, externalId)
	if err != nil {
		return 0, err
	}
	return r.syncLoadedPayment(ctx, payment)
}

// syncLoadedPayment builds and pushes the payment request for an already
// loaded payment.
func (r *PaymentResource) syncLoadedPayment(ctx context.Context, payment *models.PaymentReconciliation) (int, error) {
	if payment.IssuerType == models.IssuerTypeInsurer {
		if err := r.checkInsurerPayment(payment); err != nil {
			return 0, err
		}
		r.Logger.WithField("payment", payment.ExternalId).
			Info("insurer payment validated, skipping Odoo push")
		return 0, nil
	}

	journal, lineId, err := r.resolveJournal(payment)
	if err != nil {
		return 0, err
	}
	if journal == JournalCredit && payment.IsCreditNote {
		return 0, utils.NewValidationError("credit note refunds are not supported on Care of Account payments")
	}

	mode := PaymentModeReceive
	if payment.IsCreditNote {
		mode = PaymentModeSend
	}

	journalXCareId := ""
	if payment.TargetInvoice != nil {
		journalXCareId = payment.TargetInvoice.ExternalId
	}

	partner := PartnerData{
		Name:        payment.Account.Patient.Name,
		XCareId:     payment.Account.Patient.ExternalId,
		PartnerType: PartnerTypePerson,
		Phone:       utils.NormalizePhone(payment.Account.Patient.PhoneNumber),
		State:       DefaultState,
		Agent:       false,
	}

	data := PaymentRequest{
		XCareId:        payment.ExternalId,
		JournalXCareId: journalXCareId,
		Amount:         payment.Amount.InexactFloat64(),
		JournalInput:   journal,
		BankReference:  payment.ReferenceNumber,
		PaymentDate:    payment.PaymentDatetime.Format(paymentDateLayout),
		PaymentMode:    mode,
		PartnerData:    partner,
		CustomerType:   CustomerTypeCustomer,
		CounterData: BillCounterData{
			XCareId:     payment.Location.ExternalId,
			CashierId:   payment.CreatedBy.ExternalId,
			CounterName: payment.Location.Name,
		},
		PaymentMethodLineId: lineId,
	}
	if err := validationErrFromValidator(validate.Struct(data)); err != nil {
		return 0, err
	}

	payload, err := toPayload(data)
	if err != nil {
		return 0, err
	}
	resp, err := r.Odoo.Call(ctx, "api/account/move/payment", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}

	r.scheduleReconciliation(models.JobTargetPayment, payment.ExternalId)

	return responseInt(resp, "payment", "id")
}

// SyncPaymentCancel pushes a payment cancellation to Odoo; the host status
// is carried as the cancellation reason. It fires on every transition into
// a cancelled-class status, whatever the payment's prior state.
func (r *PaymentResource) SyncPaymentCancel(ctx context.Context, payment *models.PaymentReconciliation) (int, error) {
	data := PaymentCancelRequest{
		XCareId: payment.ExternalId,
		Reason:  payment.Status,
	}
	payload, err := toPayload(data)
	if err != nil {
		return 0, err
	}
	resp, err := r.Odoo.Call(ctx, "api/account/move/payment/cancel", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}
	return responseInt(resp, "payment", "id")
}
