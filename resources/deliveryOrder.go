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

// DeliveryOrderResource mirrors completed goods receipts to Odoo vendor
// bills.
type DeliveryOrderResource struct {
	Deps
}

func (r *DeliveryOrderResource) loadOrder(db *gorm.DB, externalId string) (*models.DeliveryOrder, error) {
	var order models.DeliveryOrder
	err := db.Preload("Supplier").Preload("Facility").
		Where("external_id = ?", externalId).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError(fmt.Sprintf("delivery order %s not found", externalId))
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *DeliveryOrderResource) buildVendorBillItems(db *gorm.DB, order *models.DeliveryOrder) ([]InvoiceItem, error) {
	var deliveries []models.SupplyDelivery
	err := db.Preload("SuppliedItem.ChargeItemDefinition.Category.Parent").
		Where("delivery_order_id = ? AND status = ?", order.ID, models.SupplyDeliveryStatusCompleted).
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceItem, 0, len(deliveries))
	for i := range deliveries {
		delivery := &deliveries[i]
		product := delivery.SuppliedItem
		if product == nil || product.ChargeItemDefinition == nil {
			continue
		}

		productData, err := productDataFor(db, product.ChargeItemDefinition, product.AlternateIdentifier)
		if err != nil {
			return nil, err
		}

		// Vendor bill lines cost what was paid for them; fall back to the
		// catalog base price when no purchase price is recorded.
		components := product.ChargeItemDefinition.PriceComponents
		salePrice := PurchasePrice(components)
		if salePrice == "0" {
			salePrice = BasePrice(components)
		}

		freeQty := "0.0"
		if delivery.Extensions.FreeQuantity != "" {
			freeQty = delivery.Extensions.FreeQuantity
		}

		items = append(items, InvoiceItem{
			ProductData: productData,
			Quantity:    delivery.SuppliedItemQuantity.String(),
			SalePrice:   salePrice,
			FreeQty:     freeQty,
			XCareId:     delivery.ExternalId,
		})
	}
	return items, nil
}

// SyncDeliveryOrder pushes a completed delivery order to Odoo as a vendor
// bill. Orders from internal suppliers (inter-store transfers) are skipped.
func (r *DeliveryOrderResource) SyncDeliveryOrder(ctx context.Context, db *gorm.DB, externalId string) (int, error) {
	order, err := r.loadOrder(db, externalId)
	if err != nil {
		return 0, err
	}
	return r.syncLoadedOrder(ctx, db, order)
}

func (r *DeliveryOrderResource) syncLoadedOrder(ctx context.Context, db *gorm.DB, order *models.DeliveryOrder) (int, error) {
	if order.Supplier == nil {
		return 0, utils.NewValidationError(fmt.Sprintf(
			"delivery order %s has no supplier, cannot raise a vendor bill", order.ExternalId))
	}
	if r.Settings.IsInternalSupplier(order.Supplier.ExternalId) {
		r.Logger.WithField("delivery_order", order.ExternalId).
			Info("internal supplier, skipping vendor bill sync")
		return 0, nil
	}

	state := order.Supplier.Contact.State
	if state == "" {
		state = DefaultState
	}
	partner := PartnerData{
		Name:        order.Supplier.Name,
		XCareId:     order.Supplier.ExternalId,
		PartnerType: PartnerTypeCompany,
		Phone:       utils.NormalizePhone(order.Supplier.Contact.Phone),
		State:       state,
		Email:       order.Supplier.Contact.Email,
		Agent:       false,
	}

	items, err := r.buildVendorBillItems(db, order)
	if err != nil {
		return 0, err
	}

	data := AccountMoveRequest{
		XCareId:          order.ExternalId,
		BillType:         BillTypeVendor,
		InvoiceDate:      order.CreatedAt.Format(apiDateLayout),
		DueDate:          order.CreatedAt.Format(apiDateLayout),
		PartnerData:      partner,
		InvoiceItems:     items,
		Reason:           "",
		PaymentReference: order.Extensions.VendorBillNumber,
	}
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
	return responseInt(resp, "invoice", "id")
}
