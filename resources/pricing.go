package resources

import (
	"fmt"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// Price-component extraction. Two base-price modes exist on purpose:
// invoice lines must have a base price (strict), while vendor-bill and
// catalog paths fall back to "0" (lenient).

// BasePriceStrict returns the base amount or fails when no base component
// is present.
func BasePriceStrict(components models.PriceComponents) (string, error) {
	for _, item := range components {
		if item.MonetaryComponentType == models.MonetaryComponentBase {
			return item.Amount, nil
		}
	}
	return "", utils.NewValidationError("base price not found in price components")
}

// BasePrice returns the base amount, "0" when absent.
func BasePrice(components models.PriceComponents) string {
	price, err := BasePriceStrict(components)
	if err != nil {
		return "0"
	}
	return price
}

func informationalAmount(components models.PriceComponents, code string) string {
	for _, item := range components {
		if item.MonetaryComponentType != models.MonetaryComponentInformational {
			continue
		}
		if item.Code != nil && item.Code.Code == code {
			return item.Amount
		}
	}
	return "0"
}

// PurchasePrice returns the informational purchase_price amount, "0" when
// absent.
func PurchasePrice(components models.PriceComponents) string {
	return informationalAmount(components, models.InformationalCodePurchasePrice)
}

// MRP returns the informational mrp amount, "0" when absent.
func MRP(components models.PriceComponents) string {
	return informationalAmount(components, models.InformationalCodeMRP)
}

// Taxes collects the tax components as addon TaxData. Components without a
// factor are skipped; a percentage-less tax cannot be expressed in Odoo.
func Taxes(components models.PriceComponents) []TaxData {
	var taxes []TaxData
	for _, item := range components {
		if item.MonetaryComponentType != models.MonetaryComponentTax {
			continue
		}
		if item.Factor == nil || item.Code == nil {
			continue
		}
		taxes = append(taxes, TaxData{
			TaxName:       item.Code.Display,
			TaxPercentage: *item.Factor,
		})
	}
	return taxes
}

// AllDiscounts builds the discount list for an invoice line from the charge
// item's unit components, resolving the realized amount from the total
// components. At most one discount per line is allowed; more is a data
// error the addon cannot represent.
func AllDiscounts(unit, total models.PriceComponents) ([]InvoiceDiscount, error) {
	var unitDiscounts []models.PriceComponent
	for _, component := range unit {
		if component.MonetaryComponentType == models.MonetaryComponentDiscount {
			unitDiscounts = append(unitDiscounts, component)
		}
	}
	if len(unitDiscounts) == 0 {
		return nil, nil
	}
	if len(unitDiscounts) > 1 {
		return nil, utils.NewValidationError(fmt.Sprintf(
			"more than 1 discount per item is not allowed, found %d discounts", len(unitDiscounts)))
	}

	discounts := make([]InvoiceDiscount, 0, 1)
	for _, unitDiscount := range unitDiscounts {
		var name, code string
		if unitDiscount.Code != nil {
			name = unitDiscount.Code.Display
			code = unitDiscount.Code.Code
		}

		discountType := DiscountTypeAmount
		rate := utils.DecimalFromPrice(unitDiscount.Amount).InexactFloat64()
		if unitDiscount.Factor != nil {
			discountType = DiscountTypeFactor
			rate = *unitDiscount.Factor
		}

		// Realized discount amount lives on the total components under the
		// same code.
		discAmt := 0.0
		for _, component := range total {
			if component.MonetaryComponentType != models.MonetaryComponentDiscount {
				continue
			}
			if component.Code != nil && component.Code.Code == code {
				discAmt = utils.DecimalFromPrice(component.Amount).InexactFloat64()
				break
			}
		}

		discounts = append(discounts, InvoiceDiscount{
			Name:          name,
			DiscountGroup: DiscountGroup{XCareId: code, Name: name},
			DiscountType:  discountType,
			Rate:          rate,
			DiscAmt:       discAmt,
		})
	}
	return discounts, nil
}
