package resources

import (
	"strings"
	"testing"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

func floatPtr(v float64) *float64 { return &v }

func code(c, display string) *models.ComponentCode {
	return &models.ComponentCode{Code: c, Display: display}
}

func TestBasePriceStrict(t *testing.T) {
	components := models.PriceComponents{
		{MonetaryComponentType: models.MonetaryComponentTax, Amount: "18"},
		{MonetaryComponentType: models.MonetaryComponentBase, Amount: "150.00"},
	}
	price, err := BasePriceStrict(components)
	if err != nil {
		t.Fatalf("BasePriceStrict error: %v", err)
	}
	if price != "150.00" {
		t.Fatalf("price = %q, want 150.00", price)
	}

	_, err = BasePriceStrict(models.PriceComponents{
		{MonetaryComponentType: models.MonetaryComponentTax, Amount: "18"},
	})
	if !utils.IsValidationError(err) {
		t.Fatalf("expected validation error for missing base, got %v", err)
	}
}

func TestBasePriceLenientFallsBackToZero(t *testing.T) {
	if got := BasePrice(nil); got != "0" {
		t.Fatalf("BasePrice(nil) = %q, want 0", got)
	}
	components := models.PriceComponents{
		{MonetaryComponentType: models.MonetaryComponentBase, Amount: "42.50"},
	}
	if got := BasePrice(components); got != "42.50" {
		t.Fatalf("BasePrice = %q, want 42.50", got)
	}
}

func TestInformationalPrices(t *testing.T) {
	components := models.PriceComponents{
		{
			MonetaryComponentType: models.MonetaryComponentInformational,
			Amount:                "90.00",
			Code:                  code(models.InformationalCodePurchasePrice, "Purchase Price"),
		},
		{
			MonetaryComponentType: models.MonetaryComponentInformational,
			Amount:                "120.00",
			Code:                  code(models.InformationalCodeMRP, "MRP"),
		},
	}
	if got := PurchasePrice(components); got != "90.00" {
		t.Fatalf("PurchasePrice = %q, want 90.00", got)
	}
	if got := MRP(components); got != "120.00" {
		t.Fatalf("MRP = %q, want 120.00", got)
	}
	if got := PurchasePrice(nil); got != "0" {
		t.Fatalf("PurchasePrice(nil) = %q, want 0", got)
	}
}

func TestTaxesSkipsComponentsWithoutFactorOrCode(t *testing.T) {
	components := models.PriceComponents{
		{MonetaryComponentType: models.MonetaryComponentTax, Factor: floatPtr(9), Code: code("cgst", "CGST")},
		{MonetaryComponentType: models.MonetaryComponentTax, Factor: floatPtr(9), Code: code("sgst", "SGST")},
		{MonetaryComponentType: models.MonetaryComponentTax, Amount: "5"}, // no factor
		{MonetaryComponentType: models.MonetaryComponentTax, Factor: floatPtr(12)}, // no code
		{MonetaryComponentType: models.MonetaryComponentBase, Amount: "100"},
	}
	taxes := Taxes(components)
	if len(taxes) != 2 {
		t.Fatalf("len(taxes) = %d, want 2", len(taxes))
	}
	if taxes[0].TaxName != "CGST" || taxes[0].TaxPercentage != 9 {
		t.Fatalf("taxes[0] = %+v", taxes[0])
	}
	if taxes[1].TaxName != "SGST" {
		t.Fatalf("taxes[1] = %+v", taxes[1])
	}
}

func TestAllDiscountsNoDiscounts(t *testing.T) {
	discounts, err := AllDiscounts(models.PriceComponents{
		{MonetaryComponentType: models.MonetaryComponentBase, Amount: "100"},
	}, nil)
	if err != nil {
		t.Fatalf("AllDiscounts error: %v", err)
	}
	if discounts != nil {
		t.Fatalf("discounts = %v, want nil", discounts)
	}
}

func TestAllDiscountsFactorDiscountResolvesRealizedAmount(t *testing.T) {
	unit := models.PriceComponents{
		{MonetaryComponentType: models.MonetaryComponentBase, Amount: "200"},
		{
			MonetaryComponentType: models.MonetaryComponentDiscount,
			Factor:                floatPtr(10),
			Code:                  code("staff-disc", "Staff Discount"),
		},
	}
	total := models.PriceComponents{
		{
			MonetaryComponentType: models.MonetaryComponentDiscount,
			Amount:                "20.00",
			Code:                  code("staff-disc", "Staff Discount"),
		},
	}

	discounts, err := AllDiscounts(unit, total)
	if err != nil {
		t.Fatalf("AllDiscounts error: %v", err)
	}
	if len(discounts) != 1 {
		t.Fatalf("len(discounts) = %d, want 1", len(discounts))
	}
	d := discounts[0]
	if d.DiscountType != DiscountTypeFactor {
		t.Fatalf("discount type = %q, want factor", d.DiscountType)
	}
	if d.Rate != 10 {
		t.Fatalf("rate = %v, want 10", d.Rate)
	}
	if d.DiscAmt != 20 {
		t.Fatalf("disc_amt = %v, want 20", d.DiscAmt)
	}
	if d.DiscountGroup.XCareId != "staff-disc" || d.DiscountGroup.Name != "Staff Discount" {
		t.Fatalf("discount group = %+v", d.DiscountGroup)
	}
}

func TestAllDiscountsAmountDiscount(t *testing.T) {
	unit := models.PriceComponents{
		{
			MonetaryComponentType: models.MonetaryComponentDiscount,
			Amount:                "15.50",
			Code:                  code("flat", "Flat Discount"),
		},
	}
	discounts, err := AllDiscounts(unit, nil)
	if err != nil {
		t.Fatalf("AllDiscounts error: %v", err)
	}
	if discounts[0].DiscountType != DiscountTypeAmount {
		t.Fatalf("discount type = %q, want amount", discounts[0].DiscountType)
	}
	if discounts[0].Rate != 15.5 {
		t.Fatalf("rate = %v, want 15.5", discounts[0].Rate)
	}
}

func TestAllDiscountsRejectsMultipleDiscounts(t *testing.T) {
	unit := models.PriceComponents{
		{MonetaryComponentType: models.MonetaryComponentDiscount, Amount: "10", Code: code("a", "A")},
		{MonetaryComponentType: models.MonetaryComponentDiscount, Amount: "5", Code: code("b", "B")},
	}
	_, err := AllDiscounts(unit, nil)
	if !utils.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "found 2 discounts") {
		t.Fatalf("error %q does not report the count", err.Error())
	}
}
