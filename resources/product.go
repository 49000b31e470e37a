package resources

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// ProductNamePrefix marks host-owned products inside Odoo.
const ProductNamePrefix = "CARE: "

// ProductResource mirrors charge item definitions to Odoo products.
type ProductResource struct {
	Deps
}

// productDataFor builds the addon ProductData for a definition. Shared by
// the product, invoice and vendor-bill paths.
func productDataFor(db *gorm.DB, definition *models.ChargeItemDefinition, hsn string) (ProductData, error) {
	if definition.Category == nil {
		category := &models.ResourceCategory{}
		if err := db.Preload("Parent").First(category, definition.CategoryId).Error; err != nil {
			return ProductData{}, err
		}
		definition.Category = category
	}
	categoryData, err := categoryDataFor(db, definition.Category)
	if err != nil {
		return ProductData{}, err
	}

	return ProductData{
		ProductName: ProductNamePrefix + definition.Title,
		XCareId:     definition.ExternalId,
		MRP:         utils.DecimalFromPrice(BasePrice(definition.PriceComponents)).InexactFloat64(),
		Cost:        utils.DecimalFromPrice(PurchasePrice(definition.PriceComponents)).InexactFloat64(),
		Category:    categoryData,
		Taxes:       Taxes(definition.PriceComponents),
		HSN:         hsn,
		Status:      definition.Status,
	}, nil
}

func (r *ProductResource) SyncDefinition(ctx context.Context, db *gorm.DB, definition *models.ChargeItemDefinition, hsn string) (int, error) {
	data, err := productDataFor(db, definition, hsn)
	if err != nil {
		return 0, err
	}
	if err := validationErrFromValidator(validate.Struct(data)); err != nil {
		return 0, err
	}

	payload, err := toPayload(data)
	if err != nil {
		return 0, err
	}
	resp, err := r.Odoo.Call(ctx, "api/add/product", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}
	return responseInt(resp, "product", "id")
}

// SyncProduct pushes a stocked product through its linked definition,
// carrying the HSN code. Products without a definition have nothing to
// bill against and are skipped.
func (r *ProductResource) SyncProduct(ctx context.Context, db *gorm.DB, product *models.Product) (int, error) {
	if product.ChargeItemDefinitionId == nil {
		return 0, nil
	}
	definition := product.ChargeItemDefinition
	if definition == nil {
		definition = &models.ChargeItemDefinition{}
		if err := db.Preload("Category.Parent").First(definition, *product.ChargeItemDefinitionId).Error; err != nil {
			return 0, err
		}
	}
	return r.SyncDefinition(ctx, db, definition, product.AlternateIdentifier)
}
