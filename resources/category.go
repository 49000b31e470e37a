package resources

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/models"
)

// CategoryResource mirrors charge-item-definition categories to Odoo
// product categories, preserving the parent chain by external id.
type CategoryResource struct {
	Deps
}

func categoryDataFor(db *gorm.DB, category *models.ResourceCategory) (CategoryData, error) {
	if category == nil {
		return CategoryData{CategoryName: "Uncategorized"}, nil
	}
	parentXCareId := ""
	if category.ParentId != nil {
		parent := category.Parent
		if parent == nil {
			parent = &models.ResourceCategory{}
			if err := db.First(parent, *category.ParentId).Error; err != nil {
				return CategoryData{}, err
			}
		}
		parentXCareId = parent.ExternalId
	}
	return CategoryData{
		CategoryName:  category.Title,
		ParentXCareId: parentXCareId,
		XCareId:       category.ExternalId,
	}, nil
}

func (r *CategoryResource) SyncCategory(ctx context.Context, db *gorm.DB, category *models.ResourceCategory) (int, error) {
	data, err := categoryDataFor(db, category)
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
	resp, err := r.Odoo.Call(ctx, "api/add/product/category", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}
	return responseInt(resp, "category", "id")
}
