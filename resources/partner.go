package resources

import (
	"context"
	"net/http"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// PartnerResource mirrors organizations to Odoo partners.
type PartnerResource struct {
	Deps
}

func (r *PartnerResource) SyncOrganization(ctx context.Context, org *models.Organization) (int, error) {
	state := org.Contact.State
	if state == "" {
		state = DefaultState
	}

	data := PartnerData{
		Name:        org.Name,
		XCareId:     org.ExternalId,
		Email:       org.Contact.Email,
		Phone:       utils.NormalizePhone(org.Contact.Phone),
		State:       state,
		PartnerType: PartnerTypeCompany,
		Agent:       false,
	}
	if err := validationErrFromValidator(validate.Struct(data)); err != nil {
		return 0, err
	}

	payload, err := toPayload(data)
	if err != nil {
		return 0, err
	}
	resp, err := r.Odoo.Call(ctx, "api/add/partner", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}
	return responseInt(resp, "partner", "id")
}
