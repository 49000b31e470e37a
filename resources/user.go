package resources

import (
	"context"
	"net/http"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// UserResource mirrors host users to Odoo users (with a backing partner,
// flagged as a commission agent).
type UserResource struct {
	Deps
}

func (r *UserResource) SyncUser(ctx context.Context, user *models.User) (int, error) {
	fullName := utils.FullName(user.Prefix, user.FirstName, user.LastName, user.Suffix, user.Username)

	status := PartnerStatusActive
	if user.Deleted {
		status = PartnerStatusRetired
	}

	partner := PartnerData{
		Name:        fullName,
		XCareId:     user.ExternalId,
		Email:       user.Email,
		Phone:       utils.NormalizePhone(user.PhoneNumber),
		State:       DefaultState,
		PartnerType: PartnerTypePerson,
		Agent:       true,
		Status:      status,
	}

	data := UserData{
		XCareId:     user.ExternalId,
		Name:        fullName,
		Login:       user.Username,
		Email:       user.Email,
		UserType:    UserTypePublic,
		Phone:       utils.NormalizePhone(user.PhoneNumber),
		State:       DefaultState,
		PartnerData: partner,
	}
	if err := validationErrFromValidator(validate.Struct(data)); err != nil {
		return 0, err
	}

	payload, err := toPayload(data)
	if err != nil {
		return 0, err
	}
	resp, err := r.Odoo.Call(ctx, "api/add/user", payload, http.MethodPost)
	if err != nil {
		return 0, err
	}
	return responseInt(resp, "user", "id")
}
