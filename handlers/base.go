// Package handlers exposes the plugin's own HTTP API: cash session and
// transfer management proxied to the Odoo addon, plus lookups (sponsors,
// insurance companies, payment method lines) and account linkage.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/middlewares"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/odoo"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// Handlers carries the shared wiring for all HTTP endpoints.
type Handlers struct {
	DB       *gorm.DB
	Odoo     odoo.Caller
	Settings config.Settings
	Logger   *logrus.Logger
}

type apiError struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

type errorEnvelope struct {
	Errors []apiError `json:"errors"`
}

func envelope(errType, msg string) errorEnvelope {
	return errorEnvelope{Errors: []apiError{{Type: errType, Msg: msg}}}
}

// RespondError maps domain and upstream errors onto the standard error
// envelope.
func RespondError(c *gin.Context, err error) {
	var (
		notFound   *utils.NotFoundError
		permission *utils.PermissionError
		validation *utils.ValidationError
		clientErr  *odoo.ClientError
		serverErr  *odoo.ServerError
		connErr    *odoo.ConnectionError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, envelope("object_not_found", notFound.Msg))
	case errors.As(err, &permission):
		c.JSON(http.StatusForbidden, envelope("permission_denied", permission.Msg))
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, envelope("validation_error", validation.Msg))
	case errors.As(err, &clientErr):
		c.JSON(http.StatusBadRequest, envelope("validation_error", clientErr.Message))
	case errors.As(err, &serverErr):
		c.JSON(http.StatusBadGateway, envelope("upstream_error", serverErr.Message))
	case errors.As(err, &connErr):
		c.JSON(http.StatusServiceUnavailable, envelope("upstream_unavailable", connErr.Message))
	default:
		c.JSON(http.StatusInternalServerError, envelope("internal_error", err.Error()))
	}
}

func (h *Handlers) currentUser(c *gin.Context) (*models.User, error) {
	user := middlewares.UserFromContext(c)
	if user == nil {
		return nil, utils.NewPermissionError("authentication required")
	}
	return user, nil
}

func (h *Handlers) getFacility(c *gin.Context) (*models.Facility, error) {
	externalId := c.Param("facility_external_id")
	var facility models.Facility
	err := h.DB.Where("external_id = ?", externalId).First(&facility).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("no facility matches the given query")
	}
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

func (h *Handlers) getLocation(facility *models.Facility, locationExternalId string) (*models.FacilityLocation, error) {
	var location models.FacilityLocation
	err := h.DB.Where("external_id = ? AND facility_id = ?", locationExternalId, facility.ID).
		First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError(
			fmt.Sprintf("location %s not found in this facility", locationExternalId))
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// validateLocationAccess resolves a counter location and checks the user
// is a member of its facility.
func (h *Handlers) validateLocationAccess(c *gin.Context, locationExternalId string) (*models.Facility, *models.FacilityLocation, *models.User, error) {
	user, err := h.currentUser(c)
	if err != nil {
		return nil, nil, nil, err
	}
	facility, err := h.getFacility(c)
	if err != nil {
		return nil, nil, nil, err
	}
	location, err := h.getLocation(facility, locationExternalId)
	if err != nil {
		return nil, nil, nil, err
	}

	var membership int64
	err = h.DB.Model(&models.FacilityUser{}).
		Where("facility_id = ? AND user_id = ?", facility.ID, user.ID).
		Count(&membership).Error
	if err != nil {
		return nil, nil, nil, err
	}
	if membership == 0 {
		return nil, nil, nil, utils.NewPermissionError(
			fmt.Sprintf("you do not have access to location %s", location.Name))
	}
	return facility, location, user, nil
}

func (h *Handlers) userFullName(user *models.User) string {
	return utils.FullName(user.Prefix, user.FirstName, user.LastName, user.Suffix, user.Username)
}

// odooSuccess rejects addon responses that report success=false, carrying
// the addon's message back as a validation failure.
func odooSuccess(resp map[string]any, fallback string) error {
	if ok, _ := resp["success"].(bool); ok {
		return nil
	}
	msg := fallback
	if m, _ := resp["message"].(string); m != "" {
		msg = m
	}
	return utils.NewValidationError(msg)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
