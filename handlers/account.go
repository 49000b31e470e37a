package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// Account linkage: connects a patient billing account to the Odoo payment
// method line that pays on its behalf (Care of Account).

type setPaymentMethodRequest struct {
	// Null unsets the link.
	OdooPaymentMethodId *int `json:"odoo_payment_method_id"`
}

func (h *Handlers) loadAccount(externalId string) (*models.Account, error) {
	var account models.Account
	err := h.DB.Where("external_id = ?", externalId).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError(fmt.Sprintf("account with ID %s not found", externalId))
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SetAccountPaymentMethod sets or clears the account's payment method
// line.
//
// POST /account/:account_external_id/set-odoo-payment-method
func (h *Handlers) SetAccountPaymentMethod(c *gin.Context) {
	var req setPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, utils.NewValidationError("invalid request data: "+err.Error()))
		return
	}

	account, err := h.loadAccount(c.Param("account_external_id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	if account.Extensions == nil {
		account.Extensions = models.ExtensionMap{}
	}

	key := h.Settings.AccountExtensionKey
	message := "Odoo payment method ID removed successfully"
	if req.OdooPaymentMethodId != nil {
		account.Extensions[key] = strconv.Itoa(*req.OdooPaymentMethodId)
		message = "Odoo payment method ID set successfully"
	} else {
		delete(account.Extensions, key)
	}

	err = h.DB.Model(account).Select("extensions").
		Updates(map[string]any{"extensions": account.Extensions}).Error
	if err != nil {
		RespondError(c, err)
		return
	}

	h.Logger.WithField("account", account.ExternalId).Info(message)
	c.JSON(http.StatusOK, gin.H{
		"care_account_id":        account.ExternalId,
		"odoo_payment_method_id": req.OdooPaymentMethodId,
		"message":                message,
	})
}

// GetAccountPaymentMethod fetches the linked payment method line from
// Odoo.
//
// GET /account/:account_external_id/get-odoo-payment-method
func (h *Handlers) GetAccountPaymentMethod(c *gin.Context) {
	account, err := h.loadAccount(c.Param("account_external_id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	lineId, ok := account.Extensions.Get(h.Settings.AccountExtensionKey)
	if !ok {
		RespondError(c, utils.NewNotFoundError(
			fmt.Sprintf("no Odoo payment method linked for account %s", account.ExternalId)))
		return
	}

	resp, err := h.Odoo.Call(c.Request.Context(),
		"api/payment/method/lines/"+lineId, map[string]any{}, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	method, ok := resp["payment_method"]
	if !ok || method == nil {
		RespondError(c, utils.NewNotFoundError(
			fmt.Sprintf("Odoo payment method with ID %s not found", lineId)))
		return
	}
	c.JSON(http.StatusOK, method)
}
