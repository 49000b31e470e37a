package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// Cash transfer management between counters, facility-scoped. Transfer
// state lives in Odoo; location access is authorized locally.

type createTransferRequest struct {
	FromCounterXCareId string         `json:"from_counter_x_care_id" binding:"required"`
	ToSessionId        int            `json:"to_session_id" binding:"required"`
	Amount             float64        `json:"amount" binding:"required"`
	Denominations      map[string]int `json:"denominations"`
}

type resolveTransferRequest struct {
	CounterXCareId string `json:"counter_x_care_id" binding:"required"`
	Reason         string `json:"reason"`
}

// ListCashTransfers lists transfers for the facility with optional
// filters.
//
// GET /facility/:facility_external_id/cash-transfer
func (h *Handlers) ListCashTransfers(c *gin.Context) {
	facility, err := h.getFacility(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	payload := map[string]any{
		"facility_external_id": facility.ExternalId,
	}
	if status := c.Query("status"); status != "" {
		payload["status"] = status
	}
	if counterId := c.Query("counter_x_care_id"); counterId != "" {
		_, location, _, err := h.validateLocationAccess(c, counterId)
		if err != nil {
			RespondError(c, err)
			return
		}
		payload["counter_x_care_id"] = location.ExternalId
	}
	if fromSession := c.Query("from_session_id"); fromSession != "" {
		payload["from_session_id"] = fromSession
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/transfer/list", payload, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	transfers, _ := resp["transfers"].([]any)
	c.JSON(http.StatusOK, gin.H{"success": true, "transfers": transfers})
}

// CreateCashTransfer starts a transfer from the user's counter.
//
// POST /facility/:facility_external_id/cash-transfer
func (h *Handlers) CreateCashTransfer(c *gin.Context) {
	var req createTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, utils.NewValidationError("invalid request data: "+err.Error()))
		return
	}

	facility, location, user, err := h.validateLocationAccess(c, req.FromCounterXCareId)
	if err != nil {
		RespondError(c, err)
		return
	}

	payload := map[string]any{
		"from_user_id":           user.ExternalId,
		"facility_external_id":   facility.ExternalId,
		"from_counter_x_care_id": location.ExternalId,
		"to_session_id":          req.ToSessionId,
		"amount":                 req.Amount,
		"created_by_ext_id":      user.ExternalId,
		"created_by_name":        h.userFullName(user),
		"denominations":          req.Denominations,
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/transfer", payload, http.MethodPost)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := odooSuccess(resp, "failed to create transfer in Odoo"); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "transfer": resp["transfer"]})
}

// resolveTransfer covers accept/reject/cancel, which differ only in
// endpoint and the name of the acting-user fields.
func (h *Handlers) resolveTransfer(c *gin.Context, endpoint string, actorPrefix string) {
	transferId := c.Param("transfer_id")
	if transferId == "" {
		RespondError(c, utils.NewValidationError("transfer id is required"))
		return
	}

	var req resolveTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, utils.NewValidationError("invalid request data: "+err.Error()))
		return
	}

	facility, location, user, err := h.validateLocationAccess(c, req.CounterXCareId)
	if err != nil {
		RespondError(c, err)
		return
	}

	payload := map[string]any{
		"facility_external_id":  facility.ExternalId,
		"counter_x_care_id":     location.ExternalId,
		actorPrefix + "_ext_id": user.ExternalId,
		actorPrefix + "_name":   h.userFullName(user),
	}
	if req.Reason != "" {
		payload["reason"] = req.Reason
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/transfer/"+transferId+"/"+endpoint, payload, http.MethodPut)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := odooSuccess(resp, "failed to "+endpoint+" transfer in Odoo"); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transfer": resp["transfer"]})
}

// AcceptCashTransfer accepts an incoming transfer at the user's counter.
//
// PUT /facility/:facility_external_id/cash-transfer/:transfer_id/accept
func (h *Handlers) AcceptCashTransfer(c *gin.Context) {
	h.resolveTransfer(c, "accept", "resolved_by")
}

// RejectCashTransfer rejects an incoming transfer.
//
// PUT /facility/:facility_external_id/cash-transfer/:transfer_id/reject
func (h *Handlers) RejectCashTransfer(c *gin.Context) {
	h.resolveTransfer(c, "reject", "resolved_by")
}

// CancelCashTransfer cancels a pending transfer from the sending counter.
//
// PUT /facility/:facility_external_id/cash-transfer/:transfer_id/cancel
func (h *Handlers) CancelCashTransfer(c *gin.Context) {
	h.resolveTransfer(c, "cancel", "cancelled_by")
}

// PendingCashTransfers lists transfers pending at a counter.
//
// GET /facility/:facility_external_id/cash-transfer/pending?counter_x_care_id=...
func (h *Handlers) PendingCashTransfers(c *gin.Context) {
	counterId := c.Query("counter_x_care_id")
	if counterId == "" {
		RespondError(c, utils.NewValidationError("counter_x_care_id query parameter is required"))
		return
	}

	facility, location, user, err := h.validateLocationAccess(c, counterId)
	if err != nil {
		RespondError(c, err)
		return
	}

	payload := map[string]any{
		"facility_external_id": facility.ExternalId,
		"external_user_id":     user.ExternalId,
		"counter_x_care_id":    location.ExternalId,
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/transfer/pending", payload, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	transfers, _ := resp["transfers"].([]any)
	c.JSON(http.StatusOK, gin.H{"success": true, "transfers": transfers})
}
