package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// Cash session management, facility-scoped. All session state lives in
// Odoo; these endpoints resolve and authorize the counter location locally
// and proxy the rest.

type openSessionRequest struct {
	CounterXCareId string  `json:"counter_x_care_id" binding:"required"`
	OpeningBalance float64 `json:"opening_balance"`
}

type closeSessionRequest struct {
	CounterXCareId string `json:"counter_x_care_id" binding:"required"`
}

type currentSessionRequest struct {
	CounterXCareId string `json:"counter_x_care_id" binding:"required"`
}

// OpenCashSession opens a session for the authenticated user at a counter.
//
// POST /facility/:facility_external_id/cash-session
func (h *Handlers) OpenCashSession(c *gin.Context) {
	var req openSessionRequest
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
		"external_user_id":   user.ExternalId,
		"external_user_name": h.userFullName(user),
		"counter_x_care_id":  location.ExternalId,
		"opening_balance":    req.OpeningBalance,
	}

	h.Logger.WithField("facility", facility.Name).
		WithField("user", user.Username).Info("opening cash session")

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/session", payload, http.MethodPost)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := odooSuccess(resp, "failed to open session in Odoo"); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "session": resp["session"]})
}

// CloseCashSession closes the user's open session at a counter.
//
// PUT /facility/:facility_external_id/cash-session/close
func (h *Handlers) CloseCashSession(c *gin.Context) {
	var req closeSessionRequest
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
		"external_user_id":     user.ExternalId,
		"facility_external_id": facility.ExternalId,
		"counter_x_care_id":    location.ExternalId,
		"closed_by_ext_id":     user.ExternalId,
		"closed_by_name":       h.userFullName(user),
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/session/close", payload, http.MethodPut)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := odooSuccess(resp, "failed to close session in Odoo"); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": resp["session"]})
}

// CurrentCashSession returns the user's open session at a counter, if any.
//
// POST /facility/:facility_external_id/cash-session/current
func (h *Handlers) CurrentCashSession(c *gin.Context) {
	var req currentSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, utils.NewValidationError("counter_x_care_id is required"))
		return
	}

	_, location, user, err := h.validateLocationAccess(c, req.CounterXCareId)
	if err != nil {
		RespondError(c, err)
		return
	}

	payload := map[string]any{
		"external_user_id":  user.ExternalId,
		"counter_x_care_id": location.ExternalId,
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/session/current", payload, http.MethodPost)
	if err != nil {
		RespondError(c, err)
		return
	}

	if session, ok := resp["session"].(map[string]any); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": nil, "message": "No open session"})
}

// ListCashSessions lists sessions in the facility, optionally filtered by
// status.
//
// GET /facility/:facility_external_id/cash-session?status=open
func (h *Handlers) ListCashSessions(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	facility, err := h.getFacility(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	payload := map[string]any{
		"facility_external_id": facility.ExternalId,
		"external_user_id":     user.ExternalId,
	}
	if status := c.Query("status"); status != "" {
		payload["status"] = status
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/session/list", payload, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	sessions, _ := resp["sessions"].([]any)
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
}

// ListCashCounters lists the facility's counters with session status.
//
// GET /facility/:facility_external_id/cash-session/counters
func (h *Handlers) ListCashCounters(c *gin.Context) {
	if _, err := h.currentUser(c); err != nil {
		RespondError(c, err)
		return
	}
	if _, err := h.getFacility(c); err != nil {
		RespondError(c, err)
		return
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/care/cash/counters", map[string]any{}, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	counters, _ := resp["counters"].([]any)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"counters": counters,
		"count":    len(counters),
	})
}
