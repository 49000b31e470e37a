package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Read-only lookup endpoints proxied to the Odoo addon.

// ListSponsors searches sponsor partners.
//
// GET /sponsor?search_key=...
func (h *Handlers) ListSponsors(c *gin.Context) {
	payload := map[string]any{
		"search_key": c.Query("search_key"),
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/sponsors/search", payload, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	sponsors, _ := resp["sponsors"].([]any)
	if sponsors == nil {
		sponsors = []any{}
	}
	c.JSON(http.StatusOK, sponsors)
}

// ListInsuranceCompanies searches insurance companies.
//
// GET /insurance-company?search_key=...
func (h *Handlers) ListInsuranceCompanies(c *gin.Context) {
	payload := map[string]any{
		"search_key": c.Query("search_key"),
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/insurance/companies/search", payload, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	companies, _ := resp["insurance_companies"].([]any)
	if companies == nil {
		companies = []any{}
	}
	c.JSON(http.StatusOK, companies)
}

// SearchPaymentMethods searches payment methods by name.
//
// GET /payment-method?search_key=...
func (h *Handlers) SearchPaymentMethods(c *gin.Context) {
	payload := map[string]any{
		"search_key": c.Query("search_key"),
	}
	if journalType := c.Query("journal_type"); journalType != "" {
		payload["journal_type"] = journalType
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/payment/methods/search", payload, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	methods, _ := resp["payment_methods"].([]any)
	if methods == nil {
		methods = []any{}
	}
	c.JSON(http.StatusOK, methods)
}

// ListPaymentMethodLines lists the payment sources available for Care of
// Account (charity/sponsor/fund) payments.
//
// GET /payment-method-line?journal_type=credit
func (h *Handlers) ListPaymentMethodLines(c *gin.Context) {
	journalType := c.Query("journal_type")
	if journalType == "" {
		journalType = "credit"
	}
	payload := map[string]any{
		"journal_type": journalType,
	}

	resp, err := h.Odoo.Call(c.Request.Context(), "api/payment/method/lines", payload, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	methods, _ := resp["payment_methods"].([]any)
	if methods == nil {
		methods = []any{}
	}
	c.JSON(http.StatusOK, methods)
}

// GetPaymentMethodLine fetches one payment method line by Odoo id.
//
// GET /payment-method-line/:id
func (h *Handlers) GetPaymentMethodLine(c *gin.Context) {
	resp, err := h.Odoo.Call(c.Request.Context(),
		"api/payment/method/lines/"+c.Param("id"), map[string]any{}, http.MethodGet)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp["payment_method"])
}
