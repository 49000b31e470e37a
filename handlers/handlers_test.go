package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ohcnetwork/care_odoo_bridge/odoo"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorEnvelopeMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"not found", utils.NewNotFoundError("invoice x not found"), http.StatusNotFound, "object_not_found"},
		{"permission", utils.NewPermissionError("no access"), http.StatusForbidden, "permission_denied"},
		{"validation", utils.NewValidationError("bad payload"), http.StatusBadRequest, "validation_error"},
		{"odoo client error", &odoo.ClientError{Message: "rejected"}, http.StatusBadRequest, "validation_error"},
		{"odoo server error", &odoo.ServerError{Message: "addon crashed"}, http.StatusBadGateway, "upstream_error"},
		{"odoo unreachable", &odoo.ConnectionError{Message: "refused"}, http.StatusServiceUnavailable, "upstream_unavailable"},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var body errorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid envelope: %v", err)
			}
			if len(body.Errors) != 1 {
				t.Fatalf("len(errors) = %d, want 1", len(body.Errors))
			}
			if body.Errors[0].Type != tc.wantType {
				t.Fatalf("type = %q, want %q", body.Errors[0].Type, tc.wantType)
			}
			if body.Errors[0].Msg == "" {
				t.Fatal("msg must carry the error text")
			}
		})
	}
}

func TestOdooSuccess(t *testing.T) {
	if err := odooSuccess(map[string]any{"success": true}, "fallback"); err != nil {
		t.Fatalf("success response rejected: %v", err)
	}

	err := odooSuccess(map[string]any{"success": false, "message": "session already closed"}, "fallback")
	if !utils.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "session already closed" {
		t.Fatalf("msg = %q, want the addon message", err.Error())
	}

	err = odooSuccess(map[string]any{}, "could not open session")
	if err == nil || err.Error() != "could not open session" {
		t.Fatalf("fallback message not used: %v", err)
	}
}

type stubOdoo struct {
	endpoint string
	payload  map[string]any
	method   string
	resp     map[string]any
	err      error
}

func (s *stubOdoo) Call(ctx context.Context, endpoint string, payload map[string]any, method string) (map[string]any, error) {
	s.endpoint = endpoint
	s.payload = payload
	s.method = method
	return s.resp, s.err
}

func TestListSponsorsProxiesSearch(t *testing.T) {
	stub := &stubOdoo{resp: map[string]any{
		"sponsors": []any{map[string]any{"id": float64(1), "name": "Mercy Fund"}},
	}}
	h := &Handlers{Odoo: stub}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/sponsor?search_key=mercy", nil)
	h.ListSponsors(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.endpoint != "api/sponsors/search" || stub.method != http.MethodGet {
		t.Fatalf("called %s %s", stub.method, stub.endpoint)
	}
	if stub.payload["search_key"] != "mercy" {
		t.Fatalf("payload = %v", stub.payload)
	}
	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body) != 1 || body[0]["name"] != "Mercy Fund" {
		t.Fatalf("body = %v", body)
	}
}

func TestListSponsorsEmptyResultIsEmptyArray(t *testing.T) {
	stub := &stubOdoo{resp: map[string]any{}}
	h := &Handlers{Odoo: stub}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/sponsor", nil)
	h.ListSponsors(c)

	if rec.Body.String() != "[]" {
		t.Fatalf("body = %q, want []", rec.Body.String())
	}
}

func TestListPaymentMethodLinesDefaultsToCreditJournal(t *testing.T) {
	stub := &stubOdoo{resp: map[string]any{"payment_methods": []any{}}}
	h := &Handlers{Odoo: stub}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/payment-method-line", nil)
	h.ListPaymentMethodLines(c)

	if stub.payload["journal_type"] != "credit" {
		t.Fatalf("journal_type = %v, want credit", stub.payload["journal_type"])
	}

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/payment-method-line?journal_type=bank", nil)
	h.ListPaymentMethodLines(c)

	if stub.payload["journal_type"] != "bank" {
		t.Fatalf("journal_type = %v, want bank", stub.payload["journal_type"])
	}
}

func TestListInsuranceCompaniesUpstreamFailure(t *testing.T) {
	stub := &stubOdoo{err: &odoo.ConnectionError{Message: "refused"}}
	h := &Handlers{Odoo: stub}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/insurance-company", nil)
	h.ListInsuranceCompanies(c)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
