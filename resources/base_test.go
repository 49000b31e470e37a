package resources

import (
	"testing"

	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

func TestResponseInt(t *testing.T) {
	resp := map[string]any{
		"partner": map[string]any{"id": float64(17), "name": "x"},
	}
	id, err := responseInt(resp, "partner", "id")
	if err != nil {
		t.Fatalf("responseInt error: %v", err)
	}
	if id != 17 {
		t.Fatalf("id = %d, want 17", id)
	}

	if _, err := responseInt(resp, "partner", "missing"); !utils.IsValidationError(err) {
		t.Fatalf("expected validation error for missing field, got %v", err)
	}
	if _, err := responseInt(resp, "invoice", "id"); !utils.IsValidationError(err) {
		t.Fatalf("expected validation error for missing branch, got %v", err)
	}
}

func TestResponseString(t *testing.T) {
	resp := map[string]any{
		"invoice": map[string]any{"name": "INV/2026/0042", "id": float64(1)},
	}
	if got := responseString(resp, "invoice", "name"); got != "INV/2026/0042" {
		t.Fatalf("name = %q", got)
	}
	if got := responseString(resp, "invoice", "id"); got != "" {
		t.Fatalf("non-string field must read as empty, got %q", got)
	}
	if got := responseString(resp, "missing", "name"); got != "" {
		t.Fatalf("missing branch must read as empty, got %q", got)
	}
}

func TestToPayloadUsesJSONTags(t *testing.T) {
	payload, err := toPayload(PartnerData{
		Name:        "A Patient",
		XCareId:     "pat-1",
		PartnerType: PartnerTypePerson,
	})
	if err != nil {
		t.Fatalf("toPayload error: %v", err)
	}
	if payload["x_care_id"] != "pat-1" {
		t.Fatalf("payload = %v", payload)
	}
	if payload["partner_type"] != PartnerTypePerson {
		t.Fatalf("payload = %v", payload)
	}
	if _, exists := payload["status"]; exists {
		t.Fatal("omitempty field must be absent when zero")
	}
}
