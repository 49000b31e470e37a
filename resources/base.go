// Package resources maps host billing records onto the custom Odoo addon
// API. Each resource owns one Odoo concern (partner, user, product,
// invoice, payment, vendor bill) and builds its request payload from the
// host models before handing it to the connector.
package resources

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/odoo"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// Deps is the shared wiring every resource needs. Database handles are
// passed per call so lifecycle hooks can hand in their transaction.
type Deps struct {
	Odoo     odoo.Caller
	Settings config.Settings
	Logger   *logrus.Logger
	// Schedule overrides how reconciliation checks are enqueued. Nil uses
	// the durable job table.
	Schedule func(kind, externalId string, delay time.Duration)
}

// scheduleReconciliation enqueues the post-push existence check for a
// synced record.
func (d Deps) scheduleReconciliation(kind, externalId string) {
	if d.Schedule != nil {
		d.Schedule(kind, externalId, d.Settings.ReconciliationDelay)
		return
	}
	models.ScheduleReconciliation(d.Logger, kind, externalId, d.Settings.ReconciliationDelay)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validatePaymentRequest, PaymentRequest{})
	return v
}

// toPayload renders a request spec into the map shape the connector sends.
func toPayload(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request payload: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode request payload: %w", err)
	}
	return payload, nil
}

// responseInt digs a numeric id out of a nested connector response,
// e.g. responseInt(resp, "partner", "id"). JSON numbers decode as float64.
func responseInt(resp map[string]any, keys ...string) (int, error) {
	var current any = resp
	for _, k := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return 0, utils.NewValidationError(fmt.Sprintf("unexpected Odoo response shape at %q", k))
		}
		current = m[k]
	}
	switch n := current.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, utils.NewValidationError(fmt.Sprintf("missing numeric field %v in Odoo response", keys))
	}
}

func responseString(resp map[string]any, keys ...string) string {
	var current any = resp
	for _, k := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = m[k]
	}
	s, _ := current.(string)
	return s
}

func validationErrFromValidator(err error) error {
	if err == nil {
		return nil
	}
	return utils.NewValidationError(err.Error())
}
