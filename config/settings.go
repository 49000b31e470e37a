package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Load env from .env
	godotenv.Load()
}

// Settings is the immutable plugin configuration. Build it once with
// LoadSettings at startup and thread it through constructors; nothing
// reads these env vars after load.
type Settings struct {
	OdooProtocol string
	OdooHost     string
	OdooPort     int
	OdooDatabase string
	OdooUsername string
	OdooPassword string

	// Supplier organizations whose delivery orders are never mirrored
	// (internal pharmacy/store transfers).
	InternalSupplierIds []string

	// Delay before the first host-side existence check after a create sync,
	// and the shorter delay before the second check. Both are deliberate
	// trade-offs against commit latency; keep them configurable.
	ReconciliationDelay        time.Duration
	ReconciliationRecheckDelay time.Duration

	// Key inside the account extension map that links a Care account to an
	// Odoo payment method line (Care of Account / credit payments).
	AccountExtensionKey string

	// Tag external id marking an account as insurance-backed, and the
	// extension key holding the Odoo insurance company id.
	InsuranceTagId         string
	InsuranceExtensionName string

	// Identifier config used to stamp the patient's official id on invoices.
	PatientIdentifierConfig string
}

func LoadSettings() Settings {
	return Settings{
		OdooProtocol:               envDefault("CARE_ODOO_PROTOCOL", "https"),
		OdooHost:                   os.Getenv("CARE_ODOO_HOST"),
		OdooPort:                   intEnv("CARE_ODOO_PORT", 0),
		OdooDatabase:               os.Getenv("CARE_ODOO_DATABASE"),
		OdooUsername:               os.Getenv("CARE_ODOO_USERNAME"),
		OdooPassword:               os.Getenv("CARE_ODOO_PASSWORD"),
		InternalSupplierIds:        splitList(os.Getenv("CARE_ODOO_INTERNAL_SUPPLIERS")),
		ReconciliationDelay:        time.Duration(intEnv("CARE_ODOO_RECONCILIATION_DELAY_SECONDS", 30)) * time.Second,
		ReconciliationRecheckDelay: time.Duration(intEnv("CARE_ODOO_RECONCILIATION_RECHECK_SECONDS", 5)) * time.Second,
		AccountExtensionKey:        envDefault("CARE_ODOO_ACCOUNT_EXTENSION_KEY", "odoo_payment_method_id"),
		InsuranceTagId:             os.Getenv("CARE_INSURANCE_TAG_ID"),
		InsuranceExtensionName:     os.Getenv("CARE_ODOO_INSURANCE_EXTENSION_NAME"),
		PatientIdentifierConfig:    os.Getenv("CARE_PATIENT_IDENTIFIER_CONFIG"),
	}
}

// Validate reports the required Odoo connection settings that are missing.
func (s Settings) Validate() error {
	var missing []string
	if s.OdooHost == "" {
		missing = append(missing, "CARE_ODOO_HOST")
	}
	if s.OdooDatabase == "" {
		missing = append(missing, "CARE_ODOO_DATABASE")
	}
	if s.OdooUsername == "" {
		missing = append(missing, "CARE_ODOO_USERNAME")
	}
	if s.OdooPassword == "" {
		missing = append(missing, "CARE_ODOO_PASSWORD")
	}
	if len(missing) > 0 {
		return errors.New("missing required settings: " + strings.Join(missing, ", "))
	}
	return nil
}

func (s Settings) OdooBaseURL() string {
	url := fmt.Sprintf("%s://%s", s.OdooProtocol, s.OdooHost)
	if s.OdooPort != 0 {
		url += ":" + strconv.Itoa(s.OdooPort)
	}
	return url
}

func (s Settings) IsInternalSupplier(externalId string) bool {
	for _, id := range s.InternalSupplierIds {
		if id == externalId {
			return true
		}
	}
	return false
}

func envDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
