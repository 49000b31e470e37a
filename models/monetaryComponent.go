package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ComponentCode identifies a price component within its kind (discount
// code, tax code, informational code).
type ComponentCode struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// PriceComponent is one priced attribute of a catalog item or charge:
// base, surcharge, discount, tax or informational. Amount is kept as the
// string the pricing engine produced; Factor is a percentage/ratio.
type PriceComponent struct {
	MonetaryComponentType string         `json:"monetary_component_type"`
	Amount                string         `json:"amount,omitempty"`
	Factor                *float64       `json:"factor,omitempty"`
	Code                  *ComponentCode `json:"code,omitempty"`
}

// PriceComponents is stored as a JSON column.
type PriceComponents []PriceComponent

func (p PriceComponents) Value() (driver.Value, error) {
	return jsonValue(p)
}

func (p *PriceComponents) Scan(src any) error {
	return jsonScan(src, p)
}

// StringList is a JSON column of strings (tag external ids).
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	return jsonValue(s)
}

func (s *StringList) Scan(src any) error {
	return jsonScan(src, s)
}

func (s StringList) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// ExtensionMap is a plugin extension namespace stored as JSON. Keys are
// config-driven (insurance extension name, Odoo payment-method key), so the
// map stays opaque here and is validated where it is read.
type ExtensionMap map[string]string

func (m ExtensionMap) Value() (driver.Value, error) {
	return jsonValue(m)
}

func (m *ExtensionMap) Scan(src any) error {
	return jsonScan(src, m)
}

func (m ExtensionMap) Get(key string) (string, bool) {
	if m == nil || key == "" {
		return "", false
	}
	v, ok := m[key]
	return v, ok && v != ""
}

func jsonValue(v any) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func jsonScan(src, dest any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dest)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dest)
	default:
		return errors.New("unsupported JSON column source type")
	}
}
