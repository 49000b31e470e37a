package models

import "testing"

func TestNumberOnlyUpdate(t *testing.T) {
	cases := []struct {
		name    string
		selects []string
		want    bool
	}{
		{"number only", []string{"number"}, true},
		{"case insensitive", []string{"Number"}, true},
		{"empty selects", nil, false},
		{"other column", []string{"status"}, false},
		{"number plus more", []string{"number", "status"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NumberOnlyUpdate(tc.selects); got != tc.want {
				t.Fatalf("NumberOnlyUpdate(%v) = %v, want %v", tc.selects, got, tc.want)
			}
		})
	}
}

func TestInvoiceIsCancelledStatus(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{InvoiceStatusCancelled, true},
		{InvoiceStatusEnteredInError, true},
		{InvoiceStatusVoided, true},
		{InvoiceStatusIssued, false},
		{InvoiceStatusDraft, false},
	}
	for _, tc := range cases {
		inv := Invoice{Status: tc.status}
		if got := inv.IsCancelledStatus(); got != tc.want {
			t.Fatalf("IsCancelledStatus(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
