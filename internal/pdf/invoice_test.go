package pdf

import (
	"bytes"
	"strings"
	"testing"
)

func sampleInvoice() InvoiceData {
	return InvoiceData{
		Number:    "INV-001",
		Status:    "draft",
		IssueDate: "2025-01-10",
		DueDate:   "2025-02-10",
		Currency:  "EUR",
		Client: ClientData{
			Name:    "Acme",
			Email:   "billing@acme.test",
			Address: "1 Main St",
		},
		Items: []ItemData{
			{Description: "Dev Work", Quantity: 10, UnitPrice: 50},
			{Description: "Hosting", Quantity: 1, UnitPrice: 20},
		},
		Subtotal: 520,
		Total:    520,
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleInvoice(), &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Errorf("output does not start with %%PDF")
	}
	if buf.Len() < 1000 {
		t.Errorf("suspiciously small output: %d bytes", buf.Len())
	}
}

func TestGenerateNoItems(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	var buf bytes.Buffer
	if err := Generate(inv, &buf); err != nil {
		t.Fatalf("generate without items: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Errorf("output does not start with %%PDF")
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2025-01-10"); got != "01/10/2025" {
		t.Errorf("formatDate = %q, want 01/10/2025", got)
	}
	if got := formatDate("garbage"); got != "N/A" {
		t.Errorf("formatDate fallback = %q, want N/A", got)
	}
	if got := formatDate(""); got != "N/A" {
		t.Errorf("formatDate empty = %q, want N/A", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{520, "520.00"},
		{2.999, "2.99"}, // truncated, never rounded up
		{0, "0.00"},
	}
	for _, tc := range cases {
		if got := formatCurrency(tc.in); got != tc.want {
			t.Errorf("formatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		"paid":    "Paid",
		"draft":   "Draft",
		"overdue": "Overdue",
		"":        "Unpaid",
	}
	for in, want := range cases {
		if got := statusLabel(in); got != want {
			t.Errorf("statusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
