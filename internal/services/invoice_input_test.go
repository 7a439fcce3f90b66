package services

import (
	"encoding/json"
	"strings"
	"testing"
)

func decodeRequest(t *testing.T, body string) CreateInvoiceRequest {
	t.Helper()
	var req CreateInvoiceRequest
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return req
}

func TestNormalizeLegacyAliases(t *testing.T) {
	req := decodeRequest(t, `{
		"clientId": 7,
		"invoiceNumber": "INV-1",
		"date": "2025-01-01",
		"dueDate": "2025-02-01",
		"taxRate": 20,
		"discountRate": 5,
		"items": [{"description": "Work", "quantity": 2, "rate": 80}]
	}`)
	in := req.Normalize()
	if in.IssueDate != "2025-01-01" {
		t.Errorf("issueDate = %q, want date alias applied", in.IssueDate)
	}
	if in.Tax != 20 || in.Discount != 5 {
		t.Errorf("tax/discount = %v/%v, want 20/5 from rate aliases", in.Tax, in.Discount)
	}
	if len(in.Items) != 1 || in.Items[0].UnitPrice != 80 {
		t.Errorf("items = %+v, want rate mapped to unitPrice", in.Items)
	}
}

func TestNormalizeCurrentNameWins(t *testing.T) {
	req := decodeRequest(t, `{
		"clientId": 7,
		"invoiceNumber": "INV-2",
		"issueDate": "2025-03-03",
		"date": "2025-01-01",
		"dueDate": "2025-04-04",
		"tax": 10,
		"taxRate": 99,
		"discount": 1,
		"discountRate": 99,
		"items": [{"description": "Work", "quantity": 1, "unitPrice": 100, "rate": 999}]
	}`)
	in := req.Normalize()
	if in.IssueDate != "2025-03-03" {
		t.Errorf("issueDate = %q, current name must win over date", in.IssueDate)
	}
	if in.Tax != 10 || in.Discount != 1 {
		t.Errorf("tax/discount = %v/%v, current names must win", in.Tax, in.Discount)
	}
	if in.Items[0].UnitPrice != 100 {
		t.Errorf("unitPrice = %v, must win over rate", in.Items[0].UnitPrice)
	}
}

func TestNormalizeUnparsableNumbers(t *testing.T) {
	req := decodeRequest(t, `{
		"clientId": 7,
		"invoiceNumber": "INV-3",
		"issueDate": "2025-01-01",
		"dueDate": "2025-02-01",
		"tax": "not a number",
		"items": [{"quantity": "abc", "unitPrice": "12.5"}]
	}`)
	in := req.Normalize()
	if in.Tax != 0 {
		t.Errorf("tax = %v, unparsable must coerce to 0", in.Tax)
	}
	if in.Items[0].Quantity != 0 {
		t.Errorf("quantity = %v, unparsable must coerce to 0", in.Items[0].Quantity)
	}
	if in.Items[0].UnitPrice != 12.5 {
		t.Errorf("unitPrice = %v, numeric strings still parse", in.Items[0].UnitPrice)
	}
	if in.Items[0].Description != "Item" {
		t.Errorf("description = %q, want Item default", in.Items[0].Description)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{float64(3.5), 3.5},
		{7, 7},
		{json.Number("42.1"), 42.1},
		{" 9 ", 9},
		{"", 0},
		{true, 0},
	}
	for _, tc := range cases {
		if got := parseNumber(tc.in); got != tc.want {
			t.Errorf("parseNumber(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
