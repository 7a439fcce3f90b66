package services

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the wire shape accepted on invoice creation. It
// still carries the legacy field aliases the frontend has sent over time
// (date/issueDate, taxRate/tax, discountRate/discount, rate/unitPrice).
// Normalize collapses them into the canonical CreateInvoiceInput; nothing
// past that boundary ever sees an alias.
type CreateInvoiceRequest struct {
	ProjectID     *uint                `json:"projectId"`
	ClientID      uint                 `json:"clientId"`
	InvoiceNumber string               `json:"invoiceNumber"`
	IssueDate     string               `json:"issueDate"`
	Date          string               `json:"date"` // legacy alias for issueDate
	DueDate       string               `json:"dueDate"`
	Items         []InvoiceItemRequest `json:"items"`
	Notes         string               `json:"notes"`
	Currency      string               `json:"currency"`
	Tax           any                  `json:"tax"`
	TaxRate       any                  `json:"taxRate"` // legacy alias for tax
	Discount      any                  `json:"discount"`
	DiscountRate  any                  `json:"discountRate"` // legacy alias for discount
}

type InvoiceItemRequest struct {
	Description string `json:"description"`
	Quantity    any    `json:"quantity"`
	UnitPrice   any    `json:"unitPrice"`
	Rate        any    `json:"rate"` // legacy alias for unitPrice
}

// CreateInvoiceInput is the canonical internal shape.
type CreateInvoiceInput struct {
	ProjectID *uint
	ClientID  uint
	Number    string
	IssueDate string
	DueDate   string
	Items     []InvoiceItemInput
	Notes     string
	Currency  string
	Tax       float64
	Discount  float64
}

type InvoiceItemInput struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Normalize resolves field aliases: the current name wins when both are
// supplied, numeric fields default to 0, and each item's unit price falls
// back to the legacy rate field only when unitPrice is absent.
func (r CreateInvoiceRequest) Normalize() CreateInvoiceInput {
	in := CreateInvoiceInput{
		ProjectID: r.ProjectID,
		ClientID:  r.ClientID,
		Number:    r.InvoiceNumber,
		IssueDate: r.IssueDate,
		DueDate:   r.DueDate,
		Notes:     r.Notes,
		Currency:  r.Currency,
	}
	if in.IssueDate == "" {
		in.IssueDate = r.Date
	}
	if r.Tax != nil {
		in.Tax = parseNumber(r.Tax)
	} else {
		in.Tax = parseNumber(r.TaxRate)
	}
	if r.Discount != nil {
		in.Discount = parseNumber(r.Discount)
	} else {
		in.Discount = parseNumber(r.DiscountRate)
	}
	in.Items = make([]InvoiceItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		desc := it.Description
		if desc == "" {
			desc = "Item"
		}
		price := it.UnitPrice
		if price == nil {
			price = it.Rate
		}
		in.Items = append(in.Items, InvoiceItemInput{
			Description: desc,
			Quantity:    parseNumber(it.Quantity),
			UnitPrice:   parseNumber(price),
		})
	}
	return in
}

// parseNumber coerces loosely typed JSON values to a float, treating
// anything unparsable as zero rather than erroring.
func parseNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0
		}
		return d.InexactFloat64()
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return d.InexactFloat64()
	default:
		return 0
	}
}
