// Package pdf renders invoices as A4 documents matching the frontend's
// print/view modal: title, status badge, bill-to box, dates box, items
// table, and a totals box.
package pdf

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/arahmani/freelance-ops/internal/validation"
)

// InvoiceData is the renderer's input, decoupled from the storage models.
type InvoiceData struct {
	Number    string
	Status    string
	IssueDate string
	DueDate   string
	Currency  string
	Client    ClientData
	Items     []ItemData
	Subtotal  float64
	Total     float64
}

type ClientData struct {
	Name    string
	Email   string
	Address string
}

type ItemData struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Palette lifted from the frontend's tailwind classes.
var (
	grayColor    = rgb{107, 114, 128} // text-gray-500
	darkColor    = rgb{17, 24, 39}    // text-gray-900
	borderColor  = rgb{229, 231, 235} // border-gray-200
	primaryColor = rgb{37, 99, 235}   // blue total
	paidColor    = rgb{5, 150, 105}
	overdueColor = rgb{220, 38, 38}
	unpaidColor  = rgb{217, 119, 6}
)

type rgb struct{ r, g, b int }

const (
	pageLeft     = 50.0
	pageRight    = 545.0
	contentWidth = 495.0
	rowHeight    = 25.0
)

// Generate draws the invoice and writes the PDF to w. Output is streamed
// by gofpdf as it serializes, so the caller can hand it the response
// writer directly.
func Generate(inv InvoiceData, w io.Writer) error {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetLineWidth(1)

	num := inv.Number
	if num == "" {
		num = "DRAFT"
	}
	setText(doc, "B", 24, grayColor)
	doc.SetXY(pageLeft, 50)
	doc.CellFormat(contentWidth, 28, "Invoice #"+num, "", 0, "L", false, 0, "")

	// Status box
	const statusTop = 90.0
	drawRoundedBox(doc, pageLeft, statusTop, contentWidth, 60)
	setText(doc, "", 10, darkColor)
	doc.SetXY(70, statusTop+24)
	doc.CellFormat(40, 12, "Status:", "", 0, "L", false, 0, "")
	setText(doc, "B", 10, statusColor(inv.Status))
	doc.SetXY(115, statusTop+24)
	doc.CellFormat(100, 12, statusLabel(inv.Status), "", 0, "L", false, 0, "")

	// Bill to
	billToLabelTop := statusTop + 80
	setText(doc, "B", 10, grayColor)
	doc.SetXY(pageLeft, billToLabelTop)
	doc.CellFormat(100, 12, "BILL TO", "", 0, "L", false, 0, "")

	billToBoxTop := billToLabelTop + 15
	const billToBoxHeight = 100.0
	drawRoundedBox(doc, pageLeft, billToBoxTop, contentWidth, billToBoxHeight)

	clientName := inv.Client.Name
	if clientName == "" {
		clientName = "Unknown Client"
	}
	setText(doc, "B", 14, grayColor)
	doc.SetXY(70, billToBoxTop+20)
	doc.CellFormat(450, 16, clientName, "", 0, "L", false, 0, "")
	setText(doc, "", 10, darkColor)
	doc.SetXY(70, billToBoxTop+45)
	doc.CellFormat(450, 12, inv.Client.Email, "", 0, "L", false, 0, "")
	doc.SetXY(70, billToBoxTop+60)
	doc.MultiCell(450, 12, inv.Client.Address, "", "L", false)

	// Dates
	datesLabelTop := billToBoxTop + billToBoxHeight + 30
	setText(doc, "B", 10, grayColor)
	doc.SetXY(pageLeft, datesLabelTop)
	doc.CellFormat(100, 12, "DATES", "", 0, "L", false, 0, "")

	datesContentTop := datesLabelTop + 20
	setText(doc, "", 10, grayColor)
	doc.SetXY(70, datesContentTop)
	doc.CellFormat(100, 12, "Issued", "", 0, "L", false, 0, "")
	doc.SetXY(300, datesContentTop)
	doc.CellFormat(100, 12, "Due", "", 0, "L", false, 0, "")
	setText(doc, "", 12, grayColor)
	doc.SetXY(70, datesContentTop+20)
	doc.CellFormat(150, 14, formatDate(inv.IssueDate), "", 0, "L", false, 0, "")
	doc.SetXY(300, datesContentTop+20)
	doc.CellFormat(150, 14, formatDate(inv.DueDate), "", 0, "L", false, 0, "")

	// Items table
	itemsLabelTop := datesContentTop + 50
	setText(doc, "B", 10, grayColor)
	doc.SetXY(pageLeft, itemsLabelTop)
	doc.CellFormat(100, 12, "ITEMS", "", 0, "L", false, 0, "")

	itemsBoxTop := itemsLabelTop + 15
	tableHeaderTop := itemsBoxTop + 15
	doc.SetXY(70, tableHeaderTop)
	doc.CellFormat(270, 12, "Description", "", 0, "L", false, 0, "")
	doc.SetXY(350, tableHeaderTop)
	doc.CellFormat(60, 12, "Qty", "", 0, "L", false, 0, "")
	doc.SetXY(420, tableHeaderTop)
	doc.CellFormat(60, 12, "Rate", "", 0, "L", false, 0, "")
	doc.SetXY(470, tableHeaderTop)
	doc.CellFormat(70, 12, "Amount", "", 0, "R", false, 0, "")

	headerBottom := tableHeaderTop + 20
	doc.SetDrawColor(borderColor.r, borderColor.g, borderColor.b)
	doc.Line(pageLeft, headerBottom, pageRight, headerBottom)

	y := headerBottom + 15
	if len(inv.Items) > 0 {
		setText(doc, "", 10, darkColor)
		for _, item := range inv.Items {
			amount := decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitPrice))
			doc.SetXY(70, y)
			doc.CellFormat(270, 12, item.Description, "", 0, "L", false, 0, "")
			doc.SetXY(350, y)
			doc.CellFormat(60, 12, trimNumber(item.Quantity), "", 0, "L", false, 0, "")
			doc.SetXY(420, y)
			doc.CellFormat(60, 12, formatCurrency(item.UnitPrice), "", 0, "L", false, 0, "")
			doc.SetXY(470, y)
			doc.CellFormat(70, 12, formatCurrency(amount.InexactFloat64()), "", 0, "R", false, 0, "")
			y += rowHeight
		}
	} else {
		setText(doc, "", 10, grayColor)
		doc.SetXY(70, y)
		doc.CellFormat(455, 12, "No items listed", "", 0, "C", false, 0, "")
		y += 40
	}

	// Box drawn after rows so its height adapts to the item count.
	itemsBoxHeight := y - itemsBoxTop + 15
	if itemsBoxHeight < 100 {
		itemsBoxHeight = 100
	}
	drawRoundedBox(doc, pageLeft, itemsBoxTop, contentWidth, itemsBoxHeight)

	// Totals
	totalsBoxTop := itemsBoxTop + itemsBoxHeight + 30
	const totalsBoxHeight = 100.0
	drawRoundedBox(doc, pageLeft, totalsBoxTop, contentWidth, totalsBoxHeight)

	subtotalY := totalsBoxTop + 20
	setText(doc, "", 10, darkColor)
	doc.SetXY(70, subtotalY)
	doc.CellFormat(100, 12, "Subtotal", "", 0, "L", false, 0, "")
	doc.SetXY(400, subtotalY)
	doc.CellFormat(140, 12, formatCurrency(inv.Subtotal), "", 0, "R", false, 0, "")

	dividerY := subtotalY + 25
	doc.SetDrawColor(darkColor.r, darkColor.g, darkColor.b)
	doc.Line(70, dividerY, 525, dividerY)

	totalY := dividerY + 20
	setText(doc, "B", 16, grayColor)
	doc.SetXY(70, totalY)
	doc.CellFormat(100, 18, "Total", "", 0, "L", false, 0, "")
	setText(doc, "B", 16, primaryColor)
	doc.SetXY(400, totalY)
	doc.CellFormat(140, 18, formatCurrency(inv.Total), "", 0, "R", false, 0, "")

	return doc.Output(w)
}

func drawRoundedBox(doc *gofpdf.Fpdf, x, y, w, h float64) {
	doc.SetDrawColor(borderColor.r, borderColor.g, borderColor.b)
	doc.RoundedRect(x, y, w, h, 8, "1234", "D")
}

func setText(doc *gofpdf.Fpdf, style string, size float64, c rgb) {
	doc.SetFont("Helvetica", style, size)
	doc.SetTextColor(c.r, c.g, c.b)
}

func statusColor(status string) rgb {
	switch status {
	case "paid":
		return paidColor
	case "overdue":
		return overdueColor
	default:
		return unpaidColor
	}
}

func statusLabel(status string) string {
	if status == "" {
		return "Unpaid"
	}
	return string(status[0]-'a'+'A') + status[1:]
}

// formatCurrency truncates to two decimal places, no currency symbol.
func formatCurrency(amount float64) string {
	return decimal.NewFromFloat(amount).Truncate(2).StringFixed(2)
}

// trimNumber renders quantities without trailing zeros (10, 1.5).
func trimNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// formatDate renders MM/DD/YYYY, falling back to "N/A" for anything
// unparseable.
func formatDate(s string) string {
	t, err := validation.ParseDate(s)
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%02d/%02d/%04d", int(t.Month()), t.Day(), t.Year())
}
