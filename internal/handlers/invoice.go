package handlers

import (
	"net/http"
	"time"

	"github.com/arahmani/freelance-ops/internal/auth"
	"github.com/arahmani/freelance-ops/internal/httpx"
	"github.com/arahmani/freelance-ops/internal/pdf"
	"github.com/arahmani/freelance-ops/internal/services"
	"github.com/arahmani/freelance-ops/internal/validation"
)

type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// List: GET /api/invoices?page=&limit=&status=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	page, limit := pageQuery(r)
	result, err := h.Svc.List(userID, page, limit, r.URL.Query().Get("status"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Invoices retrieved successfully", result)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	inv, err := h.Svc.Get(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Invoice retrieved successfully", inv)
}

// Create decodes the wire request (with its legacy aliases), normalizes it
// to the canonical shape, and hands it to the service.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req services.CreateInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	inv, err := h.Svc.Create(userID, req.Normalize())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, "Invoice created successfully", inv)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var in services.UpdateInvoiceInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	inv, err := h.Svc.Update(id, userID, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Invoice updated successfully", inv)
}

// MarkPaid: POST /api/invoices/{id}/paid
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req struct {
		PaidDate string `json:"paidDate"`
	}
	// Body is optional; a decode failure just means no explicit date.
	_ = decodeJSON(r, &req)
	var paidDate *time.Time
	if req.PaidDate != "" {
		d, err := validation.ParseDate(req.PaidDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Invalid paid date")
			return
		}
		paidDate = &d
	}
	inv, err := h.Svc.MarkPaid(id, userID, paidDate)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Invoice marked as paid", inv)
}

// Download: GET /api/invoices/{id}/download streams the PDF. Errors
// surface as the usual JSON envelope only while no bytes are written.
func (h *InvoiceHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	inv, err := h.Svc.GetModel(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	data := pdf.InvoiceData{
		Number:    inv.Number,
		Status:    string(inv.Status),
		IssueDate: inv.IssueDate.Format(validation.DateLayout),
		DueDate:   inv.DueDate.Format(validation.DateLayout),
		Currency:  inv.Currency,
		Subtotal:  inv.TotalHT,
		Total:     inv.TotalTTC,
	}
	if inv.Client != nil {
		data.Client = pdf.ClientData{
			Name:    inv.Client.Name,
			Email:   inv.Client.ContactEmail,
			Address: inv.Client.BillingAddress,
		}
	}
	for _, it := range inv.Items {
		data.Items = append(data.Items, pdf.ItemData{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice-`+inv.Number+`.pdf"`)
	if err := pdf.Generate(data, w); err != nil {
		// Headers are already out; nothing to downgrade to.
		_ = err
	}
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.Svc.Delete(id, userID); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Invoice deleted successfully", nil)
}
