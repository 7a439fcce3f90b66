package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arahmani/freelance-ops/internal/models"
	"github.com/arahmani/freelance-ops/internal/validation"
)

// InvoiceService owns the invoice lifecycle: creation with total
// computation, the draft-only update rule, payment marking, and deletion.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// FormattedInvoice is the external camelCase representation.
type FormattedInvoice struct {
	ID            uint                   `json:"id"`
	ClientID      uint                   `json:"clientId"`
	Client        *ClientRef             `json:"client"`
	InvoiceNumber string                 `json:"invoiceNumber"`
	IssueDate     string                 `json:"issueDate"`
	DueDate       string                 `json:"dueDate"`
	PaidDate      *string                `json:"paidDate,omitempty"`
	Status        string                 `json:"status"`
	Subtotal      float64                `json:"subtotal"`
	TaxAmount     float64                `json:"taxAmount"`
	TotalAmount   float64                `json:"totalAmount"`
	Currency      string                 `json:"currency"`
	Items         []FormattedInvoiceItem `json:"items"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type FormattedInvoiceItem struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// ClientRef is the minimal client embed on formatted responses.
type ClientRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// InvoicePage is one page of formatted invoices with page metadata.
type InvoicePage struct {
	Data       []FormattedInvoice `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// UpdateInvoiceInput carries the fields accepted on update. Only Status is
// applied; Notes is accepted and dropped because the model has no notes
// column (kept as a known limitation, not silently fixed).
type UpdateInvoiceInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// List returns a page of the user's invoices, newest first.
func (s *InvoiceService) List(userID uint, page, limit int, status string) (*InvoicePage, error) {
	page, limit = NormalizePage(page, limit)

	q := s.db.Model(&models.Invoice{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	err := q.Preload("Items").Preload("Client").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	out := make([]FormattedInvoice, 0, len(invoices))
	for i := range invoices {
		out = append(out, FormatInvoice(&invoices[i]))
	}
	return &InvoicePage{Data: out, Pagination: makePagination(total, page, limit)}, nil
}

// Get returns one invoice with client and items, scoped to the user.
func (s *InvoiceService) Get(invoiceID, userID uint) (*FormattedInvoice, error) {
	inv, err := s.GetModel(invoiceID, userID)
	if err != nil {
		return nil, err
	}
	f := FormatInvoice(inv)
	return &f, nil
}

// GetModel returns the stored invoice with associations, scoped to the
// user. The PDF download path needs the raw model rather than the
// formatted projection.
func (s *InvoiceService) GetModel(invoiceID, userID uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Preload("Items").Preload("Client").
		Where("id = ? AND user_id = ?", invoiceID, userID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Invoice not found")
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create validates the canonical input, computes totals, and persists the
// invoice with its items in one transaction.
func (s *InvoiceService) Create(userID uint, in CreateInvoiceInput) (*FormattedInvoice, error) {
	if in.ClientID == 0 {
		return nil, BadRequest("Client is required")
	}
	if in.Number == "" {
		return nil, BadRequest("Invoice number is required")
	}
	if in.IssueDate == "" {
		return nil, BadRequest("Issue date is required")
	}
	if in.DueDate == "" {
		return nil, BadRequest("Due date is required")
	}
	issueDate, err := validation.ParseDate(in.IssueDate)
	if err != nil {
		return nil, BadRequest("Invalid issue date")
	}
	dueDate, err := validation.ParseDate(in.DueDate)
	if err != nil {
		return nil, BadRequest("Invalid due date")
	}

	if in.ProjectID != nil {
		var project models.Project
		err := s.db.Where("id = ? AND user_id = ?", *in.ProjectID, userID).First(&project).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Project not found")
		}
		if err != nil {
			return nil, err
		}
	}

	var client models.Client
	err = s.db.Where("id = ? AND user_id = ?", in.ClientID, userID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Client not found")
	}
	if err != nil {
		return nil, err
	}

	var dup int64
	if err := s.db.Model(&models.Invoice{}).
		Where("user_id = ? AND number = ?", userID, in.Number).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, BadRequest("Invoice number already exists")
	}

	if len(in.Items) == 0 {
		return nil, BadRequest("Invoice must have at least one item")
	}

	subtotal := decimal.Zero
	items := make([]models.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		lineTotal := decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitPrice))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       lineTotal.InexactFloat64(),
			ProjectID:   in.ProjectID,
		})
	}
	taxAmount := decimal.NewFromFloat(in.Tax)
	discountAmount := decimal.NewFromFloat(in.Discount)
	totalAmount := subtotal.Add(taxAmount).Sub(discountAmount)

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}

	inv := models.Invoice{
		UserID:    userID,
		ClientID:  in.ClientID,
		Number:    in.Number,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Status:    models.InvoiceStatusDraft,
		TotalHT:   subtotal.InexactFloat64(),
		TotalTVA:  taxAmount.InexactFloat64(),
		TotalTTC:  totalAmount.InexactFloat64(),
		Currency:  currency,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(inv.ID, userID)
}

// Update applies the permitted fields. Only draft invoices may change.
func (s *InvoiceService) Update(invoiceID, userID uint, in UpdateInvoiceInput) (*FormattedInvoice, error) {
	var inv models.Invoice
	err := s.db.Where("id = ? AND user_id = ?", invoiceID, userID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Invoice not found")
	}
	if err != nil {
		return nil, err
	}
	if !inv.IsDraft() {
		return nil, BadRequest("Can only update draft invoices")
	}
	if in.Status != nil {
		inv.Status = models.InvoiceStatus(*in.Status)
	}
	if err := s.db.Save(&inv).Error; err != nil {
		return nil, err
	}
	return s.Get(inv.ID, userID)
}

// MarkPaid sets the invoice to paid. Re-applying is allowed; paid_date is
// overwritten each call.
func (s *InvoiceService) MarkPaid(invoiceID, userID uint, paidDate *time.Time) (*FormattedInvoice, error) {
	var inv models.Invoice
	err := s.db.Where("id = ? AND user_id = ?", invoiceID, userID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Invoice not found")
	}
	if err != nil {
		return nil, err
	}
	when := time.Now()
	if paidDate != nil {
		when = *paidDate
	}
	inv.Status = models.InvoiceStatusPaid
	inv.PaidDate = &when
	if err := s.db.Save(&inv).Error; err != nil {
		return nil, err
	}
	return s.Get(inv.ID, userID)
}

// Delete removes the invoice and its items.
func (s *InvoiceService) Delete(invoiceID, userID uint) error {
	var inv models.Invoice
	err := s.db.Where("id = ? AND user_id = ?", invoiceID, userID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Invoice not found")
	}
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
}

// FormatInvoice maps the stored invoice to its external representation.
func FormatInvoice(inv *models.Invoice) FormattedInvoice {
	f := FormattedInvoice{
		ID:            inv.ID,
		ClientID:      inv.ClientID,
		InvoiceNumber: inv.Number,
		IssueDate:     inv.IssueDate.Format(validation.DateLayout),
		DueDate:       inv.DueDate.Format(validation.DateLayout),
		Status:        string(inv.Status),
		Subtotal:      inv.TotalHT,
		TaxAmount:     inv.TotalTVA,
		TotalAmount:   inv.TotalTTC,
		Currency:      inv.Currency,
		Items:         make([]FormattedInvoiceItem, 0, len(inv.Items)),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.PaidDate != nil {
		d := inv.PaidDate.Format(validation.DateLayout)
		f.PaidDate = &d
	}
	if inv.Client != nil {
		f.Client = &ClientRef{ID: inv.Client.ID, Name: inv.Client.Name}
	}
	for _, it := range inv.Items {
		f.Items = append(f.Items, FormattedInvoiceItem{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return f
}
