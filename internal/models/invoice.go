package models

import "time"

// InvoiceStatus represents the stored status of an invoice.
// "overdue" is a display-only derived state and is never persisted.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

// Invoice is a billing document issued to a client. Totals are fixed at
// creation time and are not recomputed when items change afterwards
// (updates are restricted to draft status anyway).
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"not null;uniqueIndex:idx_invoices_user_number" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Number is unique within a user's scope. The composite index closes
	// the read-then-write race left open by the application-level check.
	Number string `gorm:"size:50;not null;uniqueIndex:idx_invoices_user_number" json:"number"`

	IssueDate time.Time  `gorm:"not null" json:"issue_date"`
	DueDate   time.Time  `gorm:"not null" json:"due_date"`
	PaidDate  *time.Time `json:"paid_date,omitempty"`

	Status InvoiceStatus `gorm:"size:20;default:'draft'" json:"status"`

	TotalHT  float64 `gorm:"type:decimal(10,2);default:0" json:"total_ht"`  // subtotal
	TotalTVA float64 `gorm:"type:decimal(10,2);default:0" json:"total_tva"` // tax
	TotalTTC float64 `gorm:"type:decimal(10,2);default:0" json:"total_ttc"` // grand total
	Currency string  `gorm:"size:10;default:'EUR'" json:"currency"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// GetUserID implements the Ownable convention.
func (i *Invoice) GetUserID() uint {
	return i.UserID
}

// IsDraft returns true while the invoice can still be edited.
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

// InvoiceItem is one billable line. Total is quantity x unit price,
// computed once at creation and never re-derived.
type InvoiceItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID uint     `gorm:"index;not null" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID" json:"-"`

	ProjectID *uint    `gorm:"index" json:"project_id,omitempty"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"-"`

	Description string  `gorm:"size:500;not null" json:"description"`
	Quantity    float64 `gorm:"type:decimal(10,3);not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Total       float64 `gorm:"type:decimal(10,2);not null" json:"total"`
}
