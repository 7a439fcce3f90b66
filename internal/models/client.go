package models

import "time"

// Client represents a customer the user bills.
// Implements the Ownable convention used for ownership checks.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// UserID is the owner of this client (multi-tenant isolation).
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Name           string `gorm:"size:255;not null" json:"name"`
	ContactEmail   string `gorm:"size:255" json:"contact_email,omitempty"`
	Phone          string `gorm:"size:50" json:"phone,omitempty"`
	Company        string `gorm:"size:255" json:"company,omitempty"`
	BillingAddress string `gorm:"size:500" json:"billing_address,omitempty"`

	Projects []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`
}

// GetUserID implements the Ownable convention.
func (c *Client) GetUserID() uint {
	return c.UserID
}
