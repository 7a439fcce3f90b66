package models

import "time"

// User owns every other entity in the system, directly or through a
// Project/Invoice parent.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Name     string `gorm:"size:255" json:"name,omitempty"`
	Company  string `gorm:"size:255" json:"company,omitempty"`

	Clients     []Client    `gorm:"foreignKey:UserID" json:"-"`
	Projects    []Project   `gorm:"foreignKey:UserID" json:"-"`
	TimeEntries []TimeEntry `gorm:"foreignKey:UserID" json:"-"`
	Invoices    []Invoice   `gorm:"foreignKey:UserID" json:"-"`
	Notes       []Note      `gorm:"foreignKey:UserID" json:"-"`
}
