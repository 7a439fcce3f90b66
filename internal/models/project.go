package models

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPaused    ProjectStatus = "paused"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// BillingType describes how a project is billed.
type BillingType string

const (
	BillingTypeHourly BillingType = "hourly"
	BillingTypeFixed  BillingType = "fixed"
)

// Project groups tasks and time entries for a client.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	BillingType BillingType   `gorm:"size:20;default:'hourly'" json:"billing_type"`
	HourlyRate  float64       `gorm:"type:decimal(10,2);default:0" json:"hourly_rate"`
	Status      ProjectStatus `gorm:"size:20;default:'active'" json:"status"`

	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

// GetUserID implements the Ownable convention.
func (p *Project) GetUserID() uint {
	return p.UserID
}
