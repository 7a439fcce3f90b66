package models

import "time"

// TimeEntry records worked time against a project, optionally tied to a task.
type TimeEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ProjectID uint     `gorm:"index;not null" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	TaskID *uint `gorm:"index" json:"task_id,omitempty"`
	Task   *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`

	Date            time.Time `gorm:"index;not null" json:"date"`
	StartTime       string    `gorm:"size:5" json:"start_time,omitempty"` // HH:MM
	EndTime         string    `gorm:"size:5" json:"end_time,omitempty"`   // HH:MM
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
}

// GetUserID implements the Ownable convention.
func (t *TimeEntry) GetUserID() uint {
	return t.UserID
}
