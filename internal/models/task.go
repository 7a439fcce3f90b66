package models

import "time"

// TaskStatus is the stored task state. The external representation maps
// "done" to "completed"; see services.FormatTask.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority orders tasks in listings (high before medium before low).
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task belongs to a project. It carries no user_id of its own: ownership
// is enforced through a join on the parent project.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID uint     `gorm:"index;not null" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	Title          string       `gorm:"size:255;not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	Status         TaskStatus   `gorm:"size:20;default:'todo'" json:"status"`
	Priority       TaskPriority `gorm:"size:20;default:'medium'" json:"priority"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	EstimatedHours float64      `gorm:"type:decimal(6,2);default:0" json:"estimated_hours"`
}
