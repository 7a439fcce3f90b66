package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arahmani/freelance-ops/internal/models"
	"github.com/arahmani/freelance-ops/internal/validation"
)

// priorityOrder ranks priorities high > medium > low in SQL. Works on both
// postgres and sqlite.
const priorityOrder = "CASE tasks.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC"

// TaskService owns task CRUD. Tasks store no user id; every query joins the
// parent project filtered to the requesting user, so a task whose project
// belongs to someone else is invisible even when the id matches.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// FormattedTask is the external camelCase representation. The stored
// status "done" is exposed as "completed".
type FormattedTask struct {
	ID             uint        `json:"id"`
	ProjectID      uint        `json:"projectId"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Status         string      `json:"status"`
	Priority       string      `json:"priority"`
	DueDate        *string     `json:"dueDate,omitempty"`
	EstimatedHours float64     `json:"estimatedHours"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Project        *ProjectRef `json:"project"`
}

// ProjectRef is the minimal project embed on formatted responses.
type ProjectRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TaskPage struct {
	Data       []FormattedTask `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// TaskFilter narrows ListAll results.
type TaskFilter struct {
	Status   string
	Priority string
}

type CreateTaskInput struct {
	ProjectID      uint    `json:"projectId"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	DueDate        string  `json:"dueDate"`
	EstimatedHours float64 `json:"estimatedHours"`
}

// UpdateTaskInput applies only the defined fields.
type UpdateTaskInput struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Status         *string  `json:"status"`
	Priority       *string  `json:"priority"`
	DueDate        *string  `json:"dueDate"`
	EstimatedHours *float64 `json:"estimatedHours"`
}

func (s *TaskService) ownedTasks(userID uint) *gorm.DB {
	return s.db.Model(&models.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id AND projects.user_id = ?", userID)
}

// ListByProject returns a page of tasks ordered by priority descending then
// due date ascending. When projectID is given, project ownership is checked
// first.
func (s *TaskService) ListByProject(userID uint, projectID *uint, page, limit int, status string) (*TaskPage, error) {
	page, limit = NormalizePage(page, limit)

	q := s.ownedTasks(userID)
	if projectID != nil {
		if err := s.checkProject(*projectID, userID); err != nil {
			return nil, err
		}
		q = q.Where("tasks.project_id = ?", *projectID)
	}
	if status != "" {
		q = q.Where("tasks.status = ?", internalStatus(status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var tasks []models.Task
	err := q.Preload("Project").
		Order(priorityOrder).Order("tasks.due_date ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	out := make([]FormattedTask, 0, len(tasks))
	for i := range tasks {
		out = append(out, FormatTask(&tasks[i]))
	}
	return &TaskPage{Data: out, Pagination: makePagination(total, page, limit)}, nil
}

// ListAll returns every task across the user's projects, due date ascending.
func (s *TaskService) ListAll(userID uint, filter TaskFilter) ([]FormattedTask, error) {
	q := s.ownedTasks(userID)
	if filter.Status != "" {
		q = q.Where("tasks.status = ?", internalStatus(filter.Status))
	}
	if filter.Priority != "" {
		q = q.Where("tasks.priority = ?", filter.Priority)
	}

	var tasks []models.Task
	if err := q.Preload("Project").Order("tasks.due_date ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	out := make([]FormattedTask, 0, len(tasks))
	for i := range tasks {
		out = append(out, FormatTask(&tasks[i]))
	}
	return out, nil
}

// Get returns one task, ownership-checked via the project join.
func (s *TaskService) Get(taskID, userID uint) (*FormattedTask, error) {
	task, err := s.find(taskID, userID)
	if err != nil {
		return nil, err
	}
	f := FormatTask(task)
	return &f, nil
}

// Create adds a task to a user-owned project. Priority defaults to medium;
// new tasks always start as todo.
func (s *TaskService) Create(userID uint, in CreateTaskInput) (*FormattedTask, error) {
	if err := s.checkProject(in.ProjectID, userID); err != nil {
		return nil, err
	}
	priority := models.TaskPriority(in.Priority)
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !validPriority(priority) {
		return nil, BadRequest("Invalid task priority")
	}
	task := models.Task{
		ProjectID:      in.ProjectID,
		Title:          in.Title,
		Description:    in.Description,
		Priority:       priority,
		Status:         models.TaskStatusTodo,
		EstimatedHours: in.EstimatedHours,
	}
	if in.DueDate != "" {
		due, err := validation.ParseDate(in.DueDate)
		if err != nil {
			return nil, BadRequest("Invalid due date")
		}
		task.DueDate = &due
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return s.Get(task.ID, userID)
}

// Update applies the defined fields only.
func (s *TaskService) Update(taskID, userID uint, in UpdateTaskInput) (*FormattedTask, error) {
	task, err := s.find(taskID, userID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		st := internalStatus(*in.Status)
		if !validStatus(st) {
			return nil, BadRequest("Invalid task status")
		}
		task.Status = st
	}
	if in.Priority != nil {
		p := models.TaskPriority(*in.Priority)
		if !validPriority(p) {
			return nil, BadRequest("Invalid task priority")
		}
		task.Priority = p
	}
	if in.DueDate != nil {
		due, err := validation.ParseDate(*in.DueDate)
		if err != nil {
			return nil, BadRequest("Invalid due date")
		}
		task.DueDate = &due
	}
	if in.EstimatedHours != nil {
		task.EstimatedHours = *in.EstimatedHours
	}
	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return s.Get(task.ID, userID)
}

// UpdateStatus sets the status directly. Only the closed set
// {todo, in_progress, done} is accepted; the external alias "completed"
// maps to "done".
func (s *TaskService) UpdateStatus(taskID, userID uint, status string) (*FormattedTask, error) {
	st := internalStatus(status)
	if !validStatus(st) {
		return nil, BadRequest("Invalid task status")
	}
	task, err := s.find(taskID, userID)
	if err != nil {
		return nil, err
	}
	task.Status = st
	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return s.Get(task.ID, userID)
}

// Delete removes the task, ownership-checked.
func (s *TaskService) Delete(taskID, userID uint) error {
	task, err := s.find(taskID, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(task).Error
}

func (s *TaskService) find(taskID, userID uint) (*models.Task, error) {
	var task models.Task
	err := s.ownedTasks(userID).Preload("Project").
		Where("tasks.id = ?", taskID).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Task not found")
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) checkProject(projectID, userID uint) error {
	var project models.Project
	err := s.db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Project not found")
	}
	return err
}

// internalStatus maps the external alias "completed" back to the stored
// "done" value; everything else passes through.
func internalStatus(s string) models.TaskStatus {
	if s == "completed" {
		return models.TaskStatusDone
	}
	return models.TaskStatus(s)
}

func validStatus(s models.TaskStatus) bool {
	switch s {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return true
	}
	return false
}

func validPriority(p models.TaskPriority) bool {
	switch p {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return true
	}
	return false
}

// FormatTask maps a stored task to its external representation.
func FormatTask(task *models.Task) FormattedTask {
	f := FormattedTask{
		ID:             task.ID,
		ProjectID:      task.ProjectID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		EstimatedHours: task.EstimatedHours,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if task.Status == models.TaskStatusDone {
		f.Status = "completed"
	}
	if task.DueDate != nil {
		d := task.DueDate.Format(validation.DateLayout)
		f.DueDate = &d
	}
	if task.Project != nil {
		f.Project = &ProjectRef{ID: task.Project.ID, Name: task.Project.Name}
	}
	return f
}
