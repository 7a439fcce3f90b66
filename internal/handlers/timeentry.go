package handlers

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/arahmani/freelance-ops/internal/auth"
	"github.com/arahmani/freelance-ops/internal/httpx"
	"github.com/arahmani/freelance-ops/internal/models"
	"github.com/arahmani/freelance-ops/internal/services"
	"github.com/arahmani/freelance-ops/internal/validation"
)

type TimeEntryHandler struct {
	DB *gorm.DB
}

func NewTimeEntryHandler(db *gorm.DB) *TimeEntryHandler { return &TimeEntryHandler{DB: db} }

type timeEntryRequest struct {
	ProjectID       uint   `json:"projectId"`
	TaskID          *uint  `json:"taskId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"` // HH:MM
	EndTime         string `json:"endTime"`   // HH:MM
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description"`
}

func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	page, limit := pageQuery(r)
	page, limit = services.NormalizePage(page, limit)

	q := h.DB.Model(&models.TimeEntry{}).Where("user_id = ?", userID)
	if v := r.URL.Query().Get("projectId"); v != "" {
		q = q.Where("project_id = ?", v)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	var entries []models.TimeEntry
	err := q.Preload("Project").Order("date DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&entries).Error
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Time entries retrieved successfully", map[string]any{
		"data": entries,
		"pagination": services.Pagination{
			Total: total,
			Page:  page,
			Pages: int((total + int64(limit) - 1) / int64(limit)),
			Limit: limit,
		},
	})
}

func (h *TimeEntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	entry, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Time entry retrieved successfully", entry)
}

func (h *TimeEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req timeEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.ProjectID == 0 {
		httpx.Fail(w, http.StatusBadRequest, "Project is required")
		return
	}
	var project models.Project
	err := h.DB.Where("id = ? AND user_id = ?", req.ProjectID, userID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, services.NotFound("Project not found"))
		return
	}
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Date == "" {
		httpx.Fail(w, http.StatusBadRequest, "Date is required")
		return
	}
	date, err := validation.ParseDate(req.Date)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid date")
		return
	}
	duration := req.DurationMinutes
	if duration == 0 && req.StartTime != "" && req.EndTime != "" {
		duration, err = minutesBetween(req.StartTime, req.EndTime)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Invalid start/end time")
			return
		}
	}
	v := make(validation.Violations)
	validation.PositiveInt("durationMinutes", duration, v)
	if !v.Empty() {
		httpx.Fail(w, http.StatusBadRequest, "Duration must be positive")
		return
	}
	entry := models.TimeEntry{
		UserID:          userID,
		ProjectID:       req.ProjectID,
		TaskID:          req.TaskID,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: duration,
		Description:     req.Description,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, "Time entry created successfully", &entry)
}

func (h *TimeEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	entry, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req struct {
		Date            *string `json:"date"`
		StartTime       *string `json:"startTime"`
		EndTime         *string `json:"endTime"`
		DurationMinutes *int    `json:"durationMinutes"`
		Description     *string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Date != nil {
		date, err := validation.ParseDate(*req.Date)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Invalid date")
			return
		}
		entry.Date = date
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			httpx.Fail(w, http.StatusBadRequest, "Duration must be positive")
			return
		}
		entry.DurationMinutes = *req.DurationMinutes
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if err := h.DB.Save(entry).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Time entry updated successfully", entry)
}

func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	entry, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.DB.Delete(entry).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Time entry deleted successfully", nil)
}

func (h *TimeEntryHandler) find(id, userID uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := h.DB.Preload("Project").Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NotFound("Time entry not found")
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// minutesBetween computes whole minutes from HH:MM to HH:MM on one day.
func minutesBetween(start, end string) (int, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, err
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Minutes()), nil
}
