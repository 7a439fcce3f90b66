package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/arahmani/freelance-ops/internal/auth"
	"github.com/arahmani/freelance-ops/internal/httpx"
	"github.com/arahmani/freelance-ops/internal/models"
	"github.com/arahmani/freelance-ops/internal/services"
	"github.com/arahmani/freelance-ops/internal/validation"
)

type ProjectHandler struct {
	DB *gorm.DB
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler { return &ProjectHandler{DB: db} }

type projectRequest struct {
	ClientID    uint    `json:"clientId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BillingType string  `json:"billingType"`
	HourlyRate  float64 `json:"hourlyRate"`
	Status      string  `json:"status"`
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	page, limit := pageQuery(r)
	page, limit = services.NormalizePage(page, limit)

	q := h.DB.Model(&models.Project{}).Where("user_id = ?", userID)
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	var projects []models.Project
	err := q.Preload("Client").Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&projects).Error
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Projects retrieved successfully", map[string]any{
		"data": projects,
		"pagination": services.Pagination{
			Total: total,
			Page:  page,
			Pages: int((total + int64(limit) - 1) / int64(limit)),
			Limit: limit,
		},
	})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	project, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Project retrieved successfully", project)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.Fail(w, http.StatusBadRequest, "Project name is required")
		return
	}
	if req.ClientID == 0 {
		httpx.Fail(w, http.StatusBadRequest, "Client is required")
		return
	}
	// The client must belong to the requesting user.
	var client models.Client
	err := h.DB.Where("id = ? AND user_id = ?", req.ClientID, userID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, services.NotFound("Client not found"))
		return
	}
	if err != nil {
		httpx.Error(w, err)
		return
	}
	project := models.Project{
		UserID:      userID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		BillingType: models.BillingTypeHourly,
		HourlyRate:  req.HourlyRate,
		Status:      models.ProjectStatusActive,
	}
	if req.BillingType != "" {
		project.BillingType = models.BillingType(req.BillingType)
	}
	if req.Status != "" {
		project.Status = models.ProjectStatus(req.Status)
	}
	if err := h.DB.Create(&project).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, "Project created successfully", &project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	project, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		BillingType *string  `json:"billingType"`
		HourlyRate  *float64 `json:"hourlyRate"`
		Status      *string  `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.BillingType != nil {
		project.BillingType = models.BillingType(*req.BillingType)
	}
	if req.HourlyRate != nil {
		project.HourlyRate = *req.HourlyRate
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}
	if err := h.DB.Save(project).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Project updated successfully", project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	project, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.DB.Delete(project).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Project deleted successfully", nil)
}

func (h *ProjectHandler) find(id, userID uint) (*models.Project, error) {
	var project models.Project
	err := h.DB.Preload("Client").Where("id = ? AND user_id = ?", id, userID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NotFound("Project not found")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}
