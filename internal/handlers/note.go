package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/arahmani/freelance-ops/internal/auth"
	"github.com/arahmani/freelance-ops/internal/httpx"
	"github.com/arahmani/freelance-ops/internal/models"
	"github.com/arahmani/freelance-ops/internal/services"
)

type NoteHandler struct {
	DB *gorm.DB
}

func NewNoteHandler(db *gorm.DB) *NoteHandler { return &NoteHandler{DB: db} }

type noteRequest struct {
	ProjectID *uint  `json:"projectId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	q := h.DB.Where("user_id = ?", userID)
	if v := r.URL.Query().Get("projectId"); v != "" {
		q = q.Where("project_id = ?", v)
	}
	var notes []models.Note
	if err := q.Order("updated_at DESC").Find(&notes).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Notes retrieved successfully", notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	note, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Note retrieved successfully", note)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Title == "" {
		httpx.Fail(w, http.StatusBadRequest, "Note title is required")
		return
	}
	if req.ProjectID != nil {
		var project models.Project
		err := h.DB.Where("id = ? AND user_id = ?", *req.ProjectID, userID).First(&project).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, services.NotFound("Project not found"))
			return
		}
		if err != nil {
			httpx.Error(w, err)
			return
		}
	}
	note := models.Note{UserID: userID, ProjectID: req.ProjectID, Title: req.Title, Content: req.Content}
	if err := h.DB.Create(&note).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, "Note created successfully", &note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	note, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if err := h.DB.Save(note).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Note updated successfully", note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	note, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.DB.Delete(note).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Note deleted successfully", nil)
}

func (h *NoteHandler) find(id, userID uint) (*models.Note, error) {
	var note models.Note
	err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NotFound("Note not found")
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}
