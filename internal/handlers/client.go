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

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

type clientRequest struct {
	Name           string `json:"name"`
	ContactEmail   string `json:"contactEmail"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	BillingAddress string `json:"billingAddress"`
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	page, limit := pageQuery(r)
	page, limit = services.NormalizePage(page, limit)

	q := h.DB.Model(&models.Client{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	var clients []models.Client
	if err := q.Order("name ASC").Limit(limit).Offset((page - 1) * limit).Find(&clients).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Clients retrieved successfully", map[string]any{
		"data": clients,
		"pagination": services.Pagination{
			Total: total,
			Page:  page,
			Pages: int((total + int64(limit) - 1) / int64(limit)),
			Limit: limit,
		},
	})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	client, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Client retrieved successfully", client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.Fail(w, http.StatusBadRequest, "Client name is required")
		return
	}
	client := models.Client{
		UserID:         userID,
		Name:           req.Name,
		ContactEmail:   req.ContactEmail,
		Phone:          req.Phone,
		Company:        req.Company,
		BillingAddress: req.BillingAddress,
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, "Client created successfully", &client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	client, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req struct {
		Name           *string `json:"name"`
		ContactEmail   *string `json:"contactEmail"`
		Phone          *string `json:"phone"`
		Company        *string `json:"company"`
		BillingAddress *string `json:"billingAddress"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ContactEmail != nil {
		client.ContactEmail = *req.ContactEmail
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Company != nil {
		client.Company = *req.Company
	}
	if req.BillingAddress != nil {
		client.BillingAddress = *req.BillingAddress
	}
	if err := h.DB.Save(client).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Client updated successfully", client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	client, err := h.find(id, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.DB.Delete(client).Error; err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Client deleted successfully", nil)
}

func (h *ClientHandler) find(id, userID uint) (*models.Client, error) {
	var client models.Client
	err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NotFound("Client not found")
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}
