package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arahmani/freelance-ops/internal/models"
)

func TestClientCRUD(t *testing.T) {
	db := setupHandlerDB(t)
	u := models.User{Email: "crud@test", Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	h := NewClientHandler(db)

	// Create
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/clients",
		`{"name":"Acme","contactEmail":"acme@test","company":"Acme Inc"}`, u.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created models.Client
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Update
	req := authedRequest(http.MethodPut, fmt.Sprintf("/api/clients/%d", created.ID), `{"name":"Acme Corp"}`, u.ID)
	req.SetPathValue("id", fmt.Sprint(created.ID))
	rec = httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Get reflects the update.
	req = authedRequest(http.MethodGet, fmt.Sprintf("/api/clients/%d", created.ID), "", u.ID)
	req.SetPathValue("id", fmt.Sprint(created.ID))
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	var got models.Client
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Acme Corp" {
		t.Errorf("name = %q, want Acme Corp", got.Name)
	}

	// Delete, then a get is 404.
	req = authedRequest(http.MethodDelete, fmt.Sprintf("/api/clients/%d", created.ID), "", u.ID)
	req.SetPathValue("id", fmt.Sprint(created.ID))
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	req = authedRequest(http.MethodGet, fmt.Sprintf("/api/clients/%d", created.ID), "", u.ID)
	req.SetPathValue("id", fmt.Sprint(created.ID))
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestClientCreateRequiresName(t *testing.T) {
	db := setupHandlerDB(t)
	u := models.User{Email: "noname@test", Password: "x"}
	db.Create(&u)
	h := NewClientHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/clients", `{"company":"Nameless"}`, u.ID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeEnvelope(t, rec).Message; msg != "Client name is required" {
		t.Errorf("message = %q", msg)
	}
}

func TestClientListScopedAndSorted(t *testing.T) {
	db := setupHandlerDB(t)
	u := models.User{Email: "list@test", Password: "x"}
	other := models.User{Email: "other@test", Password: "x"}
	db.Create(&u)
	db.Create(&other)
	db.Create(&models.Client{UserID: u.ID, Name: "Zeta"})
	db.Create(&models.Client{UserID: u.ID, Name: "Alpha"})
	db.Create(&models.Client{UserID: other.ID, Name: "Foreign"})
	h := NewClientHandler(db)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/clients", "", u.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var page struct {
		Data []models.Client `json:"data"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("clients = %d, want 2 (other user's excluded)", len(page.Data))
	}
	if page.Data[0].Name != "Alpha" || page.Data[1].Name != "Zeta" {
		t.Errorf("not sorted by name: %q, %q", page.Data[0].Name, page.Data[1].Name)
	}
}
