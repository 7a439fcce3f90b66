package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arahmani/freelance-ops/internal/models"
)

func TestNoteCreateStandalone(t *testing.T) {
	db := setupHandlerDB(t)
	u, _ := seedUserWithClient(t, db)
	h := NewNoteHandler(db)

	// Notes do not need a project.
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/notes",
		`{"title":"Ideas","content":"ship it"}`, u.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var note models.Note
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &note); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if note.ProjectID != nil {
		t.Errorf("projectId = %v, want nil", note.ProjectID)
	}

	// But the title is mandatory.
	rec = httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/notes", `{"content":"no title"}`, u.ID))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("untitled status = %d, want 400", rec.Code)
	}
}

func TestNoteCreateChecksProjectOwnership(t *testing.T) {
	db := setupHandlerDB(t)
	u, p := seedProject(t, db)
	other := models.User{Email: "other@test", Password: "x"}
	db.Create(&other)
	h := NewNoteHandler(db)

	body := fmt.Sprintf(`{"projectId": %d, "title": "Attached"}`, p.ID)
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/notes", body, u.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("own project status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/notes", body, other.ID))
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign project status = %d, want 404", rec.Code)
	}
}

func TestNoteUpdatePartial(t *testing.T) {
	db := setupHandlerDB(t)
	u, _ := seedUserWithClient(t, db)
	note := models.Note{UserID: u.ID, Title: "Draft", Content: "v1"}
	if err := db.Create(&note).Error; err != nil {
		t.Fatalf("note: %v", err)
	}
	h := NewNoteHandler(db)

	req := authedRequest(http.MethodPut, fmt.Sprintf("/api/notes/%d", note.ID), `{"content":"v2"}`, u.ID)
	req.SetPathValue("id", fmt.Sprint(note.ID))
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got models.Note
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Draft" || got.Content != "v2" {
		t.Errorf("note = %+v, want title untouched and content updated", got)
	}
}

func TestNoteListFilterByProject(t *testing.T) {
	db := setupHandlerDB(t)
	u, p := seedProject(t, db)
	db.Create(&models.Note{UserID: u.ID, ProjectID: &p.ID, Title: "On project"})
	db.Create(&models.Note{UserID: u.ID, Title: "Standalone"})
	h := NewNoteHandler(db)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, fmt.Sprintf("/api/notes?projectId=%d", p.ID), "", u.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var notes []models.Note
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &notes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "On project" {
		t.Errorf("filtered notes = %+v", notes)
	}
}
