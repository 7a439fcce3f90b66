package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/arahmani/freelance-ops/internal/auth"
	"github.com/arahmani/freelance-ops/internal/handlers"
	"github.com/arahmani/freelance-ops/internal/httpx"
	"github.com/arahmani/freelance-ops/internal/models"
	"github.com/arahmani/freelance-ops/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// Tokens referring to deleted users are rejected on every request.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// protected wraps a handler with token parsing + auth enforcement.
	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, "ok", nil)
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.Fail(w, http.StatusServiceUnavailable, "degraded")
			return
		}
		httpx.JSON(w, http.StatusOK, "ok", nil)
	})

	// Auth endpoints
	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /api/auth/register", ah.Register)
	mux.HandleFunc("POST /api/auth/login", ah.Login)
	mux.Handle("GET /api/auth/me", protected(ah.Me))

	// Client endpoints
	ch := handlers.NewClientHandler(db)
	mux.Handle("GET /api/clients", protected(ch.List))
	mux.Handle("POST /api/clients", protected(ch.Create))
	mux.Handle("GET /api/clients/{id}", protected(ch.Get))
	mux.Handle("PUT /api/clients/{id}", protected(ch.Update))
	mux.Handle("DELETE /api/clients/{id}", protected(ch.Delete))

	// Project endpoints
	ph := handlers.NewProjectHandler(db)
	mux.Handle("GET /api/projects", protected(ph.List))
	mux.Handle("POST /api/projects", protected(ph.Create))
	mux.Handle("GET /api/projects/{id}", protected(ph.Get))
	mux.Handle("PUT /api/projects/{id}", protected(ph.Update))
	mux.Handle("DELETE /api/projects/{id}", protected(ph.Delete))

	// Task endpoints
	th := handlers.NewTaskHandler(services.NewTaskService(db))
	mux.Handle("GET /api/tasks", protected(th.List))
	mux.Handle("GET /api/tasks/by-project", protected(th.ListByProject))
	mux.Handle("POST /api/tasks", protected(th.Create))
	mux.Handle("GET /api/tasks/{id}", protected(th.Get))
	mux.Handle("PUT /api/tasks/{id}", protected(th.Update))
	mux.Handle("PATCH /api/tasks/{id}/status", protected(th.UpdateStatus))
	mux.Handle("DELETE /api/tasks/{id}", protected(th.Delete))

	// Time entry endpoints
	teh := handlers.NewTimeEntryHandler(db)
	mux.Handle("GET /api/time-entries", protected(teh.List))
	mux.Handle("POST /api/time-entries", protected(teh.Create))
	mux.Handle("GET /api/time-entries/{id}", protected(teh.Get))
	mux.Handle("PUT /api/time-entries/{id}", protected(teh.Update))
	mux.Handle("DELETE /api/time-entries/{id}", protected(teh.Delete))

	// Note endpoints
	nh := handlers.NewNoteHandler(db)
	mux.Handle("GET /api/notes", protected(nh.List))
	mux.Handle("POST /api/notes", protected(nh.Create))
	mux.Handle("GET /api/notes/{id}", protected(nh.Get))
	mux.Handle("PUT /api/notes/{id}", protected(nh.Update))
	mux.Handle("DELETE /api/notes/{id}", protected(nh.Delete))

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(services.NewInvoiceService(db))
	mux.Handle("GET /api/invoices", protected(ih.List))
	mux.Handle("POST /api/invoices", protected(ih.Create))
	mux.Handle("GET /api/invoices/{id}", protected(ih.Get))
	mux.Handle("PUT /api/invoices/{id}", protected(ih.Update))
	mux.Handle("POST /api/invoices/{id}/paid", protected(ih.MarkPaid))
	mux.Handle("GET /api/invoices/{id}/download", protected(ih.Download))
	mux.Handle("DELETE /api/invoices/{id}", protected(ih.Delete))

	// Dashboard
	dh := handlers.NewDashboardHandler(services.NewDashboardService(db))
	mux.Handle("GET /api/dashboard/summary", protected(dh.Summary))

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.Fail(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
