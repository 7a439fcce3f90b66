package services

import (
	"context"
	"testing"
	"time"

	"github.com/arahmani/freelance-ops/internal/models"
)

func TestWeekBounds(t *testing.T) {
	// Wednesday 2025-06-11.
	now := time.Date(2025, 6, 11, 15, 30, 0, 0, time.Local)
	start, end := WeekBounds(now)

	wantStart := time.Date(2025, 6, 8, 0, 0, 0, 0, time.Local)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want Sunday %v", start, wantStart)
	}
	wantEnd := time.Date(2025, 6, 14, 23, 59, 59, 999000000, time.Local)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want Saturday %v", end, wantEnd)
	}

	// A Sunday is the start of its own week.
	start2, _ := WeekBounds(wantStart)
	if !start2.Equal(wantStart) {
		t.Errorf("Sunday start = %v, want %v", start2, wantStart)
	}
}

func TestDashboardSummary(t *testing.T) {
	db := setupTestDB(t)
	u1, u2, c1, _, p1 := seedInvoiceFixtures(t, db)
	svc := NewDashboardService(db)

	// Second client and a non-active project for the first user.
	db.Create(&models.Client{UserID: u1.ID, Name: "Initech"})
	db.Create(&models.Project{UserID: u1.ID, ClientID: c1.ID, Name: "Archive", Status: models.ProjectStatusCompleted})
	db.Model(&models.Project{}).Where("id = ?", p1.ID).Update("status", models.ProjectStatusActive)

	weekStart, weekEnd := WeekBounds(time.Now())
	entries := []models.TimeEntry{
		{UserID: u1.ID, ProjectID: p1.ID, Date: weekStart, DurationMinutes: 60},             // first instant, included
		{UserID: u1.ID, ProjectID: p1.ID, Date: weekEnd, DurationMinutes: 30},               // last instant, included
		{UserID: u1.ID, ProjectID: p1.ID, Date: weekStart.AddDate(0, 0, -1), DurationMinutes: 999}, // previous week
		{UserID: u2.ID, ProjectID: p1.ID, Date: weekStart, DurationMinutes: 999},            // other user
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("entry %d: %v", i, err)
		}
	}

	invoices := []models.Invoice{
		{UserID: u1.ID, ClientID: c1.ID, Number: "D-1", Status: models.InvoiceStatusPaid, TotalTTC: 100, IssueDate: weekStart, DueDate: weekEnd},
		{UserID: u1.ID, ClientID: c1.ID, Number: "D-2", Status: models.InvoiceStatusDraft, TotalTTC: 50, IssueDate: weekStart, DueDate: weekEnd},
		{UserID: u1.ID, ClientID: c1.ID, Number: "D-3", Status: models.InvoiceStatusSent, TotalTTC: 25, IssueDate: weekStart, DueDate: weekEnd},
	}
	for i := range invoices {
		if err := db.Create(&invoices[i]).Error; err != nil {
			t.Fatalf("invoice %d: %v", i, err)
		}
	}

	sum, err := svc.Summary(context.Background(), u1.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalClients != 2 {
		t.Errorf("totalClients = %d, want 2", sum.TotalClients)
	}
	if sum.ActiveProjects != 1 {
		t.Errorf("activeProjects = %d, want 1 (completed projects excluded)", sum.ActiveProjects)
	}
	if sum.HoursThisWeek != 1.5 {
		t.Errorf("hoursThisWeek = %v, want 1.5 (90 minutes inside the week)", sum.HoursThisWeek)
	}
	if sum.PaidAmount != 100 {
		t.Errorf("paidAmount = %v, want 100", sum.PaidAmount)
	}
	if sum.UnpaidAmount != 75 {
		t.Errorf("unpaidAmount = %v, want 75 (draft + sent)", sum.UnpaidAmount)
	}
	if sum.PendingCount != 2 {
		t.Errorf("pendingCount = %d, want 2", sum.PendingCount)
	}
}

func TestDashboardSummaryEmpty(t *testing.T) {
	db := setupTestDB(t)
	u1 := models.User{Email: "solo@test", Password: "x"}
	if err := db.Create(&u1).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	sum, err := NewDashboardService(db).Summary(context.Background(), u1.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalClients != 0 || sum.ActiveProjects != 0 || sum.HoursThisWeek != 0 ||
		sum.PaidAmount != 0 || sum.UnpaidAmount != 0 || sum.PendingCount != 0 {
		t.Errorf("empty summary not zeroed: %+v", sum)
	}
}
