package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/arahmani/freelance-ops/internal/models"
)

// DashboardService computes the summary shown on the dashboard. Nothing is
// cached; every call recomputes from the database.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Summary is the flat dashboard payload.
type Summary struct {
	TotalClients   int64   `json:"totalClients"`
	ActiveProjects int64   `json:"activeProjects"`
	HoursThisWeek  float64 `json:"hoursThisWeek"`
	PaidAmount     float64 `json:"paidAmount"`
	UnpaidAmount   float64 `json:"unpaidAmount"`
	PendingCount   int64   `json:"pendingCount"`
}

// WeekBounds returns the local calendar week containing now: Sunday
// 00:00:00.000 through Saturday 23:59:59.999.
func WeekBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day()-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// Summary runs the four aggregations concurrently and assembles the result.
func (s *DashboardService) Summary(ctx context.Context, userID uint) (*Summary, error) {
	var out Summary

	weekStart, weekEnd := WeekBounds(time.Now())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Client{}).
			Where("user_id = ?", userID).
			Count(&out.TotalClients).Error
	})

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Project{}).
			Where("user_id = ? AND status = ?", userID, models.ProjectStatusActive).
			Count(&out.ActiveProjects).Error
	})

	g.Go(func() error {
		var entries []models.TimeEntry
		err := s.db.WithContext(gctx).
			Select("duration_minutes").
			Where("user_id = ? AND date BETWEEN ? AND ?", userID, weekStart, weekEnd).
			Find(&entries).Error
		if err != nil {
			return err
		}
		var minutes int
		for _, e := range entries {
			minutes += e.DurationMinutes
		}
		out.HoursThisWeek = float64(minutes) / 60
		return nil
	})

	g.Go(func() error {
		var invoices []models.Invoice
		err := s.db.WithContext(gctx).
			Select("total_ttc", "status").
			Where("user_id = ?", userID).
			Find(&invoices).Error
		if err != nil {
			return err
		}
		for _, inv := range invoices {
			if inv.Status == models.InvoiceStatusPaid {
				out.PaidAmount += inv.TotalTTC
			} else {
				out.UnpaidAmount += inv.TotalTTC
				out.PendingCount++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
