package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openrecruit/ats-backend/internal/apperrors"
	"github.com/openrecruit/ats-backend/internal/dtos"
	"github.com/openrecruit/ats-backend/internal/models"
)

// StatsFilter narrows the application set the stats are computed over.
// Dates are calendar-day granular on submitted_at, both ends inclusive.
type StatsFilter struct {
	JobID    *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// funnelStages pairs the dashboard funnel labels with fixed chart colors.
// Order matches the pipeline; values use the cumulative-inclusive buckets
// computed in AdvancedStats.
var funnelStages = []struct {
	Label string
	Color string
}{
	{"Applied", "#3B82F6"},
	{"Screening", "#10B981"},
	{"Interview", "#F59E0B"},
	{"Offer", "#EF4444"},
	{"Hired", "#8B5CF6"},
}

// StatsService computes read-only analytics over applications. It never
// mutates anything it reads; every percentage and average is defined on an
// empty input (absent rate, empty breakdown, zeroed funnel).
type StatsService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStatsService(db *gorm.DB, log *zap.Logger) *StatsService {
	return &StatsService{db: db, log: log}
}

// AdvancedStats builds the full dashboard report from one filtered query
// pass: status breakdown, stage conversion rates, dwell time per stage,
// funnel counts, and a gap-free daily submission trend.
func (s *StatsService) AdvancedStats(ctx context.Context, filter StatsFilter) (*dtos.AdvancedStatsResponse, error) {
	q := s.db.WithContext(ctx).Model(&models.Application{})
	if filter.JobID != nil {
		q = q.Where("job_id = ?", *filter.JobID)
	}
	if filter.DateFrom != nil {
		q = q.Where("submitted_at >= ?", startOfDay(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		q = q.Where("submitted_at < ?", startOfDay(*filter.DateTo).AddDate(0, 0, 1))
	}

	var apps []models.Application
	if err := q.Find(&apps).Error; err != nil {
		s.log.Error("stats query failed", zap.Error(err))
		return nil, &apperrors.StorageError{Op: "load applications for stats", Err: err}
	}

	total := len(apps)
	s.log.Debug("stats pass loaded applications",
		zap.Int("total", total),
		zap.Bool("job_filter", filter.JobID != nil),
	)
	statusCounts := make(map[models.ApplicationStatus]int)
	for _, app := range apps {
		statusCounts[app.Status]++
	}

	// 1. Status breakdown, in pipeline order, only statuses present.
	breakdown := make([]dtos.StatusBreakdown, 0, len(statusCounts))
	for _, status := range models.AllStatuses() {
		count := statusCounts[status]
		if count == 0 {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = round2(float64(count) / float64(total) * 100)
		}
		breakdown = append(breakdown, dtos.StatusBreakdown{
			Status:     string(status),
			Count:      count,
			Percentage: pct,
		})
	}

	// 2. Cumulative-inclusive pipeline buckets. "Reached screening" sums
	// SCREENING and every later stage, HIRED included, REJECTED excluded.
	// This is an approximation of true funnel traversal: an application
	// sitting in INTERVIEWED is counted as having reached screening, but
	// the buckets never consult the audit trail to verify the actual path.
	applied := cumulativeCount(statusCounts, models.StatusSubmitted)
	screening := cumulativeCount(statusCounts, models.StatusScreening)
	interview := cumulativeCount(statusCounts, models.StatusInterviewScheduled)
	offer := cumulativeCount(statusCounts, models.StatusOfferExtended)
	hired := statusCounts[models.StatusHired]

	conversion := dtos.ConversionMetrics{
		AppliedToScreening:   rate(screening, applied),
		ScreeningToInterview: rate(interview, screening),
		InterviewToOffer:     rate(offer, interview),
		OfferToHired:         rate(hired, offer),
		OverallConversion:    rate(hired, applied),
	}

	// 3. Dwell time per stage: how long applications currently in each
	// status have been sitting there (submission to last update), not the
	// cumulative historical time spent in the stage.
	stageTimes := make([]dtos.StageTimeMetrics, 0)
	for _, status := range models.AllStatuses() {
		var days []float64
		for _, app := range apps {
			if app.Status != status {
				continue
			}
			days = append(days, app.UpdatedAt.Sub(app.SubmittedAt).Hours()/24)
		}
		if len(days) == 0 {
			continue
		}
		sum, minD, maxD := days[0], days[0], days[0]
		for _, d := range days[1:] {
			sum += d
			minD = math.Min(minD, d)
			maxD = math.Max(maxD, d)
		}
		stageTimes = append(stageTimes, dtos.StageTimeMetrics{
			Stage:   string(status),
			AvgDays: round2(sum / float64(len(days))),
			MinDays: round2(minD),
			MaxDays: round2(maxD),
			Count:   len(days),
		})
	}

	// 4. Funnel, Chart.js ready.
	funnel := dtos.FunnelData{
		Labels: make([]string, len(funnelStages)),
		Values: []int{applied, screening, interview, offer, hired},
		Colors: make([]string, len(funnelStages)),
	}
	for i, stage := range funnelStages {
		funnel.Labels[i] = stage.Label
		funnel.Colors[i] = stage.Color
	}

	// 5. Daily trend over the requested window, defaulting to the last 30
	// days. Every date in the window appears, zero counts included.
	now := time.Now().UTC()
	from := startOfDay(now.AddDate(0, 0, -30))
	to := startOfDay(now)
	if filter.DateFrom != nil {
		from = startOfDay(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		to = startOfDay(*filter.DateTo)
	}

	dailyCounts := make(map[string]int)
	for _, app := range apps {
		day := startOfDay(app.SubmittedAt.UTC())
		if day.Before(from) || day.After(to) {
			continue
		}
		dailyCounts[day.Format("2006-01-02")]++
	}

	trends := dtos.DailyTrends{Labels: []string{}, Values: []int{}}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		label := day.Format("2006-01-02")
		trends.Labels = append(trends.Labels, label)
		trends.Values = append(trends.Values, dailyCounts[label])
	}

	return &dtos.AdvancedStatsResponse{
		TotalApplications: total,
		DateRange: dtos.DateRange{
			From: from.Format("2006-01-02"),
			To:   to.Format("2006-01-02"),
		},
		StatusBreakdown:   breakdown,
		ConversionMetrics: conversion,
		AvgTimePerStage:   stageTimes,
		FunnelData:        funnel,
		DailyTrends:       trends,
	}, nil
}

// cumulativeCount sums the counts of from and every later pipeline stage up
// to HIRED. REJECTED sits outside the pipeline order and is never included.
func cumulativeCount(counts map[models.ApplicationStatus]int, from models.ApplicationStatus) int {
	sum := 0
	counting := false
	for _, status := range models.AllStatuses() {
		if status == from {
			counting = true
		}
		if status == models.StatusRejected {
			continue
		}
		if counting {
			sum += counts[status]
		}
	}
	return sum
}

// rate returns num/den as a percentage rounded to 2 decimals, or nil when
// the denominator is zero (absent, never a division error).
func rate(num, den int) *float64 {
	if den == 0 {
		return nil
	}
	v := round2(float64(num) / float64(den) * 100)
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
