// Package analytics computes aggregate metrics over a snapshot of
// applications. Everything here is a pure function of its input.
package analytics

import (
	"math"
	"sort"
	"time"

	"jobtrack-backend/internal/model"
)

const dayMillis = 86400000

// WeekCount is one point of the weekly application velocity series. Week is
// the Monday of the ISO week in YYYY-MM-DD.
type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// FunnelStage is one step of the pipeline funnel. ConversionRate is relative
// to the previous stage's current count (seeded with the total), not to the
// number of applications that historically reached the previous stage:
// status is a point-in-time snapshot, not a history trail, so a true cohort
// funnel cannot be derived from it. Kept deliberately.
type FunnelStage struct {
	Stage          string  `json:"stage"`
	Count          int     `json:"count"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Metrics is the full analytics result for one user's applications.
type Metrics struct {
	TotalApplications   int            `json:"total_applications"`
	SuccessRate         float64        `json:"success_rate"`
	ResponseRate        float64        `json:"response_rate"`
	AverageTimeInStatus map[string]int `json:"average_time_in_status"`
	StatusDistribution  map[string]int `json:"status_distribution"`
	WeeklyVelocity      []WeekCount    `json:"weekly_velocity"`
	FunnelData          []FunnelStage  `json:"funnel_data"`
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Compute derives all metrics from the given applications.
func Compute(apps []model.Application) Metrics {
	total := len(apps)

	distribution := make(map[string]int, len(model.StatusOrder))
	for _, status := range model.StatusOrder {
		distribution[status] = 0
	}
	for _, app := range apps {
		distribution[app.Status]++
	}

	metrics := Metrics{
		TotalApplications:   total,
		StatusDistribution:  distribution,
		AverageTimeInStatus: averageTimeInStatus(apps),
		WeeklyVelocity:      weeklyVelocity(apps),
		FunnelData:          funnel(distribution, total),
	}

	if total > 0 {
		metrics.SuccessRate = round1(float64(distribution[model.StatusOffer]) / float64(total) * 100)
		responded := total - distribution[model.StatusApplied]
		metrics.ResponseRate = round1(float64(responded) / float64(total) * 100)
	}

	return metrics
}

// averageTimeInStatus computes, per status, the mean whole-day dwell time of
// its current records: floor((updatedAt ?? timestamp − appliedMillis)/day),
// rounded to the nearest integer. Statuses with no records report 0.
func averageTimeInStatus(apps []model.Application) map[string]int {
	sums := make(map[string]int64)
	counts := make(map[string]int)

	for _, app := range apps {
		end := app.Timestamp
		if app.UpdatedAt != nil {
			end = *app.UpdatedAt
		}
		days := int64(math.Floor(float64(end-app.AppliedMillis()) / dayMillis))
		sums[app.Status] += days
		counts[app.Status]++
	}

	averages := make(map[string]int, len(model.StatusOrder))
	for _, status := range model.StatusOrder {
		if counts[status] == 0 {
			averages[status] = 0
			continue
		}
		averages[status] = int(math.Round(float64(sums[status]) / float64(counts[status])))
	}
	return averages
}

// weekStart returns the Monday of date's ISO week.
func weekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return date.AddDate(0, 0, -offset)
}

// weeklyVelocity groups applications by the ISO-week Monday of their applied
// date, sorted ascending and truncated to the most recent 12 weeks.
func weeklyVelocity(apps []model.Application) []WeekCount {
	byWeek := make(map[string]int)
	for _, app := range apps {
		applied, err := time.ParseInLocation(model.DateLayout, app.DateApplied, time.UTC)
		if err != nil {
			continue
		}
		byWeek[weekStart(applied).Format(model.DateLayout)]++
	}

	weeks := make([]string, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)

	if len(weeks) > 12 {
		weeks = weeks[len(weeks)-12:]
	}

	velocity := make([]WeekCount, 0, len(weeks))
	for _, week := range weeks {
		velocity = append(velocity, WeekCount{Week: week, Count: byWeek[week]})
	}
	return velocity
}

// funnel builds the stage chain over the fixed funnel order. Each stage's
// conversion is count/previousStageCount with the seed set to the total.
func funnel(distribution map[string]int, total int) []FunnelStage {
	stages := make([]FunnelStage, 0, len(model.FunnelStages))
	previous := total
	for _, stage := range model.FunnelStages {
		count := distribution[stage]
		rate := 0.0
		if previous > 0 {
			rate = round1(float64(count) / float64(previous) * 100)
		}
		stages = append(stages, FunnelStage{
			Stage:          stage,
			Count:          count,
			ConversionRate: rate,
		})
		previous = count
	}
	return stages
}
