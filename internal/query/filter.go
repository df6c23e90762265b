// Package query implements the pure filter, sort, and pagination passes run
// over a per-user snapshot of applications. Every function returns a new
// slice and leaves its input untouched.
package query

import (
	"strings"
	"time"

	"jobtrack-backend/internal/model"
)

// Date-range buckets accepted by Criteria.DateRange.
const (
	RangeWeek    = "week"
	RangeMonth   = "month"
	RangeQuarter = "quarter"
)

// Criteria holds the conjunctive filter predicates. Zero values (or "all")
// disable the corresponding predicate.
type Criteria struct {
	// Search matches case-insensitive substrings of company and role.
	Search string
	// Status must equal exactly, unless empty or "all".
	Status string
	// DateRange is one of week, month, quarter.
	DateRange string
	// Visa is "true" or "false", unless empty or "all".
	Visa string
	// TagIDs must all be present on the record.
	TagIDs []string
}

func rangeDays(dateRange string) int {
	switch dateRange {
	case RangeWeek:
		return 7
	case RangeMonth:
		return 30
	case RangeQuarter:
		return 90
	default:
		return 0
	}
}

// Apply returns the applications matching every active predicate, preserving
// the input's relative order. now anchors the date-range bucket.
func Apply(apps []model.Application, c Criteria, now time.Time) []model.Application {
	matched := make([]model.Application, 0, len(apps))
	for _, app := range apps {
		if matches(app, c, now) {
			matched = append(matched, app)
		}
	}
	return matched
}

func matches(app model.Application, c Criteria, now time.Time) bool {
	if search := strings.ToLower(strings.TrimSpace(c.Search)); search != "" {
		haystack := strings.ToLower(app.Company + " " + app.Role)
		if !strings.Contains(haystack, search) {
			return false
		}
	}

	if c.Status != "" && c.Status != "all" && app.Status != c.Status {
		return false
	}

	if days := rangeDays(c.DateRange); days > 0 {
		applied, err := time.ParseInLocation(model.DateLayout, app.DateApplied, time.UTC)
		if err != nil {
			return false
		}
		cutoff := now.UTC().AddDate(0, 0, -days)
		if applied.Before(time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)) {
			return false
		}
	}

	if c.Visa == "true" && !app.VisaSponsorship {
		return false
	}
	if c.Visa == "false" && app.VisaSponsorship {
		return false
	}

	if len(c.TagIDs) > 0 {
		have := make(map[string]bool, len(app.TagIDs))
		for _, id := range app.TagIDs {
			have[id] = true
		}
		for _, id := range c.TagIDs {
			if !have[id] {
				return false
			}
		}
	}

	return true
}
