package model

import (
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var validateNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func validApp() Application {
	return Application{
		Company:     "TechNova",
		Role:        "Backend Engineer",
		DateApplied: "2026-08-20",
		Status:      StatusApplied,
	}
}

func TestValidate_acceptsValidApplication(t *testing.T) {
	app := validApp()
	assert.NoError(t, app.Validate(validateNow))

	// today is allowed
	app.DateApplied = "2026-08-28"
	assert.NoError(t, app.Validate(validateNow))
}

func TestValidate_rejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Application)
		want   string
	}{
		{"empty company", func(a *Application) { a.Company = "  " }, "company is required"},
		{"long company", func(a *Application) { a.Company = strings.Repeat("x", 101) }, "at most 100"},
		{"empty role", func(a *Application) { a.Role = "" }, "role is required"},
		{"long role", func(a *Application) { a.Role = strings.Repeat("x", 101) }, "at most 100"},
		{"unknown status", func(a *Application) { a.Status = "Ghosted" }, "not a valid status"},
		{"bad date", func(a *Application) { a.DateApplied = "20-08-2026" }, "not a valid YYYY-MM-DD"},
		{"future date", func(a *Application) { a.DateApplied = "2026-08-29" }, "in the future"},
		{"ancient date", func(a *Application) { a.DateApplied = "2016-08-27" }, "10 years in the past"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			app := validApp()
			c.mutate(&app)
			err := app.Validate(validateNow)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"applied":          StatusApplied,
		"  Phone Screen  ": StatusPhoneScreen,
		"recruiter call":   StatusPhoneScreen,
		"INTERVIEW":        StatusTechnicalInterview,
		"onsite":           StatusFinalRound,
		"Accepted":         StatusOffer,
		"hired":            StatusOffer,
		"turned down":      StatusRejected,
	}
	for raw, want := range cases {
		got, ok := NormalizeStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := NormalizeStatus("ghosted")
	assert.False(t, ok)
}

func TestStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusRank(StatusApplied))
	assert.Equal(t, 4, StatusRank(StatusOffer))
	assert.Equal(t, 5, StatusRank(StatusRejected))
	assert.Equal(t, -1, StatusRank("Ghosted"))
}

func TestAppliedMillis(t *testing.T) {
	app := validApp()
	app.DateApplied = "2026-08-20"
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC).UnixMilli(), app.AppliedMillis())

	app.DateApplied = "garbage"
	assert.Equal(t, int64(0), app.AppliedMillis())
}

func TestSetTagIDs_dedupesPreservingOrder(t *testing.T) {
	app := validApp()
	app.SetTagIDs([]string{"industry-tech", "", "role-engineering", "industry-tech", "seniority-senior"})

	assert.Equal(t, pq.StringArray{"industry-tech", "role-engineering", "seniority-senior"}, app.TagIDs)
}
