package query

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"jobtrack-backend/internal/model"
)

var filterNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func sampleApps() []model.Application {
	return []model.Application{
		{
			Company:         "TechNova",
			Role:            "Backend Engineer",
			DateApplied:     "2026-08-26",
			Status:          model.StatusApplied,
			VisaSponsorship: true,
			TagIDs:          pq.StringArray{"industry-tech", "role-engineering"},
		},
		{
			Company:     "DataForge",
			Role:        "Data Analyst",
			DateApplied: "2026-08-01",
			Status:      model.StatusPhoneScreen,
			TagIDs:      pq.StringArray{"role-data"},
		},
		{
			Company:         "FinEdge Capital",
			Role:            "Platform Engineer",
			DateApplied:     "2026-06-15",
			Status:          model.StatusOffer,
			VisaSponsorship: true,
			TagIDs:          pq.StringArray{"industry-finance", "role-engineering"},
		},
		{
			Company:     "CloudWorks",
			Role:        "SRE",
			DateApplied: "2025-12-01",
			Status:      model.StatusRejected,
		},
	}
}

func TestApply_searchMatchesCompanyAndRole(t *testing.T) {
	apps := sampleApps()

	got := Apply(apps, Criteria{Search: "engineer"}, filterNow)
	assert.Len(t, got, 2)
	assert.Equal(t, "TechNova", got[0].Company)
	assert.Equal(t, "FinEdge Capital", got[1].Company)

	got = Apply(apps, Criteria{Search: "FORGE"}, filterNow)
	assert.Len(t, got, 1)
	assert.Equal(t, "DataForge", got[0].Company)
}

func TestApply_statusExactUnlessAll(t *testing.T) {
	apps := sampleApps()

	got := Apply(apps, Criteria{Status: model.StatusOffer}, filterNow)
	assert.Len(t, got, 1)
	assert.Equal(t, model.StatusOffer, got[0].Status)

	got = Apply(apps, Criteria{Status: "all"}, filterNow)
	assert.Len(t, got, len(apps))
}

func TestApply_dateRangeBuckets(t *testing.T) {
	apps := sampleApps()

	assert.Len(t, Apply(apps, Criteria{DateRange: RangeWeek}, filterNow), 1)
	assert.Len(t, Apply(apps, Criteria{DateRange: RangeMonth}, filterNow), 2)
	assert.Len(t, Apply(apps, Criteria{DateRange: RangeQuarter}, filterNow), 3)
}

func TestApply_visaEquality(t *testing.T) {
	apps := sampleApps()

	assert.Len(t, Apply(apps, Criteria{Visa: "true"}, filterNow), 2)
	assert.Len(t, Apply(apps, Criteria{Visa: "false"}, filterNow), 2)
	assert.Len(t, Apply(apps, Criteria{Visa: "all"}, filterNow), 4)
}

func TestApply_tagsRequireSuperset(t *testing.T) {
	apps := sampleApps()

	got := Apply(apps, Criteria{TagIDs: []string{"role-engineering"}}, filterNow)
	assert.Len(t, got, 2)

	got = Apply(apps, Criteria{TagIDs: []string{"role-engineering", "industry-tech"}}, filterNow)
	assert.Len(t, got, 1)
	assert.Equal(t, "TechNova", got[0].Company)

	got = Apply(apps, Criteria{TagIDs: []string{"role-engineering", "role-data"}}, filterNow)
	assert.Empty(t, got)
}

func TestApply_conjunctive(t *testing.T) {
	apps := sampleApps()

	got := Apply(apps, Criteria{Search: "engineer", Visa: "true", Status: model.StatusApplied}, filterNow)
	assert.Len(t, got, 1)
	assert.Equal(t, "TechNova", got[0].Company)
}

func TestApply_idempotent(t *testing.T) {
	apps := sampleApps()
	criteria := Criteria{Search: "engineer", Visa: "true"}

	once := Apply(apps, criteria, filterNow)
	twice := Apply(once, criteria, filterNow)
	assert.Equal(t, once, twice)
}

func TestApply_preservesOrderAndInput(t *testing.T) {
	apps := sampleApps()
	original := sampleApps()

	got := Apply(apps, Criteria{Visa: "true"}, filterNow)
	assert.Equal(t, "TechNova", got[0].Company)
	assert.Equal(t, "FinEdge Capital", got[1].Company)
	assert.Equal(t, original, apps)
}
