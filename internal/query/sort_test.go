package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobtrack-backend/internal/model"
)

func sortApps() []model.Application {
	return []model.Application{
		{Company: "beta", Role: "A", DateApplied: "2026-03-01", Status: model.StatusOffer},
		{Company: "Alpha", Role: "B", DateApplied: "2026-01-15", Status: model.StatusApplied},
		{Company: "alpha", Role: "C", DateApplied: "2026-03-01", Status: model.StatusRejected},
		{Company: "Gamma", Role: "D", DateApplied: "2026-02-10", Status: model.StatusPhoneScreen},
	}
}

func TestSort_dateAscendingAndDescendingAreReverses(t *testing.T) {
	apps := sortApps()

	asc := Sort(apps, SortDateAsc)
	desc := Sort(apps, SortDateDesc)

	assert.Equal(t, "2026-01-15", asc[0].DateApplied)
	assert.Equal(t, "2026-03-01", desc[0].DateApplied)

	// same-key ties keep input order in both directions, so reversing the
	// distinct keys is enough to check
	for i := range asc {
		assert.Equal(t, asc[i].DateApplied, desc[len(desc)-1-i].DateApplied)
	}
}

func TestSort_stableOnTies(t *testing.T) {
	apps := sortApps()

	asc := Sort(apps, SortDateAsc)
	// the two 2026-03-01 records keep their input order: beta before alpha
	assert.Equal(t, "beta", asc[2].Company)
	assert.Equal(t, "alpha", asc[3].Company)
}

func TestSort_companyCaseInsensitive(t *testing.T) {
	apps := sortApps()

	got := Sort(apps, SortCompany)
	assert.Equal(t, "Alpha", got[0].Company)
	assert.Equal(t, "alpha", got[1].Company)
	assert.Equal(t, "beta", got[2].Company)
	assert.Equal(t, "Gamma", got[3].Company)
}

func TestSort_statusFollowsPipelineOrder(t *testing.T) {
	apps := sortApps()

	got := Sort(apps, SortStatus)
	assert.Equal(t, model.StatusApplied, got[0].Status)
	assert.Equal(t, model.StatusPhoneScreen, got[1].Status)
	assert.Equal(t, model.StatusOffer, got[2].Status)
	assert.Equal(t, model.StatusRejected, got[3].Status)
}

func TestSort_doesNotMutateInput(t *testing.T) {
	apps := sortApps()
	original := sortApps()

	_ = Sort(apps, SortCompany)
	assert.Equal(t, original, apps)
}
