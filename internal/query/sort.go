package query

import (
	"sort"
	"strings"

	"jobtrack-backend/internal/model"
)

// Sort keys. SortDateDesc is the default listing order.
const (
	SortDateDesc = "date_desc"
	SortDateAsc  = "date_asc"
	SortCompany  = "company"
	SortStatus   = "status"
)

// Sort returns a copy of apps ordered by the given key. The sort is stable:
// ties keep the input's relative order. Unknown keys fall back to date
// descending.
func Sort(apps []model.Application, key string) []model.Application {
	sorted := make([]model.Application, len(apps))
	copy(sorted, apps)

	var less func(a, b model.Application) bool
	switch key {
	case SortDateAsc:
		less = func(a, b model.Application) bool { return a.DateApplied < b.DateApplied }
	case SortCompany:
		less = func(a, b model.Application) bool {
			return strings.ToLower(a.Company) < strings.ToLower(b.Company)
		}
	case SortStatus:
		less = func(a, b model.Application) bool {
			return model.StatusRank(a.Status) < model.StatusRank(b.Status)
		}
	default:
		// date_desc; the YYYY-MM-DD layout sorts lexicographically
		less = func(a, b model.Application) bool { return a.DateApplied > b.DateApplied }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}
