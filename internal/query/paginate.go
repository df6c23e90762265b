package query

import "jobtrack-backend/internal/model"

// DefaultPageSize is used when the caller gives no page size.
const DefaultPageSize = 10

// Page describes the selected page of a listing.
type Page struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
}

// Paginate slices out the requested page. The page number is clamped to
// [1, ceil(total/pageSize)]; an empty input yields page 1 of 0.
func Paginate(apps []model.Application, pageSize, page int) ([]model.Application, Page) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(apps)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	meta := Page{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []model.Application{}, meta
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return apps[start:end], meta
}
