package model

// Tag categories used by the static catalog.
const (
	TagCategoryIndustry    = "industry"
	TagCategoryRoleType    = "role-type"
	TagCategoryCompanySize = "company-size"
	TagCategoryLocation    = "location"
	TagCategorySeniority   = "seniority"
)

// Tag is immutable reference data drawn from the static catalog. Applications
// store tag ids only; the full struct is attached when responding.
type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color,omitempty"`
}
