// Package tagging implements the static tag catalog and the rule-based tag
// suggestion engine. The catalog is fixed reference data compiled into the
// binary; applications store catalog ids only.
package tagging

import "jobtrack-backend/internal/model"

// catalog is every tag the system knows about. Ids are stable; never reuse
// or renumber them, exports reference them.
var catalog = []model.Tag{
	// industry
	{ID: "industry-tech", Name: "Tech", Category: model.TagCategoryIndustry, Color: "#3B82F6"},
	{ID: "industry-finance", Name: "Finance", Category: model.TagCategoryIndustry, Color: "#10B981"},
	{ID: "industry-healthcare", Name: "Healthcare", Category: model.TagCategoryIndustry, Color: "#EF4444"},
	{ID: "industry-retail", Name: "Retail", Category: model.TagCategoryIndustry, Color: "#F59E0B"},
	{ID: "industry-consulting", Name: "Consulting", Category: model.TagCategoryIndustry, Color: "#8B5CF6"},

	// role-type
	{ID: "role-engineering", Name: "Engineering", Category: model.TagCategoryRoleType, Color: "#2563EB"},
	{ID: "role-data", Name: "Data", Category: model.TagCategoryRoleType, Color: "#0891B2"},
	{ID: "role-product", Name: "Product", Category: model.TagCategoryRoleType, Color: "#7C3AED"},
	{ID: "role-design", Name: "Design", Category: model.TagCategoryRoleType, Color: "#DB2777"},
	{ID: "role-management", Name: "Management", Category: model.TagCategoryRoleType, Color: "#4B5563"},

	// company-size
	{ID: "size-startup", Name: "Startup", Category: model.TagCategoryCompanySize, Color: "#F97316"},
	{ID: "size-midsize", Name: "Mid-size", Category: model.TagCategoryCompanySize, Color: "#84CC16"},
	{ID: "size-enterprise", Name: "Enterprise", Category: model.TagCategoryCompanySize, Color: "#6366F1"},

	// location
	{ID: "location-remote", Name: "Remote", Category: model.TagCategoryLocation, Color: "#14B8A6"},
	{ID: "location-hybrid", Name: "Hybrid", Category: model.TagCategoryLocation, Color: "#A855F7"},
	{ID: "location-onsite", Name: "On-site", Category: model.TagCategoryLocation, Color: "#64748B"},

	// seniority
	{ID: "seniority-intern", Name: "Intern", Category: model.TagCategorySeniority, Color: "#FBBF24"},
	{ID: "seniority-junior", Name: "Junior", Category: model.TagCategorySeniority, Color: "#34D399"},
	{ID: "seniority-mid", Name: "Mid-level", Category: model.TagCategorySeniority, Color: "#60A5FA"},
	{ID: "seniority-senior", Name: "Senior", Category: model.TagCategorySeniority, Color: "#F87171"},
	{ID: "seniority-staff", Name: "Staff+", Category: model.TagCategorySeniority, Color: "#C084FC"},
	{ID: "seniority-executive", Name: "Executive", Category: model.TagCategorySeniority, Color: "#1F2937"},
}

var catalogByID = func() map[string]model.Tag {
	byID := make(map[string]model.Tag, len(catalog))
	for _, tag := range catalog {
		byID[tag.ID] = tag
	}
	return byID
}()

// Catalog returns the full static tag catalog.
func Catalog() []model.Tag {
	tags := make([]model.Tag, len(catalog))
	copy(tags, catalog)
	return tags
}

// Lookup resolves a catalog id. Returns false for unknown ids.
func Lookup(id string) (model.Tag, bool) {
	tag, ok := catalogByID[id]
	return tag, ok
}

// Resolve expands catalog ids to tags, silently skipping unknown ids so a
// stale export cannot break a response.
func Resolve(ids []string) []model.Tag {
	tags := make([]model.Tag, 0, len(ids))
	for _, id := range ids {
		if tag, ok := catalogByID[id]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
