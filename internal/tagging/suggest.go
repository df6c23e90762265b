package tagging

import (
	"sort"
	"strings"

	"jobtrack-backend/internal/model"
)

// AutoApplyThreshold is the confidence at or above which a suggestion is
// applied automatically on the create path.
const AutoApplyThreshold = 0.7

// Suggestion is one proposed tag with its heuristic confidence in [0,1].
type Suggestion struct {
	Tag        model.Tag `json:"tag"`
	Confidence float64   `json:"confidence"`
}

// keywordTable scores one tag category family: confidence =
// min(matches*weight + base, cap) over lowercase substring matches.
type keywordTable struct {
	weight   float64
	base     float64
	cap      float64
	keywords map[string][]string // tag id -> keywords
}

var industryTable = keywordTable{
	weight: 0.3, base: 0.4, cap: 0.9,
	keywords: map[string][]string{
		"industry-tech": {
			"google", "meta", "facebook", "amazon", "apple", "microsoft", "netflix",
			"software", "tech", "saas", "cloud", "platform", "app", "digital", "cyber", "ai",
		},
		"industry-finance": {
			"bank", "goldman", "morgan", "jpmorgan", "citi", "finance", "fintech",
			"capital", "trading", "hedge", "investment", "insurance",
		},
		"industry-healthcare": {
			"health", "hospital", "pharma", "medical", "biotech", "clinic", "care",
		},
		"industry-retail": {
			"retail", "walmart", "target", "commerce", "shop", "store", "grocery",
		},
		"industry-consulting": {
			"consult", "mckinsey", "bain", "bcg", "deloitte", "accenture", "pwc", "kpmg", "ey",
		},
	},
}

var roleTable = keywordTable{
	weight: 0.4, base: 0.3, cap: 0.95,
	keywords: map[string][]string{
		"role-engineering": {
			"engineer", "developer", "swe", "sde", "programmer", "backend", "frontend",
			"full stack", "fullstack", "devops", "sre", "mobile", "ios", "android", "embedded",
		},
		"role-data": {
			"data scientist", "data analyst", "data engineer", "machine learning",
			"ml engineer", "analytics", "statistician",
		},
		"role-product": {
			"product manager", "product owner", "program manager", "tpm",
		},
		"role-design": {
			"designer", "ux", "ui", "user experience",
		},
		"role-management": {
			"engineering manager", "director", "team lead", "head of",
		},
	},
}

var seniorityTable = keywordTable{
	weight: 0.5, base: 0.2, cap: 0.9,
	keywords: map[string][]string{
		"seniority-intern":    {"intern", "internship", "co-op", "coop"},
		"seniority-junior":    {"junior", "entry level", "entry-level", "graduate", "new grad"},
		"seniority-mid":       {"mid level", "mid-level", "intermediate"},
		"seniority-senior":    {"senior", "sr.", "sr "},
		"seniority-staff":     {"staff", "principal", "distinguished"},
		"seniority-executive": {"vp ", "vice president", "chief", "cto", "ceo", "coo"},
	},
}

func (t keywordTable) score(text string) []Suggestion {
	var suggestions []Suggestion
	// iterate the catalog rather than the map so ties rank deterministically
	for _, tag := range catalog {
		keywords, ok := t.keywords[tag.ID]
		if !ok {
			continue
		}
		matches := 0
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		confidence := float64(matches)*t.weight + t.base
		if confidence > t.cap {
			confidence = t.cap
		}
		suggestions = append(suggestions, Suggestion{Tag: tag, Confidence: confidence})
	}
	return suggestions
}

// Suggest proposes up to three tags for the given company and role, ranked
// by descending confidence. Deterministic and side-effect free.
func Suggest(company, role string) []Suggestion {
	text := strings.ToLower(company + " " + role)

	suggestions := industryTable.score(text)
	suggestions = append(suggestions, roleTable.score(text)...)
	suggestions = append(suggestions, seniorityTable.score(text)...)

	// remote work gets a fixed-confidence location suggestion
	if strings.Contains(text, "remote") {
		if tag, ok := Lookup("location-remote"); ok {
			suggestions = append(suggestions, Suggestion{Tag: tag, Confidence: 0.8})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// AutoApply writes high-confidence suggestions onto a freshly created
// application, but only when it carries no tags yet. Returns true when the
// tag set changed. This is the write side of the suggestion engine; callers
// persist the record afterwards.
func AutoApply(app *model.Application) bool {
	if len(app.TagIDs) > 0 {
		return false
	}

	ids := []string{}
	for _, s := range Suggest(app.Company, app.Role) {
		if s.Confidence >= AutoApplyThreshold {
			ids = append(ids, s.Tag.ID)
		}
	}
	if len(ids) == 0 {
		return false
	}

	app.SetTagIDs(ids)
	return true
}
