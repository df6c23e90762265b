// Package model contain gorm model for recording data to database
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// The six pipeline statuses, in funnel order. Rejected is terminal and sits
// outside the funnel stages.
const (
	StatusApplied            = "Applied"
	StatusPhoneScreen        = "Phone Screen"
	StatusTechnicalInterview = "Technical Interview"
	StatusFinalRound         = "Final Round"
	StatusOffer              = "Offer"
	StatusRejected           = "Rejected"
)

// StatusOrder lists every valid status in pipeline order.
var StatusOrder = []string{
	StatusApplied,
	StatusPhoneScreen,
	StatusTechnicalInterview,
	StatusFinalRound,
	StatusOffer,
	StatusRejected,
}

// FunnelStages are the statuses that form the hiring funnel, in order.
// Rejected is excluded.
var FunnelStages = []string{
	StatusApplied,
	StatusPhoneScreen,
	StatusTechnicalInterview,
	StatusFinalRound,
	StatusOffer,
}

// statusSynonyms maps lowercased free-form status text (CSV imports, older
// exports) to the canonical status value.
var statusSynonyms = map[string]string{
	"applied":             StatusApplied,
	"submitted":           StatusApplied,
	"application sent":    StatusApplied,
	"phone screen":        StatusPhoneScreen,
	"phone":               StatusPhoneScreen,
	"phone interview":     StatusPhoneScreen,
	"screening":           StatusPhoneScreen,
	"recruiter call":      StatusPhoneScreen,
	"hr interview":        StatusPhoneScreen,
	"technical interview": StatusTechnicalInterview,
	"technical":           StatusTechnicalInterview,
	"tech interview":      StatusTechnicalInterview,
	"coding interview":    StatusTechnicalInterview,
	"interview":           StatusTechnicalInterview,
	"final round":         StatusFinalRound,
	"final":               StatusFinalRound,
	"onsite":              StatusFinalRound,
	"on-site":             StatusFinalRound,
	"offer":               StatusOffer,
	"offered":             StatusOffer,
	"accepted":            StatusOffer,
	"hired":               StatusOffer,
	"rejected":            StatusRejected,
	"rejection":           StatusRejected,
	"declined":            StatusRejected,
	"turned down":         StatusRejected,
}

// NormalizeStatus resolves free-form status text to one of the canonical
// status values. Returns false when the text matches nothing.
func NormalizeStatus(raw string) (string, bool) {
	status, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}

// StatusRank returns the position of status in the pipeline order, or -1 for
// unknown values.
func StatusRank(status string) int {
	for i, s := range StatusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// DateLayout is the wire format for applied dates.
const DateLayout = "2006-01-02"

// Application represents one tracked job application, owned by a single user.
type Application struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Company         string `gorm:"type:text;not null" json:"company"`
	Role            string `gorm:"type:text;not null" json:"role"`
	DateApplied     string `gorm:"type:text;not null" json:"date_applied"`
	Status          string `gorm:"type:text;not null" json:"status"`
	VisaSponsorship bool   `json:"visa_sponsorship"`

	// Timestamp is the creation time in epoch milliseconds. UpdatedAt is set
	// on every edit and left nil until the first one.
	Timestamp int64  `gorm:"not null" json:"timestamp"`
	UpdatedAt *int64 `json:"updated_at,omitempty"`

	// TagIDs references the static tag catalog. Set semantics, deduplicated.
	TagIDs pq.StringArray `gorm:"type:text[]" json:"-"`

	// Tags is the expanded catalog view of TagIDs, filled before responding.
	Tags []Tag `gorm:"-" json:"tags"`
}

const maxFieldLen = 100

// Validate checks the input-time invariants: company/role presence and
// length, canonical status, and a parseable applied date that is neither in
// the future nor more than ten years old.
func (a *Application) Validate(now time.Time) error {
	if strings.TrimSpace(a.Company) == "" {
		return fmt.Errorf("company is required")
	}
	if len(a.Company) > maxFieldLen {
		return fmt.Errorf("company must be at most %d characters", maxFieldLen)
	}
	if strings.TrimSpace(a.Role) == "" {
		return fmt.Errorf("role is required")
	}
	if len(a.Role) > maxFieldLen {
		return fmt.Errorf("role must be at most %d characters", maxFieldLen)
	}
	if StatusRank(a.Status) < 0 {
		return fmt.Errorf("status %q is not a valid status", a.Status)
	}
	return ValidateDateApplied(a.DateApplied, now)
}

// ValidateDateApplied parses date and rejects future dates and dates more
// than ten years in the past.
func ValidateDateApplied(date string, now time.Time) error {
	parsed, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return fmt.Errorf("date_applied %q is not a valid YYYY-MM-DD date", date)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(today) {
		return fmt.Errorf("date_applied %q is in the future", date)
	}
	if parsed.Before(today.AddDate(-10, 0, 0)) {
		return fmt.Errorf("date_applied %q is more than 10 years in the past", date)
	}
	return nil
}

// AppliedMillis returns the applied date at UTC midnight in epoch
// milliseconds, or 0 when the stored date is unparseable.
func (a *Application) AppliedMillis() int64 {
	parsed, err := time.ParseInLocation(DateLayout, a.DateApplied, time.UTC)
	if err != nil {
		return 0
	}
	return parsed.UnixMilli()
}

// SetTagIDs replaces the tag set, deduplicating by id and preserving first
// occurrence order.
func (a *Application) SetTagIDs(ids []string) {
	seen := make(map[string]bool, len(ids))
	deduped := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	a.TagIDs = deduped
}
