// Package csvio converts between CSV files and application records. Import
// is tolerant per the synonym tables below; a bad row is skipped and
// reported, it never aborts the batch.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtrack-backend/internal/model"
)

// RowError describes one rejected CSV row. Row is 1-based over data rows
// (the header row is row 0).
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult carries the parsed applications and the per-row failures.
type ImportResult struct {
	Applications []model.Application
	Errors       []RowError
}

// headerSynonyms maps normalized (trimmed, lowercased) header names to
// canonical field keys.
var headerSynonyms = map[string]string{
	"company":            "company",
	"company name":       "company",
	"employer":           "company",
	"organization":       "company",
	"role":               "role",
	"position":           "role",
	"title":              "role",
	"job title":          "role",
	"job":                "role",
	"date applied":       "date_applied",
	"date_applied":       "date_applied",
	"dateapplied":        "date_applied",
	"date":               "date_applied",
	"applied":            "date_applied",
	"applied date":       "date_applied",
	"application date":   "date_applied",
	"status":             "status",
	"stage":              "status",
	"application status": "status",
	"visa sponsorship":   "visa_sponsorship",
	"visa_sponsorship":   "visa_sponsorship",
	"visasponsorship":    "visa_sponsorship",
	"visa":               "visa_sponsorship",
	"sponsorship":        "visa_sponsorship",
}

// trueTokens are the accepted spellings of a true boolean cell. Anything
// else is false.
var trueTokens = map[string]bool{
	"true":    true,
	"yes":     true,
	"y":       true,
	"1":       true,
	"checked": true,
}

var genericDateLayouts = []string{
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// ParseDate normalizes a date cell to YYYY-MM-DD. Resolution order: ISO
// pass-through, generic layouts (taken as UTC), MM/DD/YYYY, then DD/MM/YYYY
// only when the first number cannot be a month.
func ParseDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("date is empty")
	}

	if parsed, err := time.ParseInLocation(model.DateLayout, value, time.UTC); err == nil {
		return parsed.Format(model.DateLayout), nil
	}

	for _, layout := range genericDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed.UTC().Format(model.DateLayout), nil
		}
	}

	if parsed, err := time.ParseInLocation("01/02/2006", value, time.UTC); err == nil {
		return parsed.Format(model.DateLayout), nil
	}

	// DD/MM/YYYY is ambiguous with MM/DD/YYYY; only accept it when the
	// leading number is provably a day.
	parts := strings.Split(value, "/")
	if len(parts) == 3 && len(parts[0]) <= 2 {
		if parsed, err := time.ParseInLocation("02/01/2006", value, time.UTC); err == nil && parsed.Day() > 12 {
			return parsed.Format(model.DateLayout), nil
		}
	}

	return "", fmt.Errorf("unrecognized date %q", raw)
}

// ParseBool interprets a boolean cell against the accepted token set.
func ParseBool(raw string) bool {
	return trueTokens[strings.ToLower(strings.TrimSpace(raw))]
}

const maxFieldLen = 100

// Import reads CSV data and produces one application per valid row, stamped
// with the owner, a fresh id, and the given creation time. Rows that fail
// validation are collected in the result's Errors and skipped.
func Import(r io.Reader, userID uuid.UUID, now time.Time) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if field, ok := headerSynonyms[normalized]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}

	for _, required := range []string{"company", "role", "date_applied"} {
		if _, ok := columns[required]; !ok {
			return ImportResult{}, fmt.Errorf("CSV is missing a %q column", required)
		}
	}

	result := ImportResult{
		Applications: []model.Application{},
		Errors:       []RowError{},
	}

	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				Row: rowNum, Field: "", Message: fmt.Sprintf("malformed row: %v", err),
			})
			continue
		}

		cell := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		app, rowErr := parseRow(cell, now)
		if rowErr != nil {
			rowErr.Row = rowNum
			result.Errors = append(result.Errors, *rowErr)
			continue
		}

		app.ID = uuid.New()
		app.UserID = userID
		app.Timestamp = now.UnixMilli()
		result.Applications = append(result.Applications, app)
	}

	return result, nil
}

func parseRow(cell func(string) string, now time.Time) (model.Application, *RowError) {
	var app model.Application

	company := cell("company")
	if company == "" {
		return app, &RowError{Field: "company", Message: "company is required"}
	}
	if len(company) > maxFieldLen {
		return app, &RowError{Field: "company", Message: fmt.Sprintf("company must be at most %d characters", maxFieldLen)}
	}

	role := cell("role")
	if role == "" {
		return app, &RowError{Field: "role", Message: "role is required"}
	}
	if len(role) > maxFieldLen {
		return app, &RowError{Field: "role", Message: fmt.Sprintf("role must be at most %d characters", maxFieldLen)}
	}

	date, err := ParseDate(cell("date_applied"))
	if err != nil {
		return app, &RowError{Field: "date_applied", Message: err.Error()}
	}
	if err := model.ValidateDateApplied(date, now); err != nil {
		return app, &RowError{Field: "date_applied", Message: err.Error()}
	}

	status := model.StatusApplied
	if raw := cell("status"); raw != "" {
		normalized, ok := model.NormalizeStatus(raw)
		if !ok {
			return app, &RowError{Field: "status", Message: fmt.Sprintf("unknown status %q", raw)}
		}
		status = normalized
	}

	app.Company = company
	app.Role = role
	app.DateApplied = date
	app.Status = status
	app.VisaSponsorship = ParseBool(cell("visa_sponsorship"))
	return app, nil
}
