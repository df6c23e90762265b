package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"jobtrack-backend/internal/model"
	"jobtrack-backend/internal/tagging"
)

// exportHeader is chosen so that Export output re-imports cleanly; every
// column name is in the import synonym table (tags are intentionally not
// re-imported, suggestion is the only tagging path on import).
var exportHeader = []string{"company", "role", "date_applied", "status", "visa_sponsorship", "tags"}

// Export writes one CSV row per application, dates as YYYY-MM-DD, tag names
// joined with ";".
func Export(w io.Writer, apps []model.Application) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, app := range apps {
		names := []string{}
		for _, tag := range tagging.Resolve(app.TagIDs) {
			names = append(names, tag.Name)
		}

		row := []string{
			app.Company,
			app.Role,
			app.DateApplied,
			app.Status,
			strconv.FormatBool(app.VisaSponsorship),
			strings.Join(names, ";"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
