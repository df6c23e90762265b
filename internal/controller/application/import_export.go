package application

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/csvio"
	"jobtrack-backend/internal/utilities"
)

// ImportCSV ingests a CSV upload. Row-level validation failures are
// collected and reported; they never abort the batch. Store failures do.
// @Summary Import applications from a CSV file
// @Tags Application
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param file formData file true "CSV file with a header row"
// @Success 200 {object} map[string]interface{} "Count of imported rows plus per-row errors"
// @Failure 400 {object} utilities.ErrorResponse "Missing file or unusable CSV header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/import [post]
func (ac *ApplicationController) ImportCSV(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Error: "CSV file is too large",
			})
			return
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("No CSV file provided: %s", err.Error()),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to open uploaded file: %s", err.Error()),
		})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := csvio.Import(file, user.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse CSV: %s", err.Error()),
		})
		return
	}

	if len(result.Applications) > 0 {
		if err := ac.DB.Create(&result.Applications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to save imported applications: ", err),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": len(result.Applications),
		"errors":   result.Errors,
	})
}

// ExportCSV streams every application of the logged-in user as a CSV
// attachment.
// @Summary Export applications as CSV
// @Tags Application
// @Produce text/csv
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/export [get]
func (ac *ApplicationController) ExportCSV(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	apps, err := ac.loadSnapshot(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch applications: ", err.Error()),
		})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="applications.csv"`)

	if err := csvio.Export(c.Writer, apps); err != nil {
		// headers are already out; nothing useful left to send
		_ = c.Error(err)
	}
}
