// Package analytics provides HTTP handlers for the analytics dashboard.
package analytics

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/analytics"
	"jobtrack-backend/internal/database"
	"jobtrack-backend/internal/model"
	"jobtrack-backend/internal/utilities"
)

// AnalyticsController handles analytics endpoints
type AnalyticsController struct {
	DB *database.DBinstanceStruct
}

// NewAnalyticsController creates a new instance of AnalyticsController
func NewAnalyticsController(db *database.DBinstanceStruct) *AnalyticsController {
	return &AnalyticsController{
		DB: db,
	}
}

func (ac *AnalyticsController) loadApps(c *gin.Context) ([]model.Application, bool) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return nil, false
	}

	var apps []model.Application
	if err := ac.DB.Where("user_id = ?", user.ID).Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch applications: ", err.Error()),
		})
		return nil, false
	}
	return apps, true
}

// GetMetrics computes the full analytics payload for the logged-in user.
// @Summary Get aggregate metrics over the user's applications
// @Tags Analytics
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} analytics.Metrics
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /analytics [get]
func (ac *AnalyticsController) GetMetrics(c *gin.Context) {
	apps, ok := ac.loadApps(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, analytics.Compute(apps))
}

// GetInsights derives the natural-language observations from the metrics.
// @Summary Get human-readable insights over the user's applications
// @Tags Analytics
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]interface{} "List of insight strings"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /analytics/insights [get]
func (ac *AnalyticsController) GetInsights(c *gin.Context) {
	apps, ok := ac.loadApps(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights": analytics.Insights(analytics.Compute(apps)),
	})
}
