// Package application provides HTTP handlers for application tracking CRUD
// and listing.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobtrack-backend/internal/database"
	"jobtrack-backend/internal/model"
	"jobtrack-backend/internal/query"
	"jobtrack-backend/internal/tagging"
	"jobtrack-backend/internal/utilities"
)

// ApplicationController handles application record endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

type createRequest struct {
	Company         string   `json:"company" binding:"required"`
	Role            string   `json:"role" binding:"required"`
	DateApplied     string   `json:"date_applied" binding:"required"`
	Status          string   `json:"status"`
	VisaSponsorship bool     `json:"visa_sponsorship"`
	TagIDs          []string `json:"tag_ids"`
}

type editRequest struct {
	Company         *string   `json:"company"`
	Role            *string   `json:"role"`
	DateApplied     *string   `json:"date_applied"`
	Status          *string   `json:"status"`
	VisaSponsorship *bool     `json:"visa_sponsorship"`
	TagIDs          *[]string `json:"tag_ids"`
}

func validTagIDs(ids []string) error {
	for _, id := range ids {
		if _, ok := tagging.Lookup(id); !ok {
			return fmt.Errorf("unknown tag id %q", id)
		}
	}
	return nil
}

func attachTags(app *model.Application) {
	app.Tags = tagging.Resolve(app.TagIDs)
}

// CreateApplication records a new application for the logged-in user. When
// the request carries no tags, high-confidence suggestions are applied
// automatically.
// @Summary Create an application record
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Application body createRequest true "Application fields"
// @Success 201 {object} model.Application "Successfully created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or field validation failure"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application [post]
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	status := model.StatusApplied
	if req.Status != "" {
		normalized, ok := model.NormalizeStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Status %q is not a valid status", req.Status),
			})
			return
		}
		status = normalized
	}

	if err := validTagIDs(req.TagIDs); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	now := time.Now()
	app := model.Application{
		ID:              uuid.New(),
		UserID:          user.ID,
		Company:         strings.TrimSpace(req.Company),
		Role:            strings.TrimSpace(req.Role),
		DateApplied:     strings.TrimSpace(req.DateApplied),
		Status:          status,
		VisaSponsorship: req.VisaSponsorship,
		Timestamp:       now.UnixMilli(),
	}
	app.SetTagIDs(req.TagIDs)

	if err := app.Validate(now); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	// the triggered auto-tag path: only untagged records are touched
	tagging.AutoApply(&app)

	if err := ac.DB.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create application: ", err),
		})
		return
	}

	attachTags(&app)
	c.JSON(http.StatusCreated, app)
}

// GetApplications lists the user's applications filtered, sorted, and
// paginated according to the query parameters. The filter/sort/pagination
// passes run over the in-memory snapshot, so their semantics are identical
// for every storage backend.
// @Summary List application records
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Case-insensitive substring match over company and role"
// @Param status query string false "Exact status, or 'all'"
// @Param range query string false "Applied-date bucket: week, month, or quarter"
// @Param visa query string false "Visa sponsorship: true, false, or 'all'"
// @Param tags query string false "Comma-separated tag ids; records must carry all of them"
// @Param sort query string false "date_desc (default), date_asc, company, status"
// @Param page query int false "Page number, clamped into range"
// @Param page_size query int false "Records per page, default 10"
// @Success 200 {object} map[string]interface{} "Applications plus page metadata"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application [get]
func (ac *ApplicationController) GetApplications(c *gin.Context) {
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

	criteria := query.Criteria{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		DateRange: c.Query("range"),
		Visa:      c.Query("visa"),
	}
	if rawTags := c.Query("tags"); rawTags != "" {
		criteria.TagIDs = strings.Split(rawTags, ",")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(query.DefaultPageSize)))

	filtered := query.Apply(apps, criteria, time.Now())
	sorted := query.Sort(filtered, c.DefaultQuery("sort", query.SortDateDesc))
	pageApps, meta := query.Paginate(sorted, pageSize, page)

	for i := range pageApps {
		attachTags(&pageApps[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": pageApps,
		"page":         meta,
	})
}

// GetApplicationByID fetches a single record owned by the logged-in user.
// @Summary Get one application record
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application id"
// @Success 200 {object} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No such application"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id} [get]
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	app, ok := ac.findOwned(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	attachTags(&app)
	c.JSON(http.StatusOK, app)
}

// EditApplication partially updates a record. Provided fields are
// re-validated; updated_at is stamped on success.
// @Summary Edit an application record
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application id"
// @Param Application body editRequest true "Fields to change"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or field validation failure"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No such application"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id} [patch]
func (ac *ApplicationController) EditApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	app, ok := ac.findOwned(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if req.Company != nil {
		app.Company = strings.TrimSpace(*req.Company)
	}
	if req.Role != nil {
		app.Role = strings.TrimSpace(*req.Role)
	}
	if req.DateApplied != nil {
		app.DateApplied = strings.TrimSpace(*req.DateApplied)
	}
	if req.Status != nil {
		normalized, okStatus := model.NormalizeStatus(*req.Status)
		if !okStatus {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Status %q is not a valid status", *req.Status),
			})
			return
		}
		app.Status = normalized
	}
	if req.VisaSponsorship != nil {
		app.VisaSponsorship = *req.VisaSponsorship
	}
	if req.TagIDs != nil {
		if err := validTagIDs(*req.TagIDs); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		app.SetTagIDs(*req.TagIDs)
	}

	now := time.Now()
	if err := app.Validate(now); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	updated := now.UnixMilli()
	app.UpdatedAt = &updated

	if err := ac.DB.Save(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update application: ", err),
		})
		return
	}

	attachTags(&app)
	c.JSON(http.StatusOK, app)
}

// DeleteApplication removes a record owned by the logged-in user.
// @Summary Delete an application record
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No such application"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id} [delete]
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	result := ac.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&model.Application{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete application: ", result.Error),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted"})
}

// loadSnapshot reads the user's applications in creation order, which is the
// "original relative order" the filter pass preserves.
func (ac *ApplicationController) loadSnapshot(userID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := ac.DB.
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&apps).Error
	return apps, err
}

func (ac *ApplicationController) findOwned(c *gin.Context, userID uuid.UUID, id string) (model.Application, bool) {
	var app model.Application
	err := ac.DB.Where("id = ? AND user_id = ?", id, userID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
			})
		}
		return app, false
	}
	return app, true
}
