// Package tags provides HTTP handlers for the tag catalog and suggestions.
package tags

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/tagging"
	"jobtrack-backend/internal/utilities"
)

// TagsController handles tag catalog endpoints. The catalog is static, so no
// database handle is needed.
type TagsController struct{}

// NewTagsController creates a new instance of TagsController
func NewTagsController() *TagsController {
	return &TagsController{}
}

// GetCatalog returns the full static tag catalog.
// @Summary Get the tag catalog
// @Tags Tags
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Tag
// @Router /tags [get]
func (tc *TagsController) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, tagging.Catalog())
}

// SuggestTags ranks tag suggestions for a company and role.
// @Summary Suggest tags for a company and role
// @Tags Tags
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Input body object true "Company and role text"
// @Success 200 {object} map[string]interface{} "Ranked suggestions"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields"
// @Router /tags/suggest [post]
func (tc *TagsController) SuggestTags(c *gin.Context) {
	var req struct {
		Company string `json:"company" binding:"required"`
		Role    string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": tagging.Suggest(req.Company, req.Role),
	})
}
