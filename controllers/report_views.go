// controllers/report_views.go - Report-scoped read views over the rating store

package controllers

import (
	"net/http"
	"strconv"

	"esg-reporting-api/models"
	"esg-reporting-api/services"

	"github.com/gin-gonic/gin"
)

// GetGroupedRatings returns the report's ratings regrouped by submission,
// with resolved submitter names. Query params: kind (required), rating_type
// (optional, topic ratings only).
func GetGroupedRatings(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	kind := c.Query("kind")
	if kind != models.SubmissionKindInternal && kind != models.SubmissionKindStakeholder {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be INTERNAL or STAKEHOLDER"})
		return
	}

	var ratingType *string
	if rt := c.Query("rating_type"); rt != "" {
		if rt != models.RatingTypeFinancial && rt != models.RatingTypeImpact {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating_type must be FINANCIAL or IMPACT"})
			return
		}
		ratingType = &rt
	}

	svc := services.NewGroupingService(nil)
	grouped, err := svc.GroupByReport(reportID, kind, ratingType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"groups":  grouped.Groups,
		"skipped": grouped.Skipped,
	})
}

// GetMaterialityMatrix returns the per-topic impact/financial score matrix
// for the report, ordered by topic name.
func GetMaterialityMatrix(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	svc := services.NewMaterialityService(nil)
	matrix, err := svc.BuildMatrix(reportID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"matrix":  matrix,
		"total":   len(matrix),
	})
}
