package controllers

import (
	"net/http"
	"strconv"
	"time"

	"esg-reporting-api/config"
	"esg-reporting-api/models"

	"github.com/gin-gonic/gin"
)

// GetReports returns all reports, newest reporting year first.
func GetReports(c *gin.Context) {
	var reports []models.Report
	if err := config.DB.Preload("Owner").
		Where("delete_at IS NULL").
		Order("year DESC, report_id DESC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reports": reports,
		"total":   len(reports),
	})
}

// CreateReport creates a new reporting cycle (admin only).
func CreateReport(c *gin.Context) {
	type CreateReportRequest struct {
		CompanyID int    `json:"company_id" binding:"required"`
		Year      int    `json:"year" binding:"required"`
		Title     string `json:"title" binding:"required"`
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	now := time.Now()
	report := models.Report{
		CompanyID:   req.CompanyID,
		Year:        req.Year,
		Title:       req.Title,
		OwnerUserID: userID.(int),
		CreateAt:    now,
		UpdateAt:    now,
	}

	if err := config.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Report created successfully",
		"report":  report,
	})
}

// GetReportTopics returns the topics ratable under a report, via the
// report's company standards.
func GetReportTopics(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var report models.Report
	if err := config.DB.Where("report_id = ? AND delete_at IS NULL", reportID).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var topics []models.Topic
	if err := config.DB.Table("topics AS t").
		Select("t.topic_id, t.dimension_id, t.name").
		Joins("INNER JOIN dimensions d ON d.dimension_id = t.dimension_id").
		Joins("INNER JOIN standards s ON s.standard_id = d.standard_id").
		Where("s.company_id = ?", report.CompanyID).
		Order("t.name ASC").
		Scan(&topics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch topics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"topics":  topics,
		"total":   len(topics),
	})
}
