package controllers

import (
	"net/http"
	"time"

	"esg-reporting-api/config"
	"esg-reporting-api/models"
	"esg-reporting-api/utils"

	"github.com/gin-gonic/gin"
)

// GetStakeholders returns all stakeholders with their current averages.
func GetStakeholders(c *gin.Context) {
	var stakeholders []models.Stakeholder
	if err := config.DB.Where("delete_at IS NULL").
		Order("name ASC").
		Find(&stakeholders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stakeholders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"stakeholders": stakeholders,
		"total":        len(stakeholders),
	})
}

// CreateStakeholder registers a new stakeholder (admin only). Averages start
// at zero until the first rating batch arrives.
func CreateStakeholder(c *gin.Context) {
	type CreateStakeholderRequest struct {
		CompanyID int     `json:"company_id" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		Email     *string `json:"email"`
	}

	var req CreateStakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != nil && !utils.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	now := time.Now()
	stakeholder := models.Stakeholder{
		CompanyID: req.CompanyID,
		Name:      utils.SanitizeInput(req.Name),
		Email:     req.Email,
		CreateAt:  now,
		UpdateAt:  now,
	}

	if err := config.DB.Create(&stakeholder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stakeholder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Stakeholder created successfully",
		"stakeholder": stakeholder,
	})
}
