package controllers

import (
	"net/http"

	"esg-reporting-api/config"
	"esg-reporting-api/models"
	"esg-reporting-api/utils"

	"github.com/gin-gonic/gin"
)

// CreateTopic adds a material topic under a dimension (admin only).
func CreateTopic(c *gin.Context) {
	type CreateTopicRequest struct {
		DimensionID int    `json:"dimension_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
	}

	var req CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate dimension exists
	var dimension models.Dimension
	if err := config.DB.Where("dimension_id = ?", req.DimensionID).First(&dimension).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dimension not found"})
		return
	}

	topic := models.Topic{
		DimensionID: req.DimensionID,
		Name:        utils.SanitizeInput(req.Name),
	}

	if err := config.DB.Create(&topic).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create topic"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Topic created successfully",
		"topic":   topic,
	})
}
