// controllers/rating_submission.go - Rating submission endpoints

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"esg-reporting-api/monitor"
	"esg-reporting-api/services"

	"github.com/gin-gonic/gin"
)

// SubmitRatings ingests one rater's batch of ratings for a report.
// INTERNAL submissions default the submitter to the authenticated analyst;
// STAKEHOLDER submissions name the stakeholder whose responses are being
// recorded.
func SubmitRatings(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	type SubmitRequest struct {
		Kind               string                            `json:"kind" binding:"required"`
		SubmitterID        int                               `json:"submitter_id"`
		StakeholderRatings []services.StakeholderRatingInput `json:"stakeholder_ratings"`
		TopicRatings       []services.TopicRatingInput       `json:"topic_ratings"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Analysts submit their own INTERNAL batches
	if req.SubmitterID == 0 {
		userID, _ := c.Get("userID")
		req.SubmitterID = userID.(int)
	}

	svc := services.NewRatingIngestionService(nil)
	result, err := svc.Submit(&services.SubmitInput{
		Kind:               req.Kind,
		SubmitterID:        req.SubmitterID,
		ReportID:           reportID,
		StakeholderRatings: req.StakeholderRatings,
		TopicRatings:       req.TopicRatings,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	monitor.SubmissionsIngested.WithLabelValues(result.Submission.Kind).Inc()

	// Notify the report owner off the request path
	notifier := services.NewSubmissionNotificationService(nil)
	go notifier.NotifyNewSubmission(&result.Submission)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Ratings submitted successfully",
		"submission": result.Submission,
	})
}

// DeleteSubmission removes a submission and its ratings, refreshing the
// affected stakeholder averages.
func DeleteSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	svc := services.NewRatingIngestionService(nil)
	deleted, err := svc.Remove(submissionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission removed successfully",
		"submission": deleted,
	})
}

// UpdateStakeholderRating partially updates one stakeholder rating.
func UpdateStakeholderRating(c *gin.Context) {
	ratingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating id"})
		return
	}

	var patch services.StakeholderRatingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewRatingIngestionService(nil)
	rating, err := svc.UpdateStakeholderRating(ratingID, &patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rating":  rating,
	})
}

// UpdateTopicRating partially updates one topic rating.
func UpdateTopicRating(c *gin.Context) {
	ratingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating id"})
		return
	}

	var patch services.TopicRatingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewRatingIngestionService(nil)
	rating, err := svc.UpdateTopicRating(ratingID, &patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rating":  rating,
	})
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
