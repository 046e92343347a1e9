package services

import (
	"fmt"
	"log"

	"esg-reporting-api/config"
	"esg-reporting-api/models"

	"gorm.io/gorm"
)

// SubmissionNotificationService emails a report's owner when a new rating
// submission arrives. Failures are logged, never surfaced to the rater.
type SubmissionNotificationService struct {
	db *gorm.DB
}

// NewSubmissionNotificationService instantiates the service.
func NewSubmissionNotificationService(db *gorm.DB) *SubmissionNotificationService {
	if db == nil {
		db = config.DB
	}
	return &SubmissionNotificationService{db: db}
}

// NotifyNewSubmission sends the notification for the given submission.
// Intended to run in a goroutine after the ingestion commit.
func (s *SubmissionNotificationService) NotifyNewSubmission(submission *models.RatingSubmission) {
	var report models.Report
	if err := s.db.Preload("Owner").
		Where("report_id = ?", submission.ReportID).
		First(&report).Error; err != nil {
		log.Printf("submission notification: failed to load report %d: %v", submission.ReportID, err)
		return
	}
	if report.Owner == nil || report.Owner.Email == "" {
		log.Printf("submission notification: report %d has no owner email, skipping", report.ReportID)
		return
	}

	ratingCount := len(submission.StakeholderRatings) + len(submission.TopicRatings)
	subject := fmt.Sprintf("New %s rating submission for %s", submission.Kind, report.Title)
	body := fmt.Sprintf(
		"<p>A new %s submission (%s) with %d rating(s) was received for report <b>%s</b>.</p>",
		submission.Kind, submission.Ref, ratingCount, report.Title,
	)

	if err := config.SendMail([]string{report.Owner.Email}, subject, body); err != nil {
		log.Printf("submission notification: failed to send mail for submission %d: %v", submission.SubmissionID, err)
	}
}
