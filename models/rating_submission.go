package models

import "time"

// Submission kinds. INTERNAL submissions carry stakeholder ratings authored
// by analysts; STAKEHOLDER submissions carry topic ratings authored by
// external stakeholders.
const (
	SubmissionKindInternal    = "INTERNAL"
	SubmissionKindStakeholder = "STAKEHOLDER"
)

// RatingSubmission is one rater's batch of ratings against a report.
// Exactly one of UserID/StakeholderID is set, according to Kind. Deleting a
// submission cascade-deletes its child ratings.
type RatingSubmission struct {
	SubmissionID  int       `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	Ref           string    `gorm:"column:ref" json:"ref"`
	Kind          string    `gorm:"column:kind" json:"kind"`
	UserID        *int      `gorm:"column:user_id" json:"user_id,omitempty"`
	StakeholderID *int      `gorm:"column:stakeholder_id" json:"stakeholder_id,omitempty"`
	ReportID      int       `gorm:"column:report_id" json:"report_id"`
	CreateAt      time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	StakeholderRatings []StakeholderRating `gorm:"foreignKey:SubmissionID" json:"stakeholder_ratings,omitempty"`
	TopicRatings       []TopicRating       `gorm:"foreignKey:SubmissionID" json:"topic_ratings,omitempty"`
}

// SubmitterID returns the id of whoever authored the submission, per Kind.
func (s *RatingSubmission) SubmitterID() int {
	if s.Kind == SubmissionKindInternal && s.UserID != nil {
		return *s.UserID
	}
	if s.StakeholderID != nil {
		return *s.StakeholderID
	}
	return 0
}

// TableName specifies the table name for RatingSubmission.
func (RatingSubmission) TableName() string {
	return "rating_submissions"
}
