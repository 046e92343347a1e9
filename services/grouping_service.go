package services

import (
	"errors"

	"esg-reporting-api/config"
	"esg-reporting-api/models"

	"gorm.io/gorm"
)

// GroupedEntry is one submission's slice of the report-scoped review view:
// who submitted, and the ratings they submitted.
type GroupedEntry struct {
	SubmitterID        int                        `json:"submitter_id"`
	SubmitterName      string                     `json:"submitter_name"`
	StakeholderRatings []models.StakeholderRating `json:"stakeholder_ratings,omitempty"`
	TopicRatings       []models.TopicRating       `json:"topic_ratings,omitempty"`
}

// GroupedRatings maps submission id to its entry. A submitter with several
// submissions to the same report appears once per submission; merging to one
// row per submitter is the caller's concern. Skipped counts submissions
// whose submitter record no longer resolves.
type GroupedRatings struct {
	Groups  map[int]GroupedEntry `json:"groups"`
	Skipped int                  `json:"skipped"`
}

// GroupingService reshapes raw per-submission ratings into the report-scoped
// "who rated what" view. It is a read-side view computed on demand, not
// incrementally maintained.
type GroupingService struct {
	db *gorm.DB
}

// NewGroupingService instantiates the service.
func NewGroupingService(db *gorm.DB) *GroupingService {
	if db == nil {
		db = config.DB
	}
	return &GroupingService{db: db}
}

// GroupByReport loads every submission of the given kind under the report,
// resolves each submitter's display name, and attaches the child ratings.
// For topic ratings an optional ratingType restricts the view to one type.
// Submissions whose submitter record is missing are skipped and counted
// instead of failing the whole view. Ratings keep insertion order; there is
// no ordering guarantee across map entries.
func (s *GroupingService) GroupByReport(reportID int, kind string, ratingType *string) (*GroupedRatings, error) {
	var submissions []models.RatingSubmission
	if err := s.db.Where("report_id = ? AND kind = ?", reportID, kind).
		Find(&submissions).Error; err != nil {
		return nil, wrapStoreError("group ratings", err)
	}

	result := &GroupedRatings{Groups: make(map[int]GroupedEntry, len(submissions))}

	for _, submission := range submissions {
		entry := GroupedEntry{SubmitterID: submission.SubmitterID()}

		name, err := s.resolveSubmitterName(&submission)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Skipped++
				continue
			}
			return nil, wrapStoreError("group ratings", err)
		}
		entry.SubmitterName = name

		if kind == models.SubmissionKindInternal {
			var ratings []models.StakeholderRating
			if err := s.db.Where("submission_id = ?", submission.SubmissionID).
				Order("rating_id ASC").
				Find(&ratings).Error; err != nil {
				return nil, wrapStoreError("group ratings", err)
			}
			entry.StakeholderRatings = ratings
		} else {
			query := s.db.Where("submission_id = ?", submission.SubmissionID)
			if ratingType != nil {
				query = query.Where("rating_type = ?", *ratingType)
			}
			var ratings []models.TopicRating
			if err := query.Order("rating_id ASC").Find(&ratings).Error; err != nil {
				return nil, wrapStoreError("group ratings", err)
			}
			entry.TopicRatings = ratings
		}

		result.Groups[submission.SubmissionID] = entry
	}

	return result, nil
}

func (s *GroupingService) resolveSubmitterName(submission *models.RatingSubmission) (string, error) {
	if submission.Kind == models.SubmissionKindInternal {
		var user models.User
		if err := s.db.Select("user_id, user_fname, user_lname").
			Where("user_id = ?", submission.SubmitterID()).
			First(&user).Error; err != nil {
			return "", err
		}
		return user.DisplayName(), nil
	}

	var stakeholder models.Stakeholder
	if err := s.db.Select("stakeholder_id, name").
		Where("stakeholder_id = ?", submission.SubmitterID()).
		First(&stakeholder).Error; err != nil {
		return "", err
	}
	return stakeholder.Name, nil
}
