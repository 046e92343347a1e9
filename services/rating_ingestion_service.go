package services

import (
	"errors"
	"fmt"
	"time"

	"esg-reporting-api/config"
	"esg-reporting-api/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StakeholderRatingInput is one analyst judgment inside an INTERNAL batch.
type StakeholderRatingInput struct {
	StakeholderID int      `json:"stakeholder_id" validate:"required"`
	Influence     float64  `json:"influence" validate:"min=0,max=5"`
	Impact        float64  `json:"impact" validate:"min=0,max=5"`
	Score         *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=5"`
}

// TopicRatingInput is one stakeholder judgment inside a STAKEHOLDER batch.
type TopicRatingInput struct {
	TopicID    int      `json:"topic_id" validate:"required"`
	RatingType string   `json:"rating_type" validate:"required,oneof=FINANCIAL IMPACT"`
	Magnitude  float64  `json:"magnitude" validate:"min=0,max=5"`
	Relevance  float64  `json:"relevance" validate:"min=0,max=5"`
	Score      *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=5"`
	Remarks    *string  `json:"remarks,omitempty"`
}

// SubmitInput carries one rater's batch. Kind discriminates the rating
// variant: INTERNAL batches carry stakeholder ratings authored by a user,
// STAKEHOLDER batches carry topic ratings authored by a stakeholder. The
// other slice must be empty.
type SubmitInput struct {
	Kind               string                   `json:"kind" validate:"required,oneof=INTERNAL STAKEHOLDER"`
	SubmitterID        int                      `json:"submitter_id" validate:"required"`
	ReportID           int                      `json:"report_id" validate:"required"`
	StakeholderRatings []StakeholderRatingInput `json:"stakeholder_ratings" validate:"dive"`
	TopicRatings       []TopicRatingInput       `json:"topic_ratings" validate:"dive"`
}

// SubmissionWithRatings is the ingestion result: the stored submission
// header with its child ratings attached.
type SubmissionWithRatings struct {
	Submission models.RatingSubmission `json:"submission"`
}

// RatingIngestionService persists rating batches. A batch is written in one
// database transaction: a mid-batch failure leaves no orphaned submission
// header or partial rating set.
type RatingIngestionService struct {
	db       *gorm.DB
	averages *AverageService
	validate *validator.Validate
}

// NewRatingIngestionService instantiates the service.
func NewRatingIngestionService(db *gorm.DB) *RatingIngestionService {
	if db == nil {
		db = config.DB
	}
	return &RatingIngestionService{
		db:       db,
		averages: NewAverageService(db),
		validate: validator.New(),
	}
}

// Submit validates and persists one submission plus its batch of ratings.
// After a successful commit, stakeholder averages are recomputed for every
// distinct stakeholder referenced by an INTERNAL batch.
func (s *RatingIngestionService) Submit(input *SubmitInput) (*SubmissionWithRatings, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(input); err != nil {
		return nil, err
	}

	now := time.Now()
	submission := models.RatingSubmission{
		Ref:      uuid.NewString(),
		Kind:     input.Kind,
		ReportID: input.ReportID,
		CreateAt: now,
		UpdateAt: now,
	}
	if input.Kind == models.SubmissionKindInternal {
		submission.UserID = &input.SubmitterID
	} else {
		submission.StakeholderID = &input.SubmitterID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return wrapStoreError("submit", err)
		}

		for i := range input.StakeholderRatings {
			in := &input.StakeholderRatings[i]
			rating := models.StakeholderRating{
				SubmissionID:  submission.SubmissionID,
				StakeholderID: in.StakeholderID,
				Influence:     in.Influence,
				Impact:        in.Impact,
				Score:         defaultScore(in.Influence, in.Impact, in.Score),
			}
			if err := tx.Create(&rating).Error; err != nil {
				if isDuplicateKeyError(err) {
					return fmt.Errorf("stakeholder %d: %w", in.StakeholderID, ErrConflict)
				}
				return wrapStoreError("submit", err)
			}
			submission.StakeholderRatings = append(submission.StakeholderRatings, rating)
		}

		for i := range input.TopicRatings {
			in := &input.TopicRatings[i]
			rating := models.TopicRating{
				SubmissionID: submission.SubmissionID,
				TopicID:      in.TopicID,
				RatingType:   in.RatingType,
				Magnitude:    in.Magnitude,
				Relevance:    in.Relevance,
				Score:        defaultScore(in.Magnitude, in.Relevance, in.Score),
				Remarks:      in.Remarks,
			}
			if err := tx.Create(&rating).Error; err != nil {
				if isDuplicateKeyError(err) {
					return fmt.Errorf("topic %d: %w", in.TopicID, ErrConflict)
				}
				return wrapStoreError("submit", err)
			}
			submission.TopicRatings = append(submission.TopicRatings, rating)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Kind == models.SubmissionKindInternal {
		ids := make([]int, 0, len(input.StakeholderRatings))
		for _, in := range input.StakeholderRatings {
			ids = append(ids, in.StakeholderID)
		}
		if err := s.averages.Recompute(ids); err != nil {
			return nil, err
		}
	}

	return &SubmissionWithRatings{Submission: submission}, nil
}

// Remove deletes a submission and its ratings, then recomputes averages for
// every stakeholder the deleted ratings referenced.
func (s *RatingIngestionService) Remove(submissionID int) (*models.RatingSubmission, error) {
	var submission models.RatingSubmission
	if err := s.db.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStoreError("remove", err)
	}

	var affected []int
	if submission.Kind == models.SubmissionKindInternal {
		if err := s.db.Model(&models.StakeholderRating{}).
			Where("submission_id = ?", submissionID).
			Pluck("stakeholder_id", &affected).Error; err != nil {
			return nil, wrapStoreError("remove", err)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submissionID).Delete(&models.StakeholderRating{}).Error; err != nil {
			return wrapStoreError("remove", err)
		}
		if err := tx.Where("submission_id = ?", submissionID).Delete(&models.TopicRating{}).Error; err != nil {
			return wrapStoreError("remove", err)
		}
		if err := tx.Where("submission_id = ?", submissionID).Delete(&models.RatingSubmission{}).Error; err != nil {
			return wrapStoreError("remove", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(affected) > 0 {
		if err := s.averages.Recompute(affected); err != nil {
			return nil, err
		}
	}

	return &submission, nil
}

// StakeholderRatingPatch updates a single stakeholder rating. Nil fields are
// left untouched. The stored score is never recomputed from new axis values;
// it only changes when the patch resupplies it.
type StakeholderRatingPatch struct {
	Influence *float64 `json:"influence,omitempty" validate:"omitempty,min=0,max=5"`
	Impact    *float64 `json:"impact,omitempty" validate:"omitempty,min=0,max=5"`
	Score     *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=5"`
}

// TopicRatingPatch updates a single topic rating under the same score rule.
type TopicRatingPatch struct {
	Magnitude *float64 `json:"magnitude,omitempty" validate:"omitempty,min=0,max=5"`
	Relevance *float64 `json:"relevance,omitempty" validate:"omitempty,min=0,max=5"`
	Score     *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=5"`
	Remarks   *string  `json:"remarks,omitempty"`
}

// UpdateStakeholderRating applies a partial update and recomputes the
// touched stakeholder's averages.
func (s *RatingIngestionService) UpdateStakeholderRating(ratingID int, patch *StakeholderRatingPatch) (*models.StakeholderRating, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, newValidationError("patch", err.Error())
	}

	var rating models.StakeholderRating
	if err := s.db.Where("rating_id = ?", ratingID).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStoreError("update rating", err)
	}

	updates := map[string]interface{}{}
	if patch.Influence != nil {
		rating.Influence = *patch.Influence
		updates["influence"] = *patch.Influence
	}
	if patch.Impact != nil {
		rating.Impact = *patch.Impact
		updates["impact"] = *patch.Impact
	}
	if patch.Score != nil {
		rating.Score = *patch.Score
		updates["score"] = *patch.Score
	}
	if len(updates) == 0 {
		return &rating, nil
	}

	if err := s.db.Model(&models.StakeholderRating{}).
		Where("rating_id = ?", ratingID).
		Updates(updates).Error; err != nil {
		return nil, wrapStoreError("update rating", err)
	}

	if err := s.averages.Recompute([]int{rating.StakeholderID}); err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpdateTopicRating applies a partial update to a topic rating.
func (s *RatingIngestionService) UpdateTopicRating(ratingID int, patch *TopicRatingPatch) (*models.TopicRating, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, newValidationError("patch", err.Error())
	}

	var rating models.TopicRating
	if err := s.db.Where("rating_id = ?", ratingID).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStoreError("update rating", err)
	}

	updates := map[string]interface{}{}
	if patch.Magnitude != nil {
		rating.Magnitude = *patch.Magnitude
		updates["magnitude"] = *patch.Magnitude
	}
	if patch.Relevance != nil {
		rating.Relevance = *patch.Relevance
		updates["relevance"] = *patch.Relevance
	}
	if patch.Score != nil {
		rating.Score = *patch.Score
		updates["score"] = *patch.Score
	}
	if patch.Remarks != nil {
		rating.Remarks = patch.Remarks
		updates["remarks"] = *patch.Remarks
	}
	if len(updates) == 0 {
		return &rating, nil
	}

	if err := s.db.Model(&models.TopicRating{}).
		Where("rating_id = ?", ratingID).
		Updates(updates).Error; err != nil {
		return nil, wrapStoreError("update rating", err)
	}
	return &rating, nil
}

// validateInput enforces the batch constraints before any write: non-empty
// batch, axis ranges, kind/variant match, no duplicate entity within the
// batch. In-batch duplicates are conflicts, matching the store's uniqueness
// constraint on (submission_id, entity_id).
func (s *RatingIngestionService) validateInput(input *SubmitInput) error {
	if err := s.validate.Struct(input); err != nil {
		return newValidationError("input", err.Error())
	}

	switch input.Kind {
	case models.SubmissionKindInternal:
		if len(input.StakeholderRatings) == 0 {
			return newValidationError("stakeholder_ratings", "batch must contain at least one rating")
		}
		if len(input.TopicRatings) != 0 {
			return newValidationError("topic_ratings", "not allowed on INTERNAL submissions")
		}
		seen := make(map[int]bool, len(input.StakeholderRatings))
		for _, r := range input.StakeholderRatings {
			if seen[r.StakeholderID] {
				return fmt.Errorf("stakeholder %d: %w", r.StakeholderID, ErrConflict)
			}
			seen[r.StakeholderID] = true
		}
	case models.SubmissionKindStakeholder:
		if len(input.TopicRatings) == 0 {
			return newValidationError("topic_ratings", "batch must contain at least one rating")
		}
		if len(input.StakeholderRatings) != 0 {
			return newValidationError("stakeholder_ratings", "not allowed on STAKEHOLDER submissions")
		}
		// rating_type is not part of the key: two ratings for the same topic
		// conflict even when their types differ.
		seen := make(map[int]bool, len(input.TopicRatings))
		for _, r := range input.TopicRatings {
			if seen[r.TopicID] {
				return fmt.Errorf("topic %d: %w", r.TopicID, ErrConflict)
			}
			seen[r.TopicID] = true
		}
	}
	return nil
}

// resolveReferences checks that the report, the submitter and every rated
// entity exist before the transaction opens.
func (s *RatingIngestionService) resolveReferences(input *SubmitInput) error {
	var report models.Report
	if err := s.db.Select("report_id").Where("report_id = ?", input.ReportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError("report_id", "report does not exist")
		}
		return wrapStoreError("submit", err)
	}

	if input.Kind == models.SubmissionKindInternal {
		var user models.User
		if err := s.db.Select("user_id").Where("user_id = ? AND delete_at IS NULL", input.SubmitterID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("submitter_id", "user does not exist")
			}
			return wrapStoreError("submit", err)
		}
		for _, r := range input.StakeholderRatings {
			var stakeholder models.Stakeholder
			if err := s.db.Select("stakeholder_id").Where("stakeholder_id = ?", r.StakeholderID).First(&stakeholder).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return newValidationError("stakeholder_id", fmt.Sprintf("stakeholder %d does not exist", r.StakeholderID))
				}
				return wrapStoreError("submit", err)
			}
		}
		return nil
	}

	var stakeholder models.Stakeholder
	if err := s.db.Select("stakeholder_id").Where("stakeholder_id = ?", input.SubmitterID).First(&stakeholder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError("submitter_id", "stakeholder does not exist")
		}
		return wrapStoreError("submit", err)
	}
	for _, r := range input.TopicRatings {
		var topic models.Topic
		if err := s.db.Select("topic_id").Where("topic_id = ?", r.TopicID).First(&topic).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("topic_id", fmt.Sprintf("topic %d does not exist", r.TopicID))
			}
			return wrapStoreError("submit", err)
		}
	}
	return nil
}

// defaultScore returns the supplied score, or the mean of the two axis
// values when the rater omitted it. Computed once at ingestion; never
// recomputed afterwards.
func defaultScore(axisA, axisB float64, supplied *float64) float64 {
	if supplied != nil {
		return *supplied
	}
	return (axisA + axisB) / 2
}
