package models

// Topic rating types. The type is a property of the rating, not part of its
// uniqueness key: a submission holds at most one rating per topic.
const (
	RatingTypeFinancial = "FINANCIAL"
	RatingTypeImpact    = "IMPACT"
)

// StakeholderRating is an analyst's judgment of one stakeholder along the
// influence and impact axes. Unique per (submission_id, stakeholder_id).
type StakeholderRating struct {
	RatingID      int     `gorm:"primaryKey;column:rating_id" json:"rating_id"`
	SubmissionID  int     `gorm:"column:submission_id;uniqueIndex:uq_submission_stakeholder" json:"submission_id"`
	StakeholderID int     `gorm:"column:stakeholder_id;uniqueIndex:uq_submission_stakeholder" json:"stakeholder_id"`
	Influence     float64 `gorm:"column:influence" json:"influence"`
	Impact        float64 `gorm:"column:impact" json:"impact"`
	Score         float64 `gorm:"column:score" json:"score"`
}

// TopicRating is a stakeholder's judgment of one topic along the magnitude
// and relevance axes. Unique per (submission_id, topic_id).
type TopicRating struct {
	RatingID     int     `gorm:"primaryKey;column:rating_id" json:"rating_id"`
	SubmissionID int     `gorm:"column:submission_id;uniqueIndex:uq_submission_topic" json:"submission_id"`
	TopicID      int     `gorm:"column:topic_id;uniqueIndex:uq_submission_topic" json:"topic_id"`
	RatingType   string  `gorm:"column:rating_type" json:"rating_type"`
	Magnitude    float64 `gorm:"column:magnitude" json:"magnitude"`
	Relevance    float64 `gorm:"column:relevance" json:"relevance"`
	Score        float64 `gorm:"column:score" json:"score"`
	Remarks      *string `gorm:"column:remarks" json:"remarks,omitempty"`
}

// TableName overrides
func (StakeholderRating) TableName() string {
	return "stakeholder_ratings"
}

func (TopicRating) TableName() string {
	return "topic_ratings"
}
