package services

import (
	"sort"

	"esg-reporting-api/config"
	"esg-reporting-api/models"

	"gorm.io/gorm"
)

// MaterialityMatrixItem is one row of the report's materiality matrix: the
// per-topic impact and financial score pair with rating counts. A zero score
// with a zero count means "no ratings of this type"; callers must use the
// count, not the score, to tell that apart from ratings averaging to zero.
type MaterialityMatrixItem struct {
	TopicID               int     `json:"topic_id"`
	TopicName             string  `json:"topic_name"`
	ImpactScore           float64 `json:"impact_score"`
	FinancialScore        float64 `json:"financial_score"`
	ImpactRatingsCount    int     `json:"impact_ratings_count"`
	FinancialRatingsCount int     `json:"financial_ratings_count"`
}

// MaterialityService derives the two-axis materiality matrix from the raw
// topic ratings of a report's stakeholder submissions. Pure read model,
// never persisted.
type MaterialityService struct {
	db *gorm.DB
}

// NewMaterialityService instantiates the service.
func NewMaterialityService(db *gorm.DB) *MaterialityService {
	if db == nil {
		db = config.DB
	}
	return &MaterialityService{db: db}
}

type materialityRow struct {
	TopicID    int
	TopicName  string
	RatingType string
	Score      float64
}

// BuildMatrix returns one matrix item per topic that has at least one topic
// rating under the report, ordered by topic name ascending with ties broken
// by topic id.
func (s *MaterialityService) BuildMatrix(reportID int) ([]MaterialityMatrixItem, error) {
	var rows []materialityRow
	err := s.db.Table("topic_ratings AS tr").
		Select("tr.topic_id, t.name AS topic_name, tr.rating_type, tr.score").
		Joins("INNER JOIN rating_submissions rs ON rs.submission_id = tr.submission_id").
		Joins("INNER JOIN topics t ON t.topic_id = tr.topic_id").
		Where("rs.report_id = ? AND rs.kind = ?", reportID, models.SubmissionKindStakeholder).
		Order("tr.rating_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapStoreError("build matrix", err)
	}

	return buildMatrixItems(rows), nil
}

// buildMatrixItems partitions the raw rating rows per topic and rating type
// and reduces each partition to its mean score and count.
func buildMatrixItems(rows []materialityRow) []MaterialityMatrixItem {
	type accumulator struct {
		name         string
		impactSum    float64
		impactCount  int
		financialSum float64
		finCount     int
	}

	byTopic := make(map[int]*accumulator)
	for _, row := range rows {
		acc, ok := byTopic[row.TopicID]
		if !ok {
			acc = &accumulator{name: row.TopicName}
			byTopic[row.TopicID] = acc
		}
		if row.RatingType == models.RatingTypeImpact {
			acc.impactSum += row.Score
			acc.impactCount++
		} else {
			acc.financialSum += row.Score
			acc.finCount++
		}
	}

	items := make([]MaterialityMatrixItem, 0, len(byTopic))
	for topicID, acc := range byTopic {
		item := MaterialityMatrixItem{
			TopicID:               topicID,
			TopicName:             acc.name,
			ImpactRatingsCount:    acc.impactCount,
			FinancialRatingsCount: acc.finCount,
		}
		if acc.impactCount > 0 {
			item.ImpactScore = roundTwo(acc.impactSum / float64(acc.impactCount))
		}
		if acc.finCount > 0 {
			item.FinancialScore = roundTwo(acc.financialSum / float64(acc.finCount))
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].TopicName != items[j].TopicName {
			return items[i].TopicName < items[j].TopicName
		}
		return items[i].TopicID < items[j].TopicID
	})

	return items
}
