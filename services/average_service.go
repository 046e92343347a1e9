package services

import (
	"math"

	"esg-reporting-api/config"
	"esg-reporting-api/models"

	"gorm.io/gorm"
)

// AverageService maintains the derived avg_influence/avg_impact columns on
// stakeholders. Each recompute is a full scan of the stakeholder's current
// rating set, not an incremental running average: correct under concurrent
// edits at the cost of an O(n) aggregate query per stakeholder.
type AverageService struct {
	db *gorm.DB
}

// NewAverageService instantiates the service.
func NewAverageService(db *gorm.DB) *AverageService {
	if db == nil {
		db = config.DB
	}
	return &AverageService{db: db}
}

type axisAverageRow struct {
	Influence float64
	Impact    float64
	Count     int64
}

// Recompute refreshes the aggregate columns for every given stakeholder.
// Averages are rounded to two decimals; a stakeholder with no remaining
// ratings is reset to 0.0 on both axes, which is defined behavior, not an
// error.
func (s *AverageService) Recompute(stakeholderIDs []int) error {
	for _, id := range distinctInts(stakeholderIDs) {
		var row axisAverageRow
		err := s.db.Model(&models.StakeholderRating{}).
			Select("COALESCE(AVG(influence), 0) AS influence, COALESCE(AVG(impact), 0) AS impact, COUNT(*) AS count").
			Where("stakeholder_id = ?", id).
			Scan(&row).Error
		if err != nil {
			return wrapStoreError("recompute averages", err)
		}

		avgInfluence := 0.0
		avgImpact := 0.0
		if row.Count > 0 {
			avgInfluence = roundTwo(row.Influence)
			avgImpact = roundTwo(row.Impact)
		}

		err = s.db.Exec(
			"UPDATE stakeholders SET avg_influence = ?, avg_impact = ? WHERE stakeholder_id = ?",
			avgInfluence, avgImpact, id,
		).Error
		if err != nil {
			return wrapStoreError("recompute averages", err)
		}
	}
	return nil
}

// roundTwo rounds to two decimal places.
func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

func distinctInts(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
