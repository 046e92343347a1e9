package models

import "time"

// Stakeholder represents the stakeholders table. AvgInfluence and AvgImpact
// are derived columns: they are never written directly by handlers, only
// recomputed by the average service from the full current rating set.
type Stakeholder struct {
	StakeholderID int        `gorm:"primaryKey;column:stakeholder_id" json:"stakeholder_id"`
	CompanyID     int        `gorm:"column:company_id" json:"company_id"`
	Name          string     `gorm:"column:name" json:"name"`
	Email         *string    `gorm:"column:email" json:"email,omitempty"`
	AvgInfluence  float64    `gorm:"column:avg_influence" json:"avg_influence"`
	AvgImpact     float64    `gorm:"column:avg_impact" json:"avg_impact"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName specifies the table name for Stakeholder.
func (Stakeholder) TableName() string {
	return "stakeholders"
}
