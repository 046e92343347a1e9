package models

import "time"

// Report represents one reporting cycle for a company. Rating submissions
// are always scoped to a report.
type Report struct {
	ReportID    int        `gorm:"primaryKey;column:report_id" json:"report_id"`
	CompanyID   int        `gorm:"column:company_id" json:"company_id"`
	Year        int        `gorm:"column:year" json:"year"`
	Title       string     `gorm:"column:title" json:"title"`
	OwnerUserID int        `gorm:"column:owner_user_id" json:"owner_user_id"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
}

// TableName specifies the table name for Report.
func (Report) TableName() string {
	return "reports"
}
